package quiz

import (
	"errors"
	"fmt"
)

// ErrContractViolation matches every *ContractViolation via errors.Is.
var ErrContractViolation = errors.New("contract violation")

// NetworkError indicates the question sequence could not be fetched.
type NetworkError struct {
	Level int

	// StatusCode is the HTTP status when the remote answered with one, 0 otherwise.
	StatusCode int

	Err error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch level %d: HTTP status %d", e.Level, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch level %d: %v", e.Level, e.Err)
	}
	return fmt.Sprintf("fetch level %d: network error", e.Level)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedDataError indicates the response arrived but lacks the expected shape.
type MalformedDataError struct {
	Level  int
	Reason string
	Err    error
}

func (e *MalformedDataError) Error() string {
	msg := fmt.Sprintf("level %d: malformed quiz data: %s", e.Level, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

// ContractViolation is returned when a transition is invoked in a state
// that does not allow it. The engine state is left untouched.
type ContractViolation struct {
	Op     string
	State  State
	Reason string
}

func (e *ContractViolation) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s not allowed in state %s: %s", e.Op, e.State, e.Reason)
	}
	return fmt.Sprintf("%s not allowed in state %s", e.Op, e.State)
}

func (e *ContractViolation) Is(target error) bool { return target == ErrContractViolation }
