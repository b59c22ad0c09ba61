package quiz

import (
	"errors"
	"testing"
)

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{"valid", Question{Prompt: "p", Answers: []string{"a", "b"}, CorrectIndex: 1}, false},
		{"empty prompt", Question{Answers: []string{"a", "b"}}, true},
		{"one answer", Question{Prompt: "p", Answers: []string{"a"}}, true},
		{"negative index", Question{Prompt: "p", Answers: []string{"a", "b"}, CorrectIndex: -1}, true},
		{"index past end", Question{Prompt: "p", Answers: []string{"a", "b"}, CorrectIndex: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	inner := errors.New("dial tcp: refused")

	netErr := &NetworkError{Level: 2, Err: inner}
	if got := netErr.Error(); got != "fetch level 2: dial tcp: refused" {
		t.Errorf("NetworkError = %q", got)
	}
	if !errors.Is(netErr, inner) {
		t.Error("expected NetworkError to unwrap to inner error")
	}

	status := &NetworkError{Level: 1, StatusCode: 404}
	if got := status.Error(); got != "fetch level 1: HTTP status 404" {
		t.Errorf("NetworkError with status = %q", got)
	}

	dataErr := &MalformedDataError{Level: 3, Reason: "missing test.question"}
	if got := dataErr.Error(); got != "level 3: malformed quiz data: missing test.question" {
		t.Errorf("MalformedDataError = %q", got)
	}

	cv := &ContractViolation{Op: "submit", State: StateLoading}
	if got := cv.Error(); got != "submit not allowed in state loading" {
		t.Errorf("ContractViolation = %q", got)
	}
	if !errors.Is(cv, ErrContractViolation) {
		t.Error("expected ContractViolation to match ErrContractViolation")
	}
}

func TestStateString(t *testing.T) {
	if StateAnswerRevealed.String() != "answer-revealed" {
		t.Errorf("got %q", StateAnswerRevealed.String())
	}
	if State(42).String() != "state(42)" {
		t.Errorf("got %q", State(42).String())
	}
}
