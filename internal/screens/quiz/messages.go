package quiz

import (
	qz "github.com/abhisek/levelquiz/internal/quiz"
)

// loadDoneMsg carries a finished fetch back to the update loop.
type loadDoneMsg struct {
	Result qz.LoadResult
}

// advanceMsg fires when the reveal delay is over. Token must match the
// screen's current token or the tick is stale.
type advanceMsg struct {
	Token uint64
}
