// Package source provides the question sequence adapters used by the quiz
// engine: the remote quiz service and an LLM-backed generator.
package source

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/levelquiz/internal/llm"
	"github.com/abhisek/levelquiz/internal/metrics"
	"github.com/abhisek/levelquiz/internal/quiz"
)

// Source kinds accepted by New.
const (
	KindHTTP = "http"
	KindLLM  = "llm"
)

// Config selects and tunes a source.
type Config struct {
	Kind    string
	URL     string
	Timeout time.Duration

	// Rate is requests per second for the HTTP source, Burst its bucket size.
	Rate  float64
	Burst int

	// Questions is how many questions the generator writes per level.
	Questions int

	LLM llm.Config
}

// New builds the configured source wrapped with logging and metrics.
func New(ctx context.Context, cfg Config, log *zap.Logger, m *metrics.Metrics) (quiz.Source, error) {
	var src quiz.Source
	switch cfg.Kind {
	case KindHTTP, "":
		var opts []HTTPOption
		if cfg.Rate > 0 {
			opts = append(opts, WithRateLimit(cfg.Rate, max(cfg.Burst, 1)))
		}
		h, err := NewHTTPSource(cfg.URL, cfg.Timeout, opts...)
		if err != nil {
			return nil, err
		}
		src = h
	case KindLLM:
		if cfg.LLM.Timeout == 0 {
			cfg.LLM.Timeout = cfg.Timeout
		}
		p, err := llm.NewProvider(ctx, cfg.LLM, log)
		if err != nil {
			return nil, err
		}
		src = withTimeout(NewGeneratedSource(p, cfg.Questions), cfg.LLM.Timeout)
	default:
		return nil, fmt.Errorf("unknown source kind: %q", cfg.Kind)
	}
	return Instrument(src, log, m), nil
}

// withTimeout bounds every fetch of src by d. Zero leaves src unbounded.
func withTimeout(src quiz.Source, d time.Duration) quiz.Source {
	if d <= 0 {
		return src
	}
	return quiz.SourceFunc(func(ctx context.Context, level int) ([]quiz.Question, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return src.FetchQuestions(ctx, level)
	})
}
