package source

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/levelquiz/internal/metrics"
	"github.com/abhisek/levelquiz/internal/quiz"
)

// Instrumented wraps a source with logging and fetch metrics.
type Instrumented struct {
	inner   quiz.Source
	log     *zap.Logger
	metrics *metrics.Metrics
}

// Instrument wraps src. Either log or m may be nil.
func Instrument(src quiz.Source, log *zap.Logger, m *metrics.Metrics) *Instrumented {
	if log == nil {
		log = zap.NewNop()
	}
	return &Instrumented{inner: src, log: log.Named("source"), metrics: m}
}

func (s *Instrumented) FetchQuestions(ctx context.Context, level int) ([]quiz.Question, error) {
	start := time.Now()
	qs, err := s.inner.FetchQuestions(ctx, level)
	elapsed := time.Since(start)

	s.metrics.ObserveFetch(elapsed, classify(err))

	if err != nil {
		s.log.Warn("fetch failed",
			zap.Int("level", level),
			zap.Duration("latency", elapsed),
			zap.Error(err),
		)
		return nil, err
	}
	s.log.Info("fetched questions",
		zap.Int("level", level),
		zap.Int("count", len(qs)),
		zap.Duration("latency", elapsed),
	)
	return qs, nil
}

func classify(err error) string {
	if err == nil {
		return metrics.ResultOK
	}
	var dataErr *quiz.MalformedDataError
	if errors.As(err, &dataErr) {
		return metrics.ResultMalformed
	}
	return metrics.ResultNetwork
}
