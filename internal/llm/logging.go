package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type loggingProvider struct {
	inner Provider
	name  string
	log   *zap.Logger
}

// WithLogging wraps p so every generation is logged with model, latency and
// token usage. A nil logger disables output.
func WithLogging(p Provider, name string, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &loggingProvider{inner: p, name: name, log: log.Named("llm")}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	fields := []zap.Field{
		zap.String("provider", l.name),
		zap.String("model", l.inner.ModelID()),
		zap.Duration("latency", time.Since(start)),
		zap.Int("prompt_bytes", len(req.Prompt)),
	}
	if resp != nil {
		fields = append(fields,
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
			zap.String("stop_reason", resp.StopReason),
		)
	}
	if err != nil {
		l.log.Warn("generation failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	l.log.Debug("generation", fields...)
	return resp, nil
}

func (l *loggingProvider) ModelID() string {
	return l.inner.ModelID()
}
