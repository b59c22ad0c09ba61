package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/levelquiz/internal/app"
	"github.com/abhisek/levelquiz/internal/logging"
	"github.com/abhisek/levelquiz/internal/metrics"
	"github.com/abhisek/levelquiz/internal/source"
)

// runApp builds the source, logger and metrics from config and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := metrics.New()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr, log); err != nil {
				log.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	src, err := source.New(ctx, cfg.SourceConfig(), log, m)
	if err != nil {
		return fmt.Errorf("init question source: %w", err)
	}

	log.Info("starting",
		zap.String("version", version),
		zap.Int("level", cfg.Level),
		zap.String("source", cfg.Source.Kind),
	)

	return app.Run(ctx, app.Options{
		Source:       src,
		StartLevel:   cfg.Level,
		AdvanceDelay: cfg.AdvanceDelay,
		Logger:       log,
		Metrics:      m,
	})
}
