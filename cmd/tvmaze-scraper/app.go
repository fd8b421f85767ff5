package main

import (
	"fmt"
	"io"

	"github.com/amaumene/tvmaze-scraper/internal/config"
	"github.com/amaumene/tvmaze-scraper/internal/metrics"
	"github.com/amaumene/tvmaze-scraper/internal/utils"
	"github.com/sirupsen/logrus"
)

// app holds what every command needs
type app struct {
	cfg     *config.Config
	logger  *logrus.Logger
	metrics *metrics.Metrics
	closer  io.Closer
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, closer, err := utils.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	logger.WithField("data_dir", cfg.DataDir).Debug("Configuration loaded")

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(),
		closer:  closer,
	}, nil
}

// Close flushes metrics and closes the log file
func (a *app) Close() {
	if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
		a.logger.WithError(err).Warn("Failed to write metrics")
	}
	a.closer.Close()
}
