package internal

import (
	"context"
	"log/slog"
	"time"
)

// ContentGenerator produces one note's raw markdown.
type ContentGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	gen    ContentGenerator
	logger *slog.Logger
	now    func() time.Time
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithGenerator overrides the AI CLI generator (used in tests).
func WithGenerator(g ContentGenerator) Option {
	return func(a *application) {
		a.gen = g
	}
}

// WithLogger overrides the default JSON logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *application) {
		a.logger = l
	}
}

// WithNow overrides the clock (used in tests).
func WithNow(now func() time.Time) Option {
	return func(a *application) {
		a.now = now
	}
}
