package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger returns the diagnostics logger. Timestamps are off so that
// transcripts stay reproducible.
func newLogger(w io.Writer, cfg *Config) *log.Logger {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "qsim",
		ReportTimestamp: false,
	})
}
