package conui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// NewLogger builds the application logger from the log section. With no
// file configured records are discarded. The returned closer releases the
// log file.
func NewLogger(config LogConfig) (*slog.Logger, io.Closer, error) {
	level, err := config.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if config.File == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), f, nil
}
