package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"

	"github.com/arloliu/typedkv/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger writes text records to w and, when cfg.File is set, JSON records
// to that file as well.
func newLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}

	text := slog.NewTextHandler(w, opts)
	if cfg.File == "" {
		return slog.New(text), nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return slog.New(slogmulti.Fanout(text, slog.NewJSONHandler(f, opts))), f, nil
}
