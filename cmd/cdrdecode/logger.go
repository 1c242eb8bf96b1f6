package main

import "log/slog"

func newLogger(h slog.Handler) *slog.Logger { return slog.New(h) }
