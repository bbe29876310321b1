package logger

import (
	"log/slog"
	"os"
)

// New JSON в stdout; в dev — с уровнем debug (видны access-логи и отклонённый ввод).
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", "metalstock", "env", env)
}
