package commands

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"

	"wtj-scraper/internal/config"
)

func newLogger(w io.Writer, cfg config.Log) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: cfg.TimeFormat,
		NoColor:    cfg.NoColor,
	}))
}
