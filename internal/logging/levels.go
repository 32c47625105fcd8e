package logging

import (
	"log/slog"
	"strings"
)

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// floorLevel follows base but never drops below floor. It lets one stream be
// quieter than the configured level without touching the others.
type floorLevel struct {
	base  slog.Leveler
	floor slog.Level
}

func (f floorLevel) Level() slog.Level {
	return max(f.base.Level(), f.floor)
}

func consoleLeveler(base slog.Leveler, consoleLevel string) slog.Leveler {
	if strings.TrimSpace(consoleLevel) == "" {
		return base
	}
	return floorLevel{base: base, floor: parseLevel(consoleLevel)}
}
