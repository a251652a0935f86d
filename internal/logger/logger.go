// Package logger configures the slog logger shared by the sqlloader commands.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

var level = new(slog.LevelVar)

// ParseLevel maps a level name to a slog level. Unknown names map to warn.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New returns a text logger writing to w, tagged with a fresh run id.
func New(w io.Writer, levelName string) (*slog.Logger, string) {
	level.Set(ParseLevel(levelName))
	runID := uuid.NewString()
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run_id", runID), runID
}

func SetLevel(lvl slog.Level) {
	level.Set(lvl)
}
