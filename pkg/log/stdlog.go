// SPDX-License-Identifier: BSD-3-Clause

package log

import (
	"log"
	"log/slog"
)

// NewStdLoggerAt wraps the provided slog.Logger in a standard library
// log.Logger emitting at the given level, for third-party code that
// expects the classic interface.
func NewStdLoggerAt(logger *slog.Logger, level slog.Level) *log.Logger {
	return slog.NewLogLogger(logger.Handler(), level)
}

// RedirectStdLog routes the standard library log package through the
// provided slog.Logger at Info level. Flags and prefix are cleared so
// the structured front does not double-stamp timestamps.
func RedirectStdLog(l *slog.Logger) {
	std := NewStdLoggerAt(l, slog.LevelInfo)
	log.SetFlags(0)
	log.SetPrefix("")
	log.SetOutput(std.Writer())
}
