// SPDX-License-Identifier: BSD-3-Clause

package log

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats-server/v2/server"
)

// natsLogger adapts an slog.Logger to the NATS server.Logger interface
// so the embedded IPC bus logs through the same pipeline as the rest of
// the daemon. The original NATS level travels as an attribute because
// slog has no notice or trace levels.
type natsLogger struct {
	l *slog.Logger
}

// NewNATSLogger wraps the provided slog.Logger for the NATS server.
func NewNATSLogger(l *slog.Logger) server.Logger {
	return &natsLogger{l: l.With("subsystem", "nats")}
}

func (n *natsLogger) logf(level slog.Level, natsLevel, format string, v ...interface{}) {
	n.l.Log(context.Background(), level, fmt.Sprintf(format, v...), "nats_level", natsLevel)
}

// Fatalf maps to Error level; the server handles termination itself.
func (n *natsLogger) Fatalf(format string, v ...interface{}) {
	n.logf(slog.LevelError, "fatal", format, v...)
}

// Errorf maps to Error level.
func (n *natsLogger) Errorf(format string, v ...interface{}) {
	n.logf(slog.LevelError, "error", format, v...)
}

// Warnf maps to Warn level.
func (n *natsLogger) Warnf(format string, v ...interface{}) {
	n.logf(slog.LevelWarn, "warn", format, v...)
}

// Noticef maps to Info level.
func (n *natsLogger) Noticef(format string, v ...interface{}) {
	n.logf(slog.LevelInfo, "info", format, v...)
}

// Debugf maps to Debug level.
func (n *natsLogger) Debugf(format string, v ...interface{}) {
	n.logf(slog.LevelDebug, "debug", format, v...)
}

// Tracef maps to Debug level.
func (n *natsLogger) Tracef(format string, v ...interface{}) {
	n.logf(slog.LevelDebug, "trace", format, v...)
}
