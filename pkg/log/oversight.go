// SPDX-License-Identifier: BSD-3-Clause

package log

import (
	"fmt"
	"log/slog"

	"cirello.io/oversight/v2"
)

// NewOversightLogger adapts an slog.Logger to the oversight.Logger
// signature so supervision tree events land in the structured log at
// Debug level.
func NewOversightLogger(l *slog.Logger) oversight.Logger {
	tree := l.With("subsystem", "oversight")
	return func(args ...any) {
		tree.Debug(fmt.Sprint(args...))
	}
}
