// SPDX-License-Identifier: BSD-3-Clause

// Package log provides the daemon's logging setup: a log/slog front
// fanned out to a human-readable zerolog console writer and to the
// global OpenTelemetry logger provider, plus adapters for subsystems
// with their own logging interfaces (the embedded NATS server, the
// oversight supervision tree, and the standard library log package).
package log
