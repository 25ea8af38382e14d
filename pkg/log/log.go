// SPDX-License-Identifier: BSD-3-Clause

package log

import (
	"log/slog"

	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogzerolog "github.com/samber/slog-zerolog/v2"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log/global"
)

// NewDefaultLogger creates a structured logger that fans out to a
// zerolog console writer and the global OpenTelemetry logger provider.
// With no telemetry pipeline installed the OTel branch is a no-op, so
// the daemon logs the same way with or without an exporter.
func NewDefaultLogger() *slog.Logger {
	zeroLogger := zerolog.
		New(zerolog.NewConsoleWriter()).
		With().
		Timestamp().
		Logger()

	provider := global.GetLoggerProvider()

	otelHandler := otelslog.NewHandler("mini-bmc", otelslog.WithLoggerProvider(provider))
	return slog.New(slogmulti.Fanout(
		slogzerolog.Option{Level: slog.LevelDebug, Logger: &zeroLogger}.NewZerologHandler(),
		otelHandler,
	))
}

// GetGlobalLogger returns a logger configured like NewDefaultLogger.
// Services call this at Run time so they pick up whatever provider the
// process registered during startup.
func GetGlobalLogger() *slog.Logger {
	return NewDefaultLogger()
}
