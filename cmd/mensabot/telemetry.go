package main

import (
	"context"
	"log/slog"

	"mensabot-backend/lib/telemetry"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	tel, err := telemetry.SetupFromEnv(ctx, "mensabot")
	if err != nil {
		// the bot works fine without an OTLP collector
		slog.Warn("telemetry export disabled", "err", err)
		return
	}
	go func() {
		<-ctx.Done()
		tel.Shutdown(context.Background())
	}()
	telemetry.InstrumentPerfStats(ctx)
}
