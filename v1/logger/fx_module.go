package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *LoggerClient and the Logger interface, and flushes the
// logger when the application stops.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
		fx.Annotate(
			ProvideLogger,
			fx.As(new(Logger)),
		),
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// ProvideLogger exposes the concrete client as the Logger interface.
func ProvideLogger(client *LoggerClient) *LoggerClient {
	return client
}

// RegisterLoggerLifecycle syncs buffered entries on stop. Sync errors on
// stderr are expected on some platforms and ignored.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *LoggerClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = client.Zap.Sync()
			return nil
		},
	})
}
