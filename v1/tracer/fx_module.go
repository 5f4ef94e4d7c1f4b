package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *Tracer and shuts the provider down on stop, flushing
// pending spans.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if tracer == nil || tracer.provider == nil {
				return nil
			}
			tracer.logger.Info("shutting down tracer", nil, nil)
			return tracer.provider.Shutdown(ctx)
		},
	})
}
