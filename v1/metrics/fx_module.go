package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/docstore/v1/logger"
	"github.com/Aleph-Alpha/docstore/v1/observability"
)

// FXModule provides *Metrics, the MetricsCollector interface and an
// observability.Observer feeding the document metrics, and runs the
// /metrics server for the lifetime of the application.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		fx.Annotate(
			ProvideCollector,
			fx.As(new(MetricsCollector)),
		),
		fx.Annotate(
			ProvideObserver,
			fx.As(new(observability.Observer)),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

func ProvideCollector(m *Metrics) *Metrics { return m }

func ProvideObserver(m *Metrics) *Metrics { return m }

// RegisterMetricsLifecycle starts the metrics server in the background and
// shuts it down gracefully on stop.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting prometheus metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("prometheus metrics server failed", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down prometheus metrics server", nil, nil)
			return m.Server.Shutdown(ctx)
		},
	})
}
