// Package logger is the structured logger used by every docstore component.
//
// LoggerClient wraps zap and writes JSON entries to stderr. Each method takes
// a message, an optional error and any number of field maps; the error is
// logged under "error" and the maps are flattened into fields:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Debug,
//		EnableTracing: true,
//		ServiceName:   "sodactl",
//	})
//
//	log.Info("collection ready", nil, map[string]interface{}{
//		"collection": "invoices",
//	})
//	log.ErrorWithContext(ctx, "filter failed", err, nil)
//
// When EnableTracing is set, the *WithContext methods add trace_id and
// span_id taken from the OpenTelemetry span in ctx.
//
// Components depend on the Logger interface. FXModule provides both the
// concrete client and the interface, and syncs the logger on stop:
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Supply(logger.Config{Level: logger.Info, ServiceName: "sodactl"}),
//	)
//
// Configuration is read from the yaml keys or the environment:
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning, error
//	LOGGER_ENABLE_TRACING=true
//	LOGGER_SERVICE_NAME=sodactl
package logger
