package tracer

// Config defines the tracer settings.
type Config struct {
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is recorded as the deployment environment of every span.
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport sends spans to the OTLP HTTP endpoint configured through
	// the standard OTEL_EXPORTER_OTLP_* variables.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`

	// Endpoint overrides the exporter endpoint, host:port without scheme.
	Endpoint string `yaml:"endpoint" envconfig:"TRACER_ENDPOINT"`

	// Insecure disables TLS towards Endpoint.
	Insecure bool `yaml:"insecure" envconfig:"TRACER_INSECURE"`
}
