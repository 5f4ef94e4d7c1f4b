package sodarest

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/Aleph-Alpha/docstore/v1/logger"
	"github.com/Aleph-Alpha/docstore/v1/observability"
)

// Logger is the logging contract of the client, satisfied by
// logger.LoggerClient.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

const componentName = "sodarest"

// Client is the provider.Provider backed by the SODA REST API.
type Client struct {
	cfg      Config
	base     string
	http     *http.Client
	limiter  *rate.Limiter
	tracer   trace.Tracer
	logger   Logger
	observer observability.Observer
}

// NewClient validates cfg and builds an instrumented HTTP client for it.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	tlsConfig, err := createTLSConfig(cfg.TLS)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsConfig

	scheme := "http"
	if cfg.Secure {
		scheme = "https"
	}

	c := &Client{
		cfg:  cfg,
		base: fmt.Sprintf("%s://%s:%d/ords/%s/soda/latest", scheme, cfg.Host, cfg.Port, url.PathEscape(cfg.Schema)),
		http: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   cfg.Timeout,
		},
		tracer: otel.Tracer("github.com/Aleph-Alpha/docstore/v1/sodarest"),
		logger: logger.NewNopLoggerClient(),
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		burst := cfg.RateLimit.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), burst)
	}
	return c, nil
}

func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	version, err := cfg.version()
	if err != nil {
		return nil, err
	}
	tlsConfig := &tls.Config{
		MinVersion:         version,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert %s", cfg.CACertPath)
		}
		tlsConfig.RootCAs = pool
	}
	return tlsConfig, nil
}

// WithLogger sets the logger and returns the client for chaining.
func (c *Client) WithLogger(l Logger) *Client {
	if l != nil {
		c.logger = l
	}
	return c
}

// WithObserver sets the operation observer and returns the client for
// chaining.
func (c *Client) WithObserver(o observability.Observer) *Client {
	c.observer = o
	return c
}
