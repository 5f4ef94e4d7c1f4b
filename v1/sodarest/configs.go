package sodarest

import (
	"crypto/tls"
	"time"

	"github.com/Aleph-Alpha/docstore/v1/document"
)

const (
	// DefaultPort is used when Config.Port is zero.
	DefaultPort = 1521

	// DefaultTimeout bounds every HTTP exchange when Config.Timeout is zero.
	DefaultTimeout = 30 * time.Second
)

// Config defines how to reach an ORDS SODA endpoint.
type Config struct {
	Host     string `yaml:"host" envconfig:"SODA_REST_HOST"`
	Port     int    `yaml:"port" envconfig:"SODA_REST_PORT"`
	Username string `yaml:"username" envconfig:"SODA_REST_USERNAME"`
	Password string `yaml:"password" envconfig:"SODA_REST_PASSWORD"`

	// Schema is the REST-enabled database schema, the first path segment
	// after /ords.
	Schema string `yaml:"schema" envconfig:"SODA_REST_SCHEMA"`

	// Secure selects https.
	Secure bool `yaml:"secure" envconfig:"SODA_REST_SECURE"`

	TLS TLSConfig `yaml:"tls"`

	Timeout time.Duration `yaml:"timeout" envconfig:"SODA_REST_TIMEOUT"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// TLSConfig holds the transport security of one client. Nothing here is
// process-wide.
type TLSConfig struct {
	// MinVersion is "1.2" or "1.3". Empty means 1.2.
	MinVersion string `yaml:"min_version" envconfig:"SODA_REST_TLS_MIN_VERSION"`

	// InsecureSkipVerify disables certificate validation.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" envconfig:"SODA_REST_TLS_INSECURE_SKIP_VERIFY"`

	// CACertPath adds a PEM bundle to the trusted roots.
	CACertPath string `yaml:"ca_cert_path" envconfig:"SODA_REST_TLS_CA_CERT_PATH"`
}

// RateLimitConfig caps the request rate of one client. A zero
// RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" envconfig:"SODA_REST_RATE_LIMIT_RPS"`
	Burst             int     `yaml:"burst" envconfig:"SODA_REST_RATE_LIMIT_BURST"`
}

// Validate reports missing connection parameters as configuration errors.
func (c Config) Validate() error {
	switch {
	case c.Host == "":
		return document.Configurationf("soda rest: host is required")
	case c.Username == "":
		return document.Configurationf("soda rest: username is required")
	case c.Password == "":
		return document.Configurationf("soda rest: password is required")
	case c.Schema == "":
		return document.Configurationf("soda rest: schema is required")
	case c.Port < 0 || c.Port > 65535:
		return document.Configurationf("soda rest: port %d is out of range", c.Port)
	}
	if _, err := c.TLS.version(); err != nil {
		return err
	}
	return nil
}

func (t TLSConfig) version() (uint16, error) {
	switch t.MinVersion {
	case "", "1.2":
		return tls.VersionTLS12, nil
	case "1.3":
		return tls.VersionTLS13, nil
	default:
		return 0, document.Configurationf("soda rest: unsupported TLS version %q", t.MinVersion)
	}
}
