package sodasql

import (
	"time"

	"github.com/Aleph-Alpha/docstore/v1/document"
)

// DefaultPort is the Oracle listener port used when Config.Port is zero.
const DefaultPort = 1521

// Config defines the Oracle connection of the SQL providers.
type Config struct {
	Host        string `yaml:"host" envconfig:"SODA_SQL_HOST"`
	Port        int    `yaml:"port" envconfig:"SODA_SQL_PORT"`
	ServiceName string `yaml:"service_name" envconfig:"SODA_SQL_SERVICE_NAME"`
	Username    string `yaml:"username" envconfig:"SODA_SQL_USERNAME"`
	Password    string `yaml:"password" envconfig:"SODA_SQL_PASSWORD"`

	ConnectionDetails ConnectionDetails `yaml:"connection_details"`
}

// ConnectionDetails tunes the database/sql pool. Zero values select the
// package defaults.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns" envconfig:"SODA_SQL_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" envconfig:"SODA_SQL_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"SODA_SQL_CONN_MAX_LIFETIME"`
}

// Validate reports missing connection parameters as configuration errors.
func (c Config) Validate() error {
	switch {
	case c.Host == "":
		return document.Configurationf("soda sql: host is required")
	case c.ServiceName == "":
		return document.Configurationf("soda sql: service name is required")
	case c.Username == "":
		return document.Configurationf("soda sql: username is required")
	case c.Password == "":
		return document.Configurationf("soda sql: password is required")
	case c.Port < 0 || c.Port > 65535:
		return document.Configurationf("soda sql: port %d is out of range", c.Port)
	}
	return nil
}

func (c Config) port() int {
	if c.Port == 0 {
		return DefaultPort
	}
	return c.Port
}
