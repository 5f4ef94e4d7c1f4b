package main

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Aleph-Alpha/docstore/v1/logger"
	"github.com/Aleph-Alpha/docstore/v1/metrics"
	"github.com/Aleph-Alpha/docstore/v1/sodarest"
	"github.com/Aleph-Alpha/docstore/v1/sodasql"
	"github.com/Aleph-Alpha/docstore/v1/tracer"
)

// Config is the file layout of sodactl. Every leaf can be overridden by
// the environment variable named in its envconfig tag.
type Config struct {
	Logger  logger.Config   `yaml:"logger"`
	Tracer  tracer.Config   `yaml:"tracer"`
	Metrics metrics.Config  `yaml:"metrics"`
	REST    sodarest.Config `yaml:"rest"`
	SQL     sodasql.Config  `yaml:"sql"`
}

// loadConfig reads envFile into the process environment when it exists,
// then the YAML file at path when one is given, then the environment.
func loadConfig(path, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	if err := bindEnvs(v, reflect.TypeOf(Config{}), ""); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// bindEnvs registers the envconfig name of every leaf field under its
// dotted yaml key.
func bindEnvs(v *viper.Viper, t reflect.Type, prefix string) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := strings.Split(field.Tag.Get("yaml"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		if field.Type.Kind() == reflect.Struct && field.Type != durationType {
			if err := bindEnvs(v, field.Type, key); err != nil {
				return err
			}
			continue
		}
		if env := field.Tag.Get("envconfig"); env != "" {
			if err := v.BindEnv(key, env); err != nil {
				return fmt.Errorf("failed to bind %s: %w", env, err)
			}
		}
	}
	return nil
}
