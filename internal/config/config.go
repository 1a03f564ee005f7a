// Package config loads application configuration from an optional
// config.yaml plus CLTV_-prefixed environment variables, and initializes
// the global zap logger.
package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Dataset DatasetConfig `mapstructure:"dataset"`
	Export  ExportConfig  `mapstructure:"export"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// DatasetConfig configures the default dataset location.
type DatasetConfig struct {
	Path string `mapstructure:"path"`
}

// ExportConfig configures where generated CSVs are written.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// ServerConfig configures the dashboard API server.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultDataFile is the fallback dataset name when neither a flag, an
// upload, nor CLTV_DATASET_PATH provides one.
const DefaultDataFile = "customer_acquisition_data.csv"

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CLTV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.path", DefaultDataFile)
	v.SetDefault("export.dir", os.TempDir())
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// ResolveDataset returns the dataset path to load: the explicit path when
// given, otherwise the configured default. A missing default is a fatal
// configuration error naming the path and the override env var.
func (c *Config) ResolveDataset(explicit string) (string, error) {
	path := explicit
	if path == "" {
		path = c.Dataset.Path
	}
	if _, err := os.Stat(path); err != nil {
		if explicit != "" {
			return "", eris.Wrapf(err, "config: dataset %q not found", path)
		}
		return "", eris.Errorf(
			"config: default dataset %q not found; upload a CSV or set CLTV_DATASET_PATH", path)
	}
	return path, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
