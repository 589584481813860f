// Package config loads server settings from flags, NORTHBEAM_* environment
// variables and an optional northbeam.yaml file, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/northbeam/website/pkg/core"
	"github.com/northbeam/website/pkg/logging"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. NORTHBEAM_BASE_URL.
	EnvPrefix = "NORTHBEAM"
	// FileName is the config file searched for in the working directory.
	FileName = "northbeam"
)

// Flag names. They double as viper keys and config file keys.
const (
	FlagAddr            = "addr"
	FlagBaseURL         = "base-url"
	FlagRegistry        = "registry"
	FlagLogLevel        = "log-level"
	FlagLogJSON         = "log-json"
	FlagAllowedOrigins  = "allowed-origins"
	FlagDev             = "dev"
	FlagMetrics         = "metrics"
	FlagMaxSessions     = "max-sessions"
	FlagShutdownTimeout = "shutdown-timeout"
)

var (
	ErrInvalidAddr            = errors.New("addr must be host:port")
	ErrInvalidBaseURL         = errors.New("base-url must be an absolute http(s) URL")
	ErrInvalidLogLevel        = errors.New("invalid log-level")
	ErrInvalidMaxSessions     = errors.New("max-sessions must not be negative")
	ErrInvalidShutdownTimeout = errors.New("shutdown-timeout must be positive")
)

// Config is the server configuration.
type Config struct {
	Addr    string `mapstructure:"addr"`
	BaseURL string `mapstructure:"base-url"`

	// Registry is a YAML or JSON wake registry. Empty uses the embedded one.
	Registry string `mapstructure:"registry"`

	LogLevel        string        `mapstructure:"log-level"`
	LogJSON         bool          `mapstructure:"log-json"`
	AllowedOrigins  []string      `mapstructure:"allowed-origins"`
	Dev             bool          `mapstructure:"dev"`
	Metrics         bool          `mapstructure:"metrics"`
	MaxSessions     int           `mapstructure:"max-sessions"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

// Default returns the production defaults.
func Default() Config {
	return Config{
		Addr:            ":8080",
		BaseURL:         "https://northbeam.digital",
		LogLevel:        "info",
		LogJSON:         true,
		Metrics:         true,
		MaxSessions:     core.DefaultConfig().MaxSessions,
		ShutdownTimeout: 30 * time.Second,
	}
}

// AddFlags registers every setting on fs with its default.
func AddFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagAddr, d.Addr, "listen address")
	fs.String(FlagBaseURL, d.BaseURL, "public origin used for canonical URLs and the sitemap")
	fs.String(FlagRegistry, d.Registry, "wake registry file (.yaml, .yml or .json); empty uses the built-in list")
	fs.String(FlagLogLevel, d.LogLevel, "log level (debug, info, warn, error)")
	fs.Bool(FlagLogJSON, d.LogJSON, "log as JSON")
	fs.StringSlice(FlagAllowedOrigins, d.AllowedOrigins, "extra origins allowed to open live sockets")
	fs.Bool(FlagDev, d.Dev, "development mode: relaxed timeouts, no origin checks")
	fs.Bool(FlagMetrics, d.Metrics, "serve Prometheus metrics on /metrics")
	fs.Int(FlagMaxSessions, d.MaxSessions, "maximum concurrent live page views (0 = unlimited)")
	fs.Duration(FlagShutdownTimeout, d.ShutdownTimeout, "graceful shutdown budget")
}

// Load resolves the configuration for fs. file overrides the search for
// northbeam.yaml in dir. A missing default file is not an error.
func Load(fs *pflag.FlagSet, file, dir string) (Config, error) {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigType("yaml")
		v.SetConfigName(FileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	// --base-url reads NORTHBEAM_BASE_URL.
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAddr, c.Addr)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLogLevel, err)
	}
	if c.MaxSessions < 0 {
		return ErrInvalidMaxSessions
	}
	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}
	return nil
}

// Live returns the live-view settings.
func (c Config) Live() core.Config {
	live := core.DefaultConfig()
	if c.Dev {
		live = core.DevelopmentConfig()
	}
	live.AllowedOrigins = append(live.AllowedOrigins, c.AllowedOrigins...)
	live.MaxSessions = c.MaxSessions
	live.Timeouts.Shutdown = c.ShutdownTimeout
	return live
}

// Logger builds the process logger writing to w.
func (c Config) Logger(w io.Writer) (*logging.SlogLogger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := []logging.LoggerOption{logging.WithLevel(level), logging.WithOutput(w)}
	if c.LogJSON {
		opts = append(opts, logging.WithJSON())
	}
	if c.Dev {
		opts = append(opts, logging.WithSource())
	}
	return logging.NewSlogLogger(opts...), nil
}
