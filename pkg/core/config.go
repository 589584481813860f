package core

import (
	"errors"
	"time"
)

var (
	ErrInvalidMaxMessageSize = errors.New("max message size must be positive")
	ErrInvalidMaxSessions    = errors.New("max sessions must not be negative")
	ErrInvalidTimeout        = errors.New("mount and event timeouts must be positive")
)

// Timeouts bound every blocking step of a page view.
type Timeouts struct {
	Mount time.Duration
	Event time.Duration

	// Read and Write apply to single WebSocket frames.
	Read  time.Duration
	Write time.Duration

	// Idle sessions older than IdleTTL are closed every Sweep.
	Sweep   time.Duration
	IdleTTL time.Duration

	Shutdown time.Duration
}

// Config holds the live-view settings.
type Config struct {
	Timeouts Timeouts

	// AllowedOrigins may open live sockets in addition to the page's own
	// origin. "*" allows any.
	AllowedOrigins []string
	// InsecureDevMode skips the origin check entirely.
	InsecureDevMode bool

	MaxMessageSize int64
	// MaxSessions caps concurrent live page views. Zero means no cap.
	MaxSessions int
}

// DefaultConfig is tuned for production.
func DefaultConfig() Config {
	return Config{
		Timeouts: Timeouts{
			Mount:    5 * time.Second,
			Event:    3 * time.Second,
			Read:     time.Minute,
			Write:    10 * time.Second,
			Sweep:    5 * time.Minute,
			IdleTTL:  30 * time.Minute,
			Shutdown: 30 * time.Second,
		},
		MaxMessageSize: 16 * 1024,
		MaxSessions:    10000,
	}
}

// DevelopmentConfig relaxes timeouts and origin checks.
func DevelopmentConfig() Config {
	return Config{
		Timeouts: Timeouts{
			Mount:    30 * time.Second,
			Event:    30 * time.Second,
			Read:     5 * time.Minute,
			Write:    30 * time.Second,
			Sweep:    30 * time.Minute,
			IdleTTL:  2 * time.Hour,
			Shutdown: time.Minute,
		},
		AllowedOrigins:  []string{"*"},
		InsecureDevMode: true,
		MaxMessageSize:  1024 * 1024,
		MaxSessions:     1000,
	}
}

func (c Config) Validate() error {
	switch {
	case c.MaxMessageSize <= 0:
		return ErrInvalidMaxMessageSize
	case c.MaxSessions < 0:
		return ErrInvalidMaxSessions
	case c.Timeouts.Mount <= 0 || c.Timeouts.Event <= 0:
		return ErrInvalidTimeout
	}
	return nil
}
