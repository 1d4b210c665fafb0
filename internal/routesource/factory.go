package routesource

import (
	"fmt"
	"log/slog"
	"time"
)

// SourceType represents the kind of route source.
type SourceType string

const (
	// SourceTypeSimulation serves a fixed set of simulated routes.
	SourceTypeSimulation SourceType = "simulation"
	// SourceTypeHTTP talks to a live route API over HTTP.
	SourceTypeHTTP SourceType = "http"
)

// SourceConfig holds configuration for creating a route source.
type SourceConfig struct {
	Type      SourceType       // Type of source to create
	BaseURL   string           // Base URL of the route API (http only)
	APIKey    string           // API key sent with every request (http only)
	RateLimit int              // Requests per second (http only)
	Now       func() time.Time // Clock used by the simulation, defaults to time.Now
	Logger    *slog.Logger     // Logger for the source
}

// NewSource creates a route source based on the provided configuration.
//
// Supported source types:
// - "simulation": built-in simulated routes, no network access
// - "http": JSON route API (requires a base URL)
func NewSource(config SourceConfig) (Source, error) {
	switch config.Type {
	case SourceTypeSimulation:
		return newSimulationSource(config), nil
	case SourceTypeHTTP:
		return newHTTPSource(config)
	default:
		return nil, fmt.Errorf("unsupported source type: %s", config.Type)
	}
}

func newSimulationSource(config SourceConfig) Source {
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return NewSimulationSource(now, config.Logger)
}

func newHTTPSource(config SourceConfig) (Source, error) {
	if config.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	if config.RateLimit <= 0 {
		config.RateLimit = 5
		config.Logger.Warn("Rate limit for route API not set, set a default value", "value", config.RateLimit)
	}

	return NewHTTPSource(config.BaseURL, config.APIKey, config.RateLimit, config.Logger), nil
}
