package routesource_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/hermes/internal/routesource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSource(t *testing.T) {
	logger := slog.Default()

	t.Run("create simulation source", func(t *testing.T) {
		source, err := routesource.NewSource(routesource.SourceConfig{
			Type:   routesource.SourceTypeSimulation,
			Logger: logger,
		})

		require.NoError(t, err)
		_, ok := source.(*routesource.SimulationSource)
		assert.True(t, ok, "expected source to be *SimulationSource")
	})

	t.Run("create HTTP source", func(t *testing.T) {
		source, err := routesource.NewSource(routesource.SourceConfig{
			Type:      routesource.SourceTypeHTTP,
			BaseURL:   "https://routes.example.com",
			APIKey:    "key",
			RateLimit: 2,
			Logger:    logger,
		})

		require.NoError(t, err)
		_, ok := source.(*routesource.HTTPSource)
		assert.True(t, ok, "expected source to be *HTTPSource")
	})

	t.Run("create HTTP source without rate limit", func(t *testing.T) {
		source, err := routesource.NewSource(routesource.SourceConfig{
			Type:    routesource.SourceTypeHTTP,
			BaseURL: "https://routes.example.com",
			Logger:  logger,
		})

		require.NoError(t, err)
		require.NotNil(t, source)
	})

	t.Run("HTTP source without base URL fails", func(t *testing.T) {
		source, err := routesource.NewSource(routesource.SourceConfig{
			Type:   routesource.SourceTypeHTTP,
			Logger: logger,
		})

		require.Error(t, err)
		assert.Nil(t, source)
		assert.ErrorIs(t, err, routesource.ErrMissingBaseURL)
	})

	t.Run("unsupported source type", func(t *testing.T) {
		source, err := routesource.NewSource(routesource.SourceConfig{
			Type:   routesource.SourceType("ftp"),
			Logger: logger,
		})

		require.Error(t, err)
		assert.Nil(t, source)
		assert.Contains(t, err.Error(), "unsupported source type: ftp")
	})
}
