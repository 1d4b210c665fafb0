package routesource_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/hermes/internal/routesource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationSource(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	source := routesource.NewSimulationSource(func() time.Time { return now }, slog.Default())

	t.Run("lists the simulated route", func(t *testing.T) {
		routes, err := source.ListRoutes(ctx, now, now.Add(24*time.Hour))

		require.NoError(t, err)
		require.Len(t, routes, 1)
		assert.Equal(t, routesource.SimulatedRouteID, routes[0].ID)
		assert.Equal(t, now.Add(time.Hour), routes[0].StartTime)
		assert.Equal(t, now.Add(5*time.Hour), routes[0].EndTime)
	})

	t.Run("returns three stops in delivery order", func(t *testing.T) {
		detail, err := source.GetRouteDetail(ctx, routesource.SimulatedRouteID)

		require.NoError(t, err)
		require.Len(t, detail.Stops, 3)
		assert.Equal(t, "STOP-001", detail.Stops[0].ID)
		assert.Equal(t, "STOP-003", detail.Stops[2].ID)
		assert.Equal(t, "Bellevue", detail.Stops[2].Address.City)
		assert.InEpsilon(t, 45.2, detail.Route.EstimatedMiles, 0.0001)
	})

	t.Run("unknown route", func(t *testing.T) {
		detail, err := source.GetRouteDetail(ctx, "SIM-ROUTE-404")

		require.Error(t, err)
		assert.Nil(t, detail)
		assert.ErrorIs(t, err, routesource.ErrRouteNotFound)
	})

	t.Run("acknowledges", func(t *testing.T) {
		assert.True(t, source.AcknowledgeRoute(ctx, routesource.SimulatedRouteID))
	})
}
