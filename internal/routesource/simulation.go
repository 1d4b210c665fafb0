package routesource

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// SimulatedRouteID is the identifier of the single route served in simulation mode.
const SimulatedRouteID = "SIM-ROUTE-001"

// SimulationSource serves a fixed route so the whole pipeline can run without
// access to the live route API.
type SimulationSource struct {
	now func() time.Time
	log *slog.Logger
}

// NewSimulationSource creates a simulation source using now as its clock.
func NewSimulationSource(now func() time.Time, log *slog.Logger) *SimulationSource {
	return &SimulationSource{now: now, log: log}
}

// ListRoutes returns the simulated route. The window is ignored: the simulated route
// always starts within the next hours.
func (ss *SimulationSource) ListRoutes(ctx context.Context, windowStart, windowEnd time.Time) ([]models.Route, error) {
	ss.log.DebugContext(ctx, "Listing simulated routes", "window_start", windowStart, "window_end", windowEnd)

	start := ss.now().Add(time.Hour).UTC()

	return []models.Route{{
		ID:            SimulatedRouteID,
		DriverName:    "Simulated Driver",
		VehicleType:   "SUV",
		StartTime:     start,
		EndTime:       start.Add(4 * time.Hour),
		TotalStops:    8,
		TotalPackages: 12,
	}}, nil
}

// GetRouteDetail returns the simulated stops for the simulated route.
func (ss *SimulationSource) GetRouteDetail(_ context.Context, routeID string) (*models.RouteDetail, error) {
	if routeID != SimulatedRouteID {
		return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, routeID)
	}

	start := ss.now().Add(time.Hour).UTC()

	return &models.RouteDetail{
		Route: models.Route{
			ID:             routeID,
			DriverName:     "Simulated Driver",
			VehicleType:    "Medium SUV",
			StartTime:      start,
			EndTime:        start.Add(4 * time.Hour),
			TotalStops:     8,
			TotalPackages:  12,
			EstimatedMiles: 45.2,
		},
		Stops: []models.Stop{
			{
				ID:            "STOP-001",
				OrderID:       "SIM-ORDER-001",
				CustomerName:  "John Smith",
				CustomerPhone: "555-0123",
				DeliveryNotes: "Leave at front door - Ring bell",
				Address: models.Address{
					Line1: "123 Main Street", City: "Seattle", State: "WA", PostalCode: "98101",
				},
				Packages:         2,
				EstimatedArrival: "14:30",
			},
			{
				ID:            "STOP-002",
				OrderID:       "SIM-ORDER-002",
				CustomerName:  "Maria Garcia",
				CustomerPhone: "555-0124",
				DeliveryNotes: "Back porch - Beware of dog",
				Address: models.Address{
					Line1: "456 Oak Avenue", City: "Seattle", State: "WA", PostalCode: "98102",
				},
				Packages:         1,
				EstimatedArrival: "14:45",
			},
			{
				ID:            "STOP-003",
				OrderID:       "SIM-ORDER-003",
				CustomerName:  "Robert Johnson",
				CustomerPhone: "555-0125",
				DeliveryNotes: "Front desk reception",
				Address: models.Address{
					Line1: "789 Pine Road", City: "Bellevue", State: "WA", PostalCode: "98004",
				},
				Packages:         3,
				EstimatedArrival: "15:15",
			},
		},
	}, nil
}

// AcknowledgeRoute logs the acknowledgment and always succeeds.
func (ss *SimulationSource) AcknowledgeRoute(ctx context.Context, routeID string) bool {
	ss.log.InfoContext(ctx, "Simulated acknowledgment", "route", routeID)
	return true
}
