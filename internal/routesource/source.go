package routesource

import (
	"context"
	"errors"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// Source is an interface that defines access to delivery routes.
// ListRoutes returns every route whose schedule intersects the window, GetRouteDetail
// returns one route with its stops and AcknowledgeRoute reports the route as received.
// Implementations never retry internally.
type Source interface {
	ListRoutes(ctx context.Context, windowStart, windowEnd time.Time) ([]models.Route, error)
	GetRouteDetail(ctx context.Context, routeID string) (*models.RouteDetail, error)
	AcknowledgeRoute(ctx context.Context, routeID string) bool
}

// Common errors for route sources.
var (
	ErrRouteNotFound  = errors.New("route not found")
	ErrUnauthorized   = errors.New("route source unauthorized (invalid API key)")
	ErrMissingBaseURL = errors.New("base URL is required for HTTP route source")
)
