package routesource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
	"golang.org/x/time/rate"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPSource implements Source against a JSON route API.
type HTTPSource struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL of the route API, without trailing slash
	apiKey  string        // API key sent in the X-Api-Key header
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

type routesResponse struct {
	Routes []models.Route `json:"routes"`
}

// NewHTTPSource creates a new HTTP route source.
func NewHTTPSource(baseURL, apiKey string, rateLimit int, log *slog.Logger) *HTTPSource {
	const timeout = 10

	return &HTTPSource{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewHTTPSourceWithClient allows injecting custom HTTP client.
func NewHTTPSourceWithClient(
	client HTTPClient,
	baseURL string,
	apiKey string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *HTTPSource {
	return &HTTPSource{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		log:     log,
		limiter: limiter,
	}
}

// ListRoutes fetches the routes scheduled within [windowStart, windowEnd).
func (hs *HTTPSource) ListRoutes(ctx context.Context, windowStart, windowEnd time.Time) ([]models.Route, error) {
	query := url.Values{}
	query.Set("startTime", windowStart.Format(time.RFC3339))
	query.Set("endTime", windowEnd.Format(time.RFC3339))

	body, err := hs.do(ctx, http.MethodGet, "/routes?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	var result routesResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode routes response: %w", err)
	}

	hs.log.DebugContext(ctx, "Route API listed routes", "count", len(result.Routes))

	return result.Routes, nil
}

// GetRouteDetail fetches one route with its stops.
func (hs *HTTPSource) GetRouteDetail(ctx context.Context, routeID string) (*models.RouteDetail, error) {
	body, err := hs.do(ctx, http.MethodGet, "/routes/"+url.PathEscape(routeID))
	if err != nil {
		return nil, fmt.Errorf("failed to get route %s: %w", routeID, err)
	}

	var detail models.RouteDetail
	if err = json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode route detail: %w", err)
	}

	if detail.Route.ID == "" {
		detail.Route.ID = routeID
	}

	return &detail, nil
}

// AcknowledgeRoute reports the route as received. Failures are logged and reported as false.
func (hs *HTTPSource) AcknowledgeRoute(ctx context.Context, routeID string) bool {
	_, err := hs.do(ctx, http.MethodPost, "/routes/"+url.PathEscape(routeID)+"/acknowledge")
	if err != nil {
		hs.log.ErrorContext(ctx, "Failed to acknowledge route", "route", routeID, "error", err)
		return false
	}

	return true
}

// do performs one rate-limited request and returns the body of a 2xx response.
func (hs *HTTPSource) do(ctx context.Context, method, path string) ([]byte, error) {
	if err := hs.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	reqURL := hs.baseURL + path
	hs.log.DebugContext(ctx, "Route API request", "method", method, "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if hs.apiKey != "" {
		req.Header.Set("X-Api-Key", hs.apiKey)
	}

	resp, err := hs.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrRouteNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		hs.log.ErrorContext(ctx, "Route API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("route API returned status %d: %s", resp.StatusCode, string(body))
	}
}
