package routesource_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/UnknownOlympus/hermes/internal/routesource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const testBaseURL = "https://routes.example.com/api/"

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func respond(status int, body string) func(*http.Request) (*http.Response, error) {
	return func(_ *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewBufferString(body)),
		}, nil
	}
}

func TestHTTPSource_ListRoutes(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	apiKey := "test-api-key"
	defaultRL := rate.NewLimiter(rate.Inf, 0)
	windowStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.Add(24 * time.Hour)

	t.Run("successful listing", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Equal(t, "/api/routes", req.URL.Path)
				assert.Equal(t, "2026-03-02T00:00:00Z", req.URL.Query().Get("startTime"))
				assert.Equal(t, "2026-03-03T00:00:00Z", req.URL.Query().Get("endTime"))
				assert.Equal(t, apiKey, req.Header.Get("X-Api-Key"))
				assert.Equal(t, "application/json", req.Header.Get("Accept"))

				return respond(http.StatusOK, `{"routes":[
					{"routeId":"R-1","driverName":"Ann","startTime":"2026-03-02T08:00:00Z","totalStops":4},
					{"routeId":"R-2","vehicleType":"Van"}
				]}`)(req)
			},
		}

		source := routesource.NewHTTPSourceWithClient(mockClient, testBaseURL, apiKey, defaultRL, logger)
		routes, err := source.ListRoutes(ctx, windowStart, windowEnd)

		require.NoError(t, err)
		require.Len(t, routes, 2)
		assert.Equal(t, "R-1", routes[0].ID)
		assert.Equal(t, "Ann", routes[0].DriverName)
		assert.Equal(t, 4, routes[0].TotalStops)
		assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), routes[0].StartTime)
		assert.Equal(t, "Van", routes[1].VehicleType)
		assert.True(t, routes[1].StartTime.IsZero())
	})

	t.Run("blank and zoneless times do not fail the listing", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusOK, `{"routes":[
			{"routeId":"R-1","startTime":"","endTime":"not a time"},
			{"routeId":"R-2","startTime":"2026-03-02T09:15:00"}
		]}`)}

		source := routesource.NewHTTPSourceWithClient(mockClient, testBaseURL, apiKey, defaultRL, logger)
		routes, err := source.ListRoutes(ctx, windowStart, windowEnd)

		require.NoError(t, err)
		require.Len(t, routes, 2)
		assert.True(t, routes[0].StartTime.IsZero())
		assert.True(t, routes[0].EndTime.IsZero())
		assert.Equal(t, time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC), routes[1].StartTime)
	})

	t.Run("server error", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusBadGateway, "upstream down")}

		source := routesource.NewHTTPSourceWithClient(mockClient, testBaseURL, apiKey, defaultRL, logger)
		routes, err := source.ListRoutes(ctx, windowStart, windowEnd)

		require.Error(t, err)
		assert.Nil(t, routes)
		assert.ErrorContains(t, err, "route API returned status 502: upstream down")
	})

	t.Run("unauthorized", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusForbidden, "forbidden")}

		source := routesource.NewHTTPSourceWithClient(mockClient, testBaseURL, apiKey, defaultRL, logger)
		routes, err := source.ListRoutes(ctx, windowStart, windowEnd)

		require.Error(t, err)
		assert.Nil(t, routes)
		assert.ErrorIs(t, err, routesource.ErrUnauthorized)
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		source := routesource.NewHTTPSourceWithClient(mockClient, testBaseURL, apiKey, defaultRL, logger)
		_, err := source.ListRoutes(ctx, windowStart, windowEnd)

		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("malformed body", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusOK, `{"routes":`)}

		source := routesource.NewHTTPSourceWithClient(mockClient, testBaseURL, apiKey, defaultRL, logger)
		_, err := source.ListRoutes(ctx, windowStart, windowEnd)

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to decode routes response")
	})

	t.Run("rate limit exceeded", func(t *testing.T) {
		rateCtx, cancel := context.WithCancel(context.Background())
		cancel() // cancel immediately
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("HTTP client should not be called when rate limit blocks")
				return &http.Response{}, nil
			},
		}

		limiter := rate.NewLimiter(rate.Every(time.Second), 1)

		source := routesource.NewHTTPSourceWithClient(mockClient, testBaseURL, apiKey, limiter, logger)
		_, err := source.ListRoutes(rateCtx, windowStart, windowEnd)

		require.Error(t, err)
		assert.ErrorContains(t, err, "rate limit exceeded")
	})
}

func TestHTTPSource_GetRouteDetail(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	defaultRL := rate.NewLimiter(rate.Inf, 0)

	t.Run("successful detail", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "/api/routes/R%201", req.URL.EscapedPath())
				return respond(http.StatusOK, `{
					"route":{"driverName":"Ann"},
					"stops":[
						{"stopId":"S-1","orderId":"O-1","address":{"addressLine1":"1 Elm St","city":"Kyiv"}},
						{"stopId":"S-2","orderId":"O-2","packages":3,"estimatedArrival":"10:15"}
					]
				}`)(req)
			},
		}

		source := routesource.NewHTTPSourceWithClient(mockClient, testBaseURL, "", defaultRL, logger)
		detail, err := source.GetRouteDetail(ctx, "R 1")

		require.NoError(t, err)
		require.NotNil(t, detail)
		assert.Equal(t, "R 1", detail.Route.ID)
		assert.Equal(t, "Ann", detail.Route.DriverName)
		require.Len(t, detail.Stops, 2)
		assert.Equal(t, "1 Elm St", detail.Stops[0].Address.Line1)
		assert.Equal(t, "Kyiv", detail.Stops[0].Address.City)
		assert.Equal(t, 3, detail.Stops[1].Packages)
		assert.Equal(t, "10:15", detail.Stops[1].EstimatedArrival)
	})

	t.Run("no api key header when key is empty", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Empty(t, req.Header.Get("X-Api-Key"))
				return respond(http.StatusOK, `{"route":{"routeId":"R-1"},"stops":[]}`)(req)
			},
		}

		source := routesource.NewHTTPSourceWithClient(mockClient, testBaseURL, "", defaultRL, logger)
		_, err := source.GetRouteDetail(ctx, "R-1")

		require.NoError(t, err)
	})

	t.Run("route not found", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusNotFound, "")}

		source := routesource.NewHTTPSourceWithClient(mockClient, testBaseURL, "", defaultRL, logger)
		detail, err := source.GetRouteDetail(ctx, "missing")

		require.Error(t, err)
		assert.Nil(t, detail)
		assert.ErrorIs(t, err, routesource.ErrRouteNotFound)
		assert.ErrorContains(t, err, "missing")
	})
}

func TestHTTPSource_AcknowledgeRoute(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	defaultRL := rate.NewLimiter(rate.Inf, 0)

	t.Run("accepted", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodPost, req.Method)
				assert.Equal(t, "/api/routes/R-1/acknowledge", req.URL.Path)
				return respond(http.StatusNoContent, "")(req)
			},
		}

		source := routesource.NewHTTPSourceWithClient(mockClient, testBaseURL, "key", defaultRL, logger)

		assert.True(t, source.AcknowledgeRoute(ctx, "R-1"))
	})

	t.Run("rejected", func(t *testing.T) {
		mockClient := &mockHTTPClient{doFunc: respond(http.StatusConflict, "already acknowledged")}

		source := routesource.NewHTTPSourceWithClient(mockClient, testBaseURL, "key", defaultRL, logger)

		assert.False(t, source.AcknowledgeRoute(ctx, "R-1"))
	})

	t.Run("transport failure", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, errors.New("connection reset")
			},
		}

		source := routesource.NewHTTPSourceWithClient(mockClient, testBaseURL, "key", defaultRL, logger)

		assert.False(t, source.AcknowledgeRoute(ctx, "R-1"))
	})
}
