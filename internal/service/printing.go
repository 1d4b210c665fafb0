package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/hermes/internal/label"
	"github.com/UnknownOlympus/hermes/internal/metrics"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/routesource"
)

// Printer sends one rendered document and reports whether it was delivered.
type Printer interface {
	Send(ctx context.Context, payload []byte) bool
}

// Ledger is the set of routes that were already printed.
type Ledger interface {
	Contains(routeID string) bool
	Record(ctx context.Context, routeID string) error
	Len() int
}

// ErrCyclePanic wraps a panic recovered at the cycle boundary.
var ErrCyclePanic = errors.New("polling cycle panicked")

// PrintingService polls the route source, prints labels for routes that are not in
// the ledger yet, acknowledges them and records them in the ledger. All work happens
// on the goroutine that calls Run; routes and documents are handled one at a time so
// labels of different routes never interleave on the printer.
type PrintingService struct {
	log      *slog.Logger       // Logger for logging service activities
	source   routesource.Source // Source of delivery routes
	renderer *label.Renderer    // Renderer producing label documents
	printer  Printer            // Printer receiving the documents
	ledger   Ledger             // Ledger of processed routes
	metrics  *metrics.Metrics   // Metrics for tracking service performance
	clock    Clock              // Clock driving the polling schedule
	interval time.Duration      // Wait between successful cycles
	cooldown time.Duration      // Wait after a failed cycle
}

// NewPrintingService creates a new instance of PrintingService.
func NewPrintingService(
	log *slog.Logger,
	source routesource.Source,
	renderer *label.Renderer,
	printer Printer,
	ledger Ledger,
	metrics *metrics.Metrics,
	clock Clock,
	interval time.Duration,
	cooldown time.Duration,
) *PrintingService {
	return &PrintingService{
		log:      log,
		source:   source,
		renderer: renderer,
		printer:  printer,
		ledger:   ledger,
		metrics:  metrics,
		clock:    clock,
		interval: interval,
		cooldown: cooldown,
	}
}

// Run processes new routes immediately and then once per interval until ctx is
// canceled. A failed cycle is retried after the cooldown instead of the interval.
func (ps *PrintingService) Run(ctx context.Context) {
	ps.log.InfoContext(ctx, "Route printing service started", "interval", ps.interval, "cooldown", ps.cooldown)
	ps.metrics.LedgerSize.Set(float64(ps.ledger.Len()))

	for {
		if ctx.Err() != nil {
			ps.log.InfoContext(ctx, "Route printing service stopped.")
			return
		}

		wait := ps.interval
		if err := ps.runCycle(ctx); err != nil {
			ps.log.ErrorContext(ctx, "Error processing routes", "error", err, "retry_in", ps.cooldown)
			ps.metrics.CycleErrors.Inc()
			wait = ps.cooldown
		}

		select {
		case <-ctx.Done():
			ps.log.InfoContext(ctx, "Route printing service stopped.")
			return
		case <-ps.clock.After(wait):
		}
	}
}

// runCycle runs one cycle and turns a panic into an error.
func (ps *PrintingService) runCycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCyclePanic, r)
		}
	}()

	return ps.processNewRoutes(ctx)
}

// processNewRoutes lists today's routes and processes the ones missing from the ledger.
// Only a failure to list routes fails the cycle.
func (ps *PrintingService) processNewRoutes(ctx context.Context) error {
	ps.log.InfoContext(ctx, "Checking for new routes...")

	windowStart, windowEnd := dayWindow(ps.clock.Now())

	startTime := time.Now()
	routes, err := ps.source.ListRoutes(ctx, windowStart, windowEnd)
	ps.metrics.RequestSeconds.WithLabelValues("list_routes").Observe(time.Since(startTime).Seconds())
	if err != nil {
		return fmt.Errorf("failed to list routes: %w", err)
	}

	newRoutes := ps.filterNew(ctx, routes)
	ps.log.InfoContext(ctx, "Found new routes to process", "routes", len(newRoutes), "listed", len(routes))

	for idx, route := range newRoutes {
		if ctx.Err() != nil {
			ps.log.WarnContext(ctx, "Cycle interrupted, remaining routes left for the next run",
				"remaining", len(newRoutes)-idx)
			return nil
		}

		state := ps.processRoute(ctx, route)
		ps.log.DebugContext(ctx, "Route processing finished", "route", route.ID, "state", state)
	}

	return nil
}

// filterNew drops routes without an id, routes already in the ledger and repeated ids.
func (ps *PrintingService) filterNew(ctx context.Context, routes []models.Route) []models.Route {
	seen := make(map[string]struct{}, len(routes))
	newRoutes := make([]models.Route, 0, len(routes))

	for _, route := range routes {
		if route.ID == "" {
			ps.log.ErrorContext(ctx, "Route has no ID", "driver", route.DriverName)
			ps.metrics.RoutesProcessed.WithLabelValues("invalid").Inc()
			continue
		}
		if _, dup := seen[route.ID]; dup {
			continue
		}
		seen[route.ID] = struct{}{}

		if ps.ledger.Contains(route.ID) {
			ps.log.DebugContext(ctx, "Route already processed", "route", route.ID)
			continue
		}
		newRoutes = append(newRoutes, route)
	}

	return newRoutes
}

// processRoute takes one route from discovery to the ledger and returns the last
// state it reached. Failures are logged and contained to this route.
func (ps *PrintingService) processRoute(ctx context.Context, route models.Route) (state RouteState) {
	state = StateDiscovered

	defer func() {
		if r := recover(); r != nil {
			ps.log.ErrorContext(ctx, "Error processing route", "route", route.ID, "state", state, "error", r)
			ps.metrics.RoutesProcessed.WithLabelValues("panic").Inc()
		}
	}()

	ps.log.InfoContext(ctx, "Processing route", "route", route.ID)

	startTime := time.Now()
	detail, err := ps.source.GetRouteDetail(ctx, route.ID)
	ps.metrics.RequestSeconds.WithLabelValues("get_route_detail").Observe(time.Since(startTime).Seconds())
	if err != nil {
		if errors.Is(err, routesource.ErrRouteNotFound) {
			ps.log.WarnContext(ctx, "Route not found at source", "route", route.ID, "error", err)
			ps.metrics.RoutesProcessed.WithLabelValues("not_found").Inc()
		} else {
			ps.log.ErrorContext(ctx, "Could not get details for route", "route", route.ID, "error", err)
			ps.metrics.RoutesProcessed.WithLabelValues("detail_failed").Inc()
		}
		return state
	}
	state = StateDetailFetched

	job := ps.renderer.BuildPrintJob(*detail)
	state = StateRendered

	if !ps.print(ctx, job) {
		ps.log.ErrorContext(ctx, "Failed to print documents for route", "route", route.ID)
		ps.metrics.RoutesProcessed.WithLabelValues("print_failed").Inc()
		return state
	}
	state = StatePrinted
	ps.log.InfoContext(ctx, "Successfully printed documents for route",
		"route", route.ID, "documents", len(job.Documents))

	startTime = time.Now()
	acknowledged := ps.source.AcknowledgeRoute(ctx, route.ID)
	ps.metrics.RequestSeconds.WithLabelValues("acknowledge_route").Observe(time.Since(startTime).Seconds())
	if acknowledged {
		state = StateAcknowledged
		ps.metrics.Acknowledgments.WithLabelValues("success").Inc()
		ps.log.InfoContext(ctx, "Acknowledged route", "route", route.ID)
	} else {
		ps.metrics.Acknowledgments.WithLabelValues("failure").Inc()
		ps.log.WarnContext(ctx, "Route was printed but not acknowledged", "route", route.ID)
	}

	if err = ps.ledger.Record(ctx, route.ID); err != nil {
		ps.log.ErrorContext(ctx, "Failed to persist ledger, route may be reprinted after restart",
			"route", route.ID, "error", err)
	}
	state = StateRecorded
	ps.metrics.LedgerSize.Set(float64(ps.ledger.Len()))
	ps.metrics.RoutesProcessed.WithLabelValues("printed").Inc()

	return state
}

// print sends every document of the job in order. The result is true only if all
// documents were delivered; a failed document does not stop the remaining ones.
func (ps *PrintingService) print(ctx context.Context, job label.PrintJob) bool {
	success := true

	for idx, doc := range job.Documents {
		if ctx.Err() != nil {
			ps.log.WarnContext(ctx, "Printing interrupted", "route", job.RouteID, "document", idx+1)
			return false
		}

		if ps.printer.Send(ctx, doc.Bytes()) {
			ps.metrics.DocumentsSent.WithLabelValues("success").Inc()
			continue
		}

		ps.metrics.DocumentsSent.WithLabelValues("failure").Inc()
		ps.log.ErrorContext(ctx, "Failed to send document",
			"route", job.RouteID, "document", idx+1, "total", len(job.Documents))
		success = false
	}

	return success
}
