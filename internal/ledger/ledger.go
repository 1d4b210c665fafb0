// Package ledger tracks route identifiers that have been fully processed, so that
// neither a later cycle nor a restarted process prints them again.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// Ledger is the in-memory set of processed route ids backed by a Store.
// It is owned by a single goroutine and is not safe for concurrent use.
type Ledger struct {
	store Store
	ids   map[string]struct{}
	log   *slog.Logger
}

// Open loads the persisted ledger from store.
func Open(ctx context.Context, store Store, log *slog.Logger) (*Ledger, error) {
	ids, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	log.InfoContext(ctx, "Ledger loaded", "routes", len(set))

	return &Ledger{store: store, ids: set, log: log}, nil
}

// Contains reports whether the route id was already processed.
func (l *Ledger) Contains(routeID string) bool {
	_, ok := l.ids[routeID]
	return ok
}

// Record adds the route id and persists the whole ledger immediately.
// On a persistence error the id stays recorded in memory and the error is returned.
// The save ignores cancellation of ctx so an interrupt cannot cut it short.
func (l *Ledger) Record(ctx context.Context, routeID string) error {
	l.ids[routeID] = struct{}{}

	if err := l.store.Save(context.WithoutCancel(ctx), l.IDs()); err != nil {
		return fmt.Errorf("failed to persist ledger: %w", err)
	}

	l.log.DebugContext(ctx, "Ledger persisted", "route", routeID, "routes", len(l.ids))

	return nil
}

// Len returns the number of processed routes.
func (l *Ledger) Len() int {
	return len(l.ids)
}

// IDs returns the processed route ids in sorted order.
func (l *Ledger) IDs() []string {
	ids := make([]string, 0, len(l.ids))
	for id := range l.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Ping checks the underlying store.
func (l *Ledger) Ping(ctx context.Context) error {
	return l.store.Ping(ctx)
}
