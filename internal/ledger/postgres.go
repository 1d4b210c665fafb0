package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the subset of *pgxpool.Pool used by PostgresStore.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore keeps the ledger in the processed_routes table.
type PostgresStore struct {
	db  Database
	log *slog.Logger
}

// NewDatabase opens a connection pool and verifies it with a ping.
func NewDatabase(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, cfg.Port),
		Path:   cfg.Name,
	}

	pool, err := pgxpool.New(ctx, dsn.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// NewPostgresStore creates a new instance of PostgresStore with the provided Database.
func NewPostgresStore(db Database, log *slog.Logger) *PostgresStore {
	return &PostgresStore{db: db, log: log}
}

// EnsureSchema creates the ledger table if it does not exist yet.
func (ps *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS processed_routes (
			route_id    TEXT PRIMARY KEY,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	if _, err := ps.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create processed_routes table: %w", err)
	}

	return nil
}

// Load retrieves every processed route id, ordered by id.
func (ps *PostgresStore) Load(ctx context.Context) ([]string, error) {
	query := `
		SELECT route_id
		FROM processed_routes
		ORDER BY route_id ASC;
	`

	rows, err := ps.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query processed routes: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if errScan := rows.Scan(&id); errScan != nil {
			return nil, fmt.Errorf("failed to scan processed route: %w", errScan)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	ps.log.DebugContext(ctx, "Processed routes loaded from database", "count", len(ids))

	return ids, nil
}

// Save replaces the stored set with ids inside a single transaction.
// Ids already stored keep their original recorded_at.
func (ps *PostgresStore) Save(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}

	deleteQuery := `
		DELETE FROM processed_routes
		WHERE NOT (route_id = ANY($1));
	`
	insertQuery := `
		INSERT INTO processed_routes (route_id)
		SELECT unnest($1::text[])
		ON CONFLICT (route_id) DO NOTHING;
	`

	tx, err := ps.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err = tx.Exec(ctx, deleteQuery, ids); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to delete stale processed routes: %w", err)
	}

	if _, err = tx.Exec(ctx, insertQuery, ids); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to insert processed routes: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit processed routes: %w", err)
	}

	return nil
}

// Ping checks the database connection.
func (ps *PostgresStore) Ping(ctx context.Context) error {
	return ps.db.Ping(ctx)
}

// Close releases the connection pool.
func (ps *PostgresStore) Close() error {
	ps.db.Close()
	return nil
}
