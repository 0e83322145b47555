package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"todo-api/internal/config"
)

const (
	// connRecycleAge discards pooled connections after five minutes so a
	// restarted or failed-over database never leaves stale sockets in the
	// pool.
	connRecycleAge = 5 * time.Minute

	connMaxIdleAge = time.Minute
)

// Engine owns the process-wide connection pool and the tasks schema.
// It is constructed once at startup and handed to the task service and
// the health handler explicitly.
type Engine struct {
	db     *sql.DB
	driver string
	logger zerolog.Logger
}

func Open(uri config.DatabaseURI, logger zerolog.Logger) (*Engine, error) {
	db, err := sql.Open(uri.Driver, uri.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetConnMaxLifetime(connRecycleAge)
	db.SetConnMaxIdleTime(connMaxIdleAge)

	return &Engine{
		db:     db,
		driver: uri.Driver,
		logger: logger,
	}, nil
}

func (e *Engine) DB() *sql.DB {
	return e.db
}

func (e *Engine) Close() error {
	return e.db.Close()
}

// Ping runs a trivial query through the pool. Used at startup and by
// the health probe.
func (e *Engine) Ping(ctx context.Context) error {
	var one int
	err := e.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
	if err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

const createTasksTablePostgres = `
CREATE TABLE IF NOT EXISTS tasks (
    id         BIGSERIAL PRIMARY KEY,
    title      VARCHAR(255) NOT NULL,
    is_done    BOOLEAN      NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ  NOT NULL
)
`

const createTasksTableSQLite = `
CREATE TABLE IF NOT EXISTS tasks (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    title      VARCHAR(255) NOT NULL,
    is_done    BOOLEAN      NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP    NOT NULL
)
`

// EnsureSchema creates the tasks table if it is absent. Safe to run on
// every startup.
func (e *Engine) EnsureSchema(ctx context.Context) error {
	ddl := createTasksTablePostgres
	if e.driver == config.DriverSQLite {
		ddl = createTasksTableSQLite
	}

	_, err := e.db.ExecContext(ctx, ddl)
	if err != nil {
		return fmt.Errorf("ensure tasks schema: %w", err)
	}

	e.logger.Debug().
		Str("driver", e.driver).
		Msg("ensured tasks schema")
	return nil
}

// Rebind rewrites ? placeholders into the $N form postgres expects.
// Queries are written once with ? and rebound per dialect; sqlite takes
// them unchanged.
func (e *Engine) Rebind(query string) string {
	if e.driver != config.DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ErrorCategory names the class of a storage error for diagnostics
// without exposing the error text, which may embed hosts or
// credentials.
func ErrorCategory(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, sql.ErrTxDone):
		return "connection_closed"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return "network_error"
	}

	// Fall back to the concrete type name of the root cause, stripped
	// of pointer and package qualifiers.
	cause := err
	for {
		unwrapped := errors.Unwrap(cause)
		if unwrapped == nil {
			break
		}
		cause = unwrapped
	}
	name := fmt.Sprintf("%T", cause)
	name = strings.TrimLeft(name, "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if name == "errorString" || name == "wrapError" {
		return "database_error"
	}
	return name
}
