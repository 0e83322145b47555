package storage

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"todo-api/internal/config"
)

func openTestEngine(t *testing.T) *Engine {
	t.Helper()
	uri := config.DatabaseURI{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "todo-test.db"),
	}
	engine, err := Open(uri, zerolog.Nop())
	if err != nil {
		t.Fatalf("open engine: %v", err)
	}
	t.Cleanup(func() { _ = engine.Close() })
	return engine
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	engine := openTestEngine(t)
	ctx := context.Background()

	if err := engine.EnsureSchema(ctx); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := engine.EnsureSchema(ctx); err != nil {
		t.Fatalf("second ensure: %v", err)
	}

	var count int
	err := engine.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks").Scan(&count)
	if err != nil {
		t.Fatalf("query tasks: %v", err)
	}
	if count != 0 {
		t.Fatalf("fresh table has %d rows", count)
	}
}

func TestPing(t *testing.T) {
	engine := openTestEngine(t)
	if err := engine.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestRebind(t *testing.T) {
	sqlite := openTestEngine(t)
	query := "SELECT id FROM tasks WHERE is_done = ? AND id > ?"

	if got := sqlite.Rebind(query); got != query {
		t.Fatalf("sqlite rebind changed query: %q", got)
	}

	pg := &Engine{driver: config.DriverPostgres}
	want := "SELECT id FROM tasks WHERE is_done = $1 AND id > $2"
	if got := pg.Rebind(query); got != want {
		t.Fatalf("postgres rebind = %q, want %q", got, want)
	}
}

func TestErrorCategory(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"deadline", context.DeadlineExceeded, "timeout"},
		{"wrapped deadline", errors.Join(errors.New("ping"), context.DeadlineExceeded), "timeout"},
		{"canceled", context.Canceled, "canceled"},
		{"conn done", sql.ErrConnDone, "connection_closed"},
		{"network", &net.OpError{Op: "dial", Err: errors.New("refused")}, "network_error"},
		{"opaque", errors.New("boom"), "database_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ErrorCategory(tc.err); got != tc.want {
				t.Fatalf("ErrorCategory = %q, want %q", got, tc.want)
			}
		})
	}
}
