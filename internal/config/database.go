package config

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strings"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"

	// sqliteFallbackPath is used when no network database is configured.
	sqliteFallbackPath = "todo.db"
)

// DatabaseURI is a resolved connection target: a database/sql driver
// name and the DSN understood by that driver.
type DatabaseURI struct {
	Driver string
	DSN    string
}

// ResolveCredential unwraps credential-manager rotation payloads. Some
// environments inject DB_USER and DB_PASSWORD as JSON objects instead of
// plain strings; when raw parses as a JSON object containing field, the
// field's value is returned. In every other case (not JSON, not an
// object, key absent, value not a string) raw is returned unchanged.
func ResolveCredential(raw, field string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return raw
	}

	var payload map[string]any
	err := json.Unmarshal([]byte(trimmed), &payload)
	if err != nil {
		return raw
	}

	value, ok := payload[field].(string)
	if !ok {
		return raw
	}
	return value
}

// URI resolves the connection target from the configuration.
//
// DATABASE_URL wins outright when set. Otherwise a postgres URI is
// assembled from the DB_* variables, provided host, name and a resolved
// user are all present. Anything less falls back to a local sqlite file,
// silently: missing configuration is never an error.
func (c DatabaseConfig) URI() DatabaseURI {
	if c.URL != "" {
		return parseDatabaseURL(c.URL)
	}

	user := ResolveCredential(c.User, "username")
	password := ResolveCredential(c.Password, "password")

	port := c.Port
	if port == "" {
		port = "5432"
	}

	if c.Host != "" && c.Name != "" && user != "" {
		return DatabaseURI{
			Driver: DriverPostgres,
			DSN: fmt.Sprintf("postgres://%s:%s@%s/%s",
				user,
				url.QueryEscape(password),
				net.JoinHostPort(c.Host, port),
				c.Name),
		}
	}

	return DatabaseURI{Driver: DriverSQLite, DSN: sqliteFallbackPath}
}

func parseDatabaseURL(raw string) DatabaseURI {
	switch {
	case strings.HasPrefix(raw, "sqlite://"):
		return DatabaseURI{Driver: DriverSQLite, DSN: strings.TrimPrefix(raw, "sqlite://")}
	case strings.HasPrefix(raw, "sqlite:"):
		return DatabaseURI{Driver: DriverSQLite, DSN: strings.TrimPrefix(raw, "sqlite:")}
	default:
		// postgres://, postgresql:// and key=value DSNs are all
		// understood by the pgx driver as-is.
		return DatabaseURI{Driver: DriverPostgres, DSN: raw}
	}
}
