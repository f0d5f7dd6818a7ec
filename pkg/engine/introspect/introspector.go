package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// DatabaseType identifies the database engine
type DatabaseType string

const (
	PostgreSQL DatabaseType = "postgresql"
	MySQL      DatabaseType = "mysql"
	SQLite     DatabaseType = "sqlite"
	Unknown    DatabaseType = "unknown"
)

// DB is the query surface the introspectors need.
// *pgx.Conn and *pgxpool.Pool both satisfy it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Introspector is the interface all DB engines must implement
type Introspector interface {
	// Detect confirms this is the right DB type
	Detect(ctx context.Context) (bool, error)

	// SupportsViolationInfo reports whether the driver yields structured
	// constraint-violation info (schema, table, constraint, column).
	// When false, TableConstraints always returns nil and the whole
	// violation-classification path is a permanent no-op.
	SupportsViolationInfo() bool

	// ListTables returns all user-defined tables
	ListTables(ctx context.Context) ([]string, error)

	// TableConstraints builds the constraint snapshot for one table.
	// A nil snapshot with nil error means the source is not a plain table
	// (derived source, view, unknown relation) and classification must be
	// skipped for it.
	TableConstraints(ctx context.Context, table string) (*TableConstraints, error)

	// Close releases the introspector's connection, if it owns one
	Close() error
}

// NewIntrospector creates the right introspector for a connection string,
// dialing its own connection. For an already-connected pool use NewPostgres.
func NewIntrospector(ctx context.Context, connStr string) (Introspector, error) {
	normalizedConn := strings.TrimSpace(connStr)
	if normalizedConn == "" {
		return nil, fmt.Errorf("connection string is required")
	}

	dbType := detectFromConnString(normalizedConn)

	switch dbType {
	case PostgreSQL:
		return newPostgresIntrospector(ctx, normalizedConn)
	case MySQL:
		return nil, fmt.Errorf("MySQL support coming in v0.2")
	case SQLite:
		return nil, fmt.Errorf("SQLite support coming in v0.2")
	default:
		return nil, fmt.Errorf("unsupported database connection scheme")
	}
}

// detectFromConnString identifies DB type from connection string
func detectFromConnString(connStr string) DatabaseType {
	normalized := strings.ToLower(strings.TrimSpace(connStr))

	if strings.HasPrefix(normalized, "postgresql://") || strings.HasPrefix(normalized, "postgres://") {
		return PostgreSQL
	}
	if isLikelyPostgresDSN(normalized) {
		return PostgreSQL
	}
	if strings.HasPrefix(normalized, "mysql://") {
		return MySQL
	}
	if strings.HasPrefix(normalized, "sqlite://") || strings.HasPrefix(normalized, "file:") {
		return SQLite
	}

	return Unknown
}

func isLikelyPostgresDSN(connStr string) bool {
	if !strings.Contains(connStr, "=") {
		return false
	}

	return strings.Contains(connStr, "host=") ||
		strings.Contains(connStr, "dbname=") ||
		strings.Contains(connStr, "user=")
}
