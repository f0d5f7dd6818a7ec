package introspect

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type postgresIntrospector struct {
	db    DB
	close func() error
}

func newPostgresIntrospector(ctx context.Context, connStr string) (Introspector, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	return &postgresIntrospector{
		db:    conn,
		close: func() error { return conn.Close(context.Background()) },
	}, nil
}

// NewPostgres wraps an existing connection or pool. Close is a no-op since
// the introspector does not own the connection.
func NewPostgres(db DB) Introspector {
	return &postgresIntrospector{db: db}
}

func (pi *postgresIntrospector) Detect(ctx context.Context) (bool, error) {
	var version string
	err := pi.db.QueryRow(ctx, "SELECT version()").Scan(&version)
	return err == nil, err
}

// SupportsViolationInfo is always true for PostgreSQL: pgconn reports schema,
// table, constraint and column on every constraint violation.
func (pi *postgresIntrospector) SupportsViolationInfo() bool {
	return true
}

func (pi *postgresIntrospector) ListTables(ctx context.Context) ([]string, error) {
	rows, err := pi.db.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}

	return tables, rows.Err()
}

// resolveTable maps a possibly-qualified, possibly-quoted table name to its
// catalog identity. to_regclass applies the server's own quoting and
// search-path rules, so the returned names are canonical.
const resolveTableQuery = `
	SELECT c.oid, n.nspname, c.relname, c.relkind
	FROM pg_catalog.pg_class c
	JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
	WHERE c.oid = to_regclass($1)
`

// checkColumnsQuery lists CHECK constraints with participating columns in
// declaration order.
const checkColumnsQuery = `
	SELECT con.conname, a.attname
	FROM pg_catalog.pg_constraint con
	JOIN LATERAL unnest(con.conkey) WITH ORDINALITY AS k(attnum, ord) ON true
	JOIN pg_catalog.pg_attribute a
		ON a.attrelid = con.conrelid AND a.attnum = k.attnum
	WHERE con.conrelid = $1 AND con.contype = 'c'
	ORDER BY con.conname, k.ord
`

// uniqueIndexColumnsQuery lists unique indexes that map to a plain column
// list. Expression indexes (indexprs set, or attnum 0 entries) cannot be
// attributed to columns and are excluded here so they fall through to the
// raw error at classification time. Partial indexes are fine.
const uniqueIndexColumnsQuery = `
	SELECT ic.relname, a.attname
	FROM pg_catalog.pg_index i
	JOIN pg_catalog.pg_class ic ON ic.oid = i.indexrelid
	JOIN LATERAL unnest(i.indkey) WITH ORDINALITY AS k(attnum, ord) ON true
	JOIN pg_catalog.pg_attribute a
		ON a.attrelid = i.indrelid AND a.attnum = k.attnum
	WHERE i.indrelid = $1 AND i.indisunique AND i.indexprs IS NULL AND k.attnum <> 0
	ORDER BY ic.relname, k.ord
`

// foreignKeyColumnsQuery lists FK constraints defined ON this table with
// their local columns.
const foreignKeyColumnsQuery = `
	SELECT con.conname, a.attname
	FROM pg_catalog.pg_constraint con
	JOIN LATERAL unnest(con.conkey) WITH ORDINALITY AS k(attnum, ord) ON true
	JOIN pg_catalog.pg_attribute a
		ON a.attrelid = con.conrelid AND a.attnum = k.attnum
	WHERE con.conrelid = $1 AND con.contype = 'f'
	ORDER BY con.conname, k.ord
`

// referencedByColumnsQuery lists FK constraints on OTHER tables that point at
// this table, together with this table's referenced columns.
const referencedByColumnsQuery = `
	SELECT fn.nspname, fc.relname, con.conname, a.attname
	FROM pg_catalog.pg_constraint con
	JOIN pg_catalog.pg_class fc ON fc.oid = con.conrelid
	JOIN pg_catalog.pg_namespace fn ON fn.oid = fc.relnamespace
	JOIN LATERAL unnest(con.confkey) WITH ORDINALITY AS k(attnum, ord) ON true
	JOIN pg_catalog.pg_attribute a
		ON a.attrelid = con.confrelid AND a.attnum = k.attnum
	WHERE con.confrelid = $1 AND con.contype = 'f'
	ORDER BY fn.nspname, fc.relname, con.conname, k.ord
`

func (pi *postgresIntrospector) TableConstraints(ctx context.Context, table string) (*TableConstraints, error) {
	var (
		oid     uint32
		schema  string
		relname string
		relkind string
	)
	err := pi.db.QueryRow(ctx, resolveTableQuery, table).Scan(&oid, &schema, &relname, &relkind)
	if errors.Is(err, pgx.ErrNoRows) {
		// Not a resolvable relation: derived source or unknown name.
		// Legitimate no-op state, not an error.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve table %s: %w", table, err)
	}
	if relkind != "r" && relkind != "p" {
		// Views, matviews, sequences: no row constraints to classify
		return nil, nil
	}

	checks, err := pi.queryConstraintColumns(ctx, checkColumnsQuery, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to read CHECK constraints for %s: %w", table, err)
	}

	uniques, err := pi.queryConstraintColumns(ctx, uniqueIndexColumnsQuery, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to read unique indexes for %s: %w", table, err)
	}

	fks, err := pi.queryConstraintColumns(ctx, foreignKeyColumnsQuery, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to read foreign keys for %s: %w", table, err)
	}

	refs, err := pi.queryReferencedColumns(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to read referencing foreign keys for %s: %w", table, err)
	}

	return &TableConstraints{
		Schema:        schema,
		Table:         relname,
		Checks:        groupColumns(checks),
		UniqueIndexes: groupColumns(uniques),
		ForeignKeys:   groupColumns(fks),
		ReferencedBy:  groupReferenced(refs),
	}, nil
}

func (pi *postgresIntrospector) queryConstraintColumns(ctx context.Context, query string, oid uint32) ([]constraintColumn, error) {
	rows, err := pi.db.Query(ctx, query, oid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []constraintColumn
	for rows.Next() {
		var c constraintColumn
		if err := rows.Scan(&c.Name, &c.Column); err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	return result, rows.Err()
}

func (pi *postgresIntrospector) queryReferencedColumns(ctx context.Context, oid uint32) ([]referencedColumn, error) {
	rows, err := pi.db.Query(ctx, referencedByColumnsQuery, oid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []referencedColumn
	for rows.Next() {
		var c referencedColumn
		if err := rows.Scan(&c.Schema, &c.Table, &c.Constraint, &c.Column); err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	return result, rows.Err()
}

func (pi *postgresIntrospector) Close() error {
	if pi.close != nil {
		return pi.close()
	}
	return nil
}
