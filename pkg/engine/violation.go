package engine

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ViolationKind tags the class of a constraint violation
type ViolationKind int

const (
	KindNotNull ViolationKind = iota + 1
	KindCheck
	KindUnique
	KindForeignKey
)

func (k ViolationKind) String() string {
	switch k {
	case KindNotNull:
		return "not_null"
	case KindCheck:
		return "check"
	case KindUnique:
		return "unique"
	case KindForeignKey:
		return "foreign_key"
	default:
		return "unknown"
	}
}

// ViolationInfo is the structured view of one constraint violation, extracted
// from the driver error. It lives only for the failed write that raised it.
type ViolationInfo struct {
	Kind ViolationKind

	// Schema and Table are what the server attributes the violation to.
	// They can differ from the bound table (trigger on another table,
	// reverse foreign key reference).
	Schema string
	Table  string

	// Constraint is empty for NOT NULL violations
	Constraint string

	// Column is only reported for NOT NULL violations
	Column string

	// Message is the primary error text; for foreign keys its leading verb
	// is the only signal distinguishing the violation's direction
	Message string
}

// ExtractViolation pulls structured violation info out of a write error.
// Returns false for anything that is not a PostgreSQL constraint violation.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
func ExtractViolation(err error) (ViolationInfo, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ViolationInfo{}, false
	}

	var kind ViolationKind
	switch pgErr.Code {
	case "23502": // not_null_violation
		kind = KindNotNull
	case "23514": // check_violation
		kind = KindCheck
	case "23505": // unique_violation
		kind = KindUnique
	case "23503": // foreign_key_violation
		kind = KindForeignKey
	default:
		return ViolationInfo{}, false
	}

	return ViolationInfo{
		Kind:       kind,
		Schema:     pgErr.SchemaName,
		Table:      pgErr.TableName,
		Constraint: pgErr.ConstraintName,
		Column:     pgErr.ColumnName,
		Message:    pgErr.Message,
	}, true
}

// fkDirection distinguishes the two sides of a foreign key violation
type fkDirection int

const (
	dirUnknown fkDirection = iota
	// dirReferencing: the written row's own FK points at a missing row
	dirReferencing
	// dirReferencedBy: another table's FK points at the written row
	dirReferencedBy
)

// foreignKeyDirection derives the violation direction from the server
// message's leading verb:
//
//	insert or update on table "posts" violates foreign key constraint ...
//	update or delete on table "users" violates foreign key constraint ...
//
// This is a heuristic on the server's message format and is deliberately the
// only place that inspects free text.
func foreignKeyDirection(message string) fkDirection {
	verb, _, _ := strings.Cut(strings.TrimSpace(message), " ")
	switch strings.ToLower(verb) {
	case "insert":
		return dirReferencing
	case "update":
		return dirReferencedBy
	default:
		return dirUnknown
	}
}
