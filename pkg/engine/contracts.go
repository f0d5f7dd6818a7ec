package engine

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ============================================================
// DATABASE ACCESS
// ============================================================

// Querier is the slice of pgx used by the write path.
// *pgxpool.Pool, *pgx.Conn and pgx.Tx all satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ============================================================
// MUTATION RESULT TYPES
// ============================================================

type InsertResult struct {
	ID       interface{} // Primary key
	Record   Row         // Full record (if RETURNING)
	Affected int
}

type UpdateResult struct {
	Records  []Row
	Affected int
}

type DeleteResult struct {
	Affected int
}

// ============================================================
// MUTATION BUILDER INTERFACES
// ============================================================

// InsertMutation builds and executes INSERT operations
type InsertMutation interface {
	// Set adds a column to insert
	Set(column string, value interface{}) InsertMutation

	// Debug enables debug output for this mutation
	Debug() InsertMutation

	// Execute runs the mutation; constraint violations come back as
	// *ValidationFailure when the binding can classify them
	Execute(ctx context.Context) (*InsertResult, error)
}

// UpdateMutation builds and executes UPDATE operations
type UpdateMutation interface {
	// Set adds a column to update
	Set(column string, value interface{}) UpdateMutation

	// Filter adds a filter condition (WHERE clause)
	Filter(column string, operator string, value interface{}) UpdateMutation

	// Debug enables debug output for this mutation
	Debug() UpdateMutation

	// Execute runs the mutation
	Execute(ctx context.Context) (*UpdateResult, error)
}

// DeleteMutation builds and executes DELETE operations
type DeleteMutation interface {
	// Filter adds a filter condition (WHERE clause)
	Filter(column string, operator string, value interface{}) DeleteMutation

	// Debug enables debug output for this mutation
	Debug() DeleteMutation

	// Execute runs the mutation
	Execute(ctx context.Context) (*DeleteResult, error)
}

// ============================================================
// FACTORY
// ============================================================

// MutationFactory creates mutation builders
//
// CRITICAL: Factory is STATELESS.
// The binding is passed in each call to allow the registry pattern.
// This avoids import cycles (engine <-> mutation).
//
// Factory is registered once via init() in the mutation package.
// Bindings use it via getMutationFactory() from the registry.
type MutationFactory interface {
	// NewInsert creates a builder for INSERT operations against a binding
	NewInsert(binding *Binding) InsertMutation

	// NewUpdate creates a builder for UPDATE operations
	NewUpdate(binding *Binding) UpdateMutation

	// NewDelete creates a builder for DELETE operations
	NewDelete(binding *Binding) DeleteMutation
}
