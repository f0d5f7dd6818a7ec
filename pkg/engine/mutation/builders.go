package mutation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fieldfence/fieldfence/pkg/engine"
)

// ============================================================
// INSERT BUILDER
// ============================================================

type InsertBuilder struct {
	binding *engine.Binding
	values  map[string]interface{}

	// Debug settings
	debugLevel *engine.DebugLevel
}

func NewInsertBuilder(binding *engine.Binding) *InsertBuilder {
	return &InsertBuilder{
		binding: binding,
		values:  make(map[string]interface{}),
	}
}

// Set implements engine.InsertMutation
func (ib *InsertBuilder) Set(column string, value interface{}) engine.InsertMutation {
	ib.values[column] = value
	return ib
}

// Debug implements engine.InsertMutation
func (ib *InsertBuilder) Debug() engine.InsertMutation {
	level := engine.DebugSQL
	ib.debugLevel = &level
	return ib
}

// Execute implements engine.InsertMutation
func (ib *InsertBuilder) Execute(ctx context.Context) (*engine.InsertResult, error) {
	start := time.Now()

	if len(ib.values) == 0 {
		return nil, fmt.Errorf("INSERT on %s has no values - call Set() first", ib.binding.Table())
	}

	sql, orderedValues := ib.generateSQL()

	if ib.shouldDebug() {
		fmt.Printf("[SQL] %s\n", sql)
		fmt.Printf("[VALUES] %v\n\n", orderedValues)
	}

	// Execute via pgx; constraint violations route through the binding's
	// classifier, everything else propagates untouched
	rows, err := ib.binding.DB().Query(ctx, sql, orderedValues...)
	if err != nil {
		return nil, ib.binding.ConvertViolation(err)
	}
	defer rows.Close()

	// Parse RETURNING *
	if !rows.Next() {
		// Violations on deferred execution surface here, not on Query
		if err := rows.Err(); err != nil {
			return nil, ib.binding.ConvertViolation(err)
		}
		return nil, fmt.Errorf("INSERT executed but returned no rows")
	}

	values, err := rows.Values()
	if err != nil {
		return nil, fmt.Errorf("failed to scan result: %w", err)
	}

	record := make(engine.Row)
	columns := rows.FieldDescriptions()
	for i, col := range columns {
		record[col.Name] = values[i]
	}

	var id interface{}
	if len(values) > 0 {
		id = values[0]
		for i, col := range columns {
			if col.Name == "id" {
				id = values[i]
				break
			}
		}
	}

	result := &engine.InsertResult{
		ID:       id,
		Record:   record,
		Affected: 1,
	}

	if ib.shouldTrace() {
		fmt.Printf("[TRACE] INSERT on %s: %v, 1 row\n", ib.binding.Table(), time.Since(start))
	}

	return result, nil
}

func (ib *InsertBuilder) shouldDebug() bool {
	if ib.debugLevel != nil {
		return *ib.debugLevel >= engine.DebugSQL
	}
	return ib.binding.Debug().Level >= engine.DebugSQL
}

func (ib *InsertBuilder) shouldTrace() bool {
	if ib.debugLevel != nil {
		return *ib.debugLevel >= engine.DebugTrace
	}
	return ib.binding.Debug().Level >= engine.DebugTrace
}

func (ib *InsertBuilder) generateSQL() (string, []interface{}) {
	// Sort columns for a deterministic statement
	columns := make([]string, 0, len(ib.values))
	for column := range ib.values {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	quoted := make([]string, 0, len(columns))
	placeholders := make([]string, 0, len(columns))
	values := make([]interface{}, 0, len(columns))
	for i, column := range columns {
		quoted = append(quoted, quoteIdent(column))
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		values = append(values, ib.values[column])
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		ib.binding.QualifiedName(),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)

	return sql, values
}

// ============================================================
// UPDATE BUILDER
// ============================================================

type UpdateBuilder struct {
	binding *engine.Binding
	filters map[string]interface{}
	updates map[string]interface{}

	// Debug settings
	debugLevel *engine.DebugLevel
}

func NewUpdateBuilder(binding *engine.Binding) *UpdateBuilder {
	return &UpdateBuilder{
		binding: binding,
		filters: make(map[string]interface{}),
		updates: make(map[string]interface{}),
	}
}

// Filter implements engine.UpdateMutation
func (ub *UpdateBuilder) Filter(column string, op string, value interface{}) engine.UpdateMutation {
	key := fmt.Sprintf("%s:%s", column, op)
	ub.filters[key] = value
	return ub
}

// Set implements engine.UpdateMutation
func (ub *UpdateBuilder) Set(column string, value interface{}) engine.UpdateMutation {
	ub.updates[column] = value
	return ub
}

// Debug implements engine.UpdateMutation
func (ub *UpdateBuilder) Debug() engine.UpdateMutation {
	level := engine.DebugSQL
	ub.debugLevel = &level
	return ub
}

// Execute implements engine.UpdateMutation
func (ub *UpdateBuilder) Execute(ctx context.Context) (*engine.UpdateResult, error) {
	start := time.Now()

	if len(ub.updates) == 0 {
		return nil, fmt.Errorf("UPDATE on %s has no values - call Set() first", ub.binding.Table())
	}
	if len(ub.filters) == 0 {
		return nil, fmt.Errorf("UPDATE on %s without filters is not allowed - call Filter() first", ub.binding.Table())
	}

	sql, orderedValues := ub.generateSQL()

	if ub.shouldDebug() {
		fmt.Printf("[SQL] %s\n", sql)
		fmt.Printf("[VALUES] %v\n\n", orderedValues)
	}

	rows, err := ub.binding.DB().Query(ctx, sql, orderedValues...)
	if err != nil {
		return nil, ub.binding.ConvertViolation(err)
	}
	defer rows.Close()

	records, err := engine.ScanRows(rows)
	if err != nil {
		return nil, ub.binding.ConvertViolation(err)
	}

	if ub.shouldTrace() {
		fmt.Printf("[TRACE] UPDATE on %s: %v, %d rows\n", ub.binding.Table(), time.Since(start), len(records))
	}

	return &engine.UpdateResult{
		Records:  records,
		Affected: len(records),
	}, nil
}

func (ub *UpdateBuilder) shouldDebug() bool {
	if ub.debugLevel != nil {
		return *ub.debugLevel >= engine.DebugSQL
	}
	return ub.binding.Debug().Level >= engine.DebugSQL
}

func (ub *UpdateBuilder) shouldTrace() bool {
	if ub.debugLevel != nil {
		return *ub.debugLevel >= engine.DebugTrace
	}
	return ub.binding.Debug().Level >= engine.DebugTrace
}

func (ub *UpdateBuilder) generateSQL() (string, []interface{}) {
	var setClauses []string
	var values []interface{}
	paramIndex := 1

	// SET clauses - sort columns for a deterministic statement
	updateColumns := make([]string, 0, len(ub.updates))
	for column := range ub.updates {
		updateColumns = append(updateColumns, column)
	}
	sort.Strings(updateColumns)

	for _, column := range updateColumns {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", quoteIdent(column), paramIndex))
		values = append(values, ub.updates[column])
		paramIndex++
	}

	// WHERE clauses - sort filters for a deterministic statement
	filterKeys := make([]string, 0, len(ub.filters))
	for key := range ub.filters {
		filterKeys = append(filterKeys, key)
	}
	sort.Strings(filterKeys)

	var whereClauses []string
	for _, key := range filterKeys {
		column, op := splitFilterKey(key)
		whereClauses = append(whereClauses, fmt.Sprintf("%s %s $%d", quoteIdent(column), sqlOperator(op), paramIndex))
		values = append(values, ub.filters[key])
		paramIndex++
	}

	sql := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s RETURNING *",
		ub.binding.QualifiedName(),
		strings.Join(setClauses, ", "),
		strings.Join(whereClauses, " AND "),
	)

	return sql, values
}

// ============================================================
// DELETE BUILDER
// ============================================================

type DeleteBuilder struct {
	binding *engine.Binding
	filters map[string]interface{}

	// Debug settings
	debugLevel *engine.DebugLevel
}

func NewDeleteBuilder(binding *engine.Binding) *DeleteBuilder {
	return &DeleteBuilder{
		binding: binding,
		filters: make(map[string]interface{}),
	}
}

// Filter implements engine.DeleteMutation
func (db *DeleteBuilder) Filter(column string, op string, value interface{}) engine.DeleteMutation {
	key := fmt.Sprintf("%s:%s", column, op)
	db.filters[key] = value
	return db
}

// Debug implements engine.DeleteMutation
func (db *DeleteBuilder) Debug() engine.DeleteMutation {
	level := engine.DebugSQL
	db.debugLevel = &level
	return db
}

// Execute implements engine.DeleteMutation
func (db *DeleteBuilder) Execute(ctx context.Context) (*engine.DeleteResult, error) {
	start := time.Now()

	if len(db.filters) == 0 {
		return nil, fmt.Errorf("DELETE on %s without filters is not allowed - call Filter() first", db.binding.Table())
	}

	sql, orderedValues := db.generateSQL()

	if db.shouldDebug() {
		fmt.Printf("[SQL] %s\n", sql)
		fmt.Printf("[VALUES] %v\n\n", orderedValues)
	}

	// Deleting a referenced row raises a reverse foreign key violation,
	// so deletes go through the classifier as well
	commandTag, err := db.binding.DB().Exec(ctx, sql, orderedValues...)
	if err != nil {
		return nil, db.binding.ConvertViolation(err)
	}

	affected := int(commandTag.RowsAffected())

	if db.shouldTrace() {
		fmt.Printf("[TRACE] DELETE on %s: %v, %d rows\n", db.binding.Table(), time.Since(start), affected)
	}

	return &engine.DeleteResult{
		Affected: affected,
	}, nil
}

func (db *DeleteBuilder) shouldDebug() bool {
	if db.debugLevel != nil {
		return *db.debugLevel >= engine.DebugSQL
	}
	return db.binding.Debug().Level >= engine.DebugSQL
}

func (db *DeleteBuilder) shouldTrace() bool {
	if db.debugLevel != nil {
		return *db.debugLevel >= engine.DebugTrace
	}
	return db.binding.Debug().Level >= engine.DebugTrace
}

func (db *DeleteBuilder) generateSQL() (string, []interface{}) {
	filterKeys := make([]string, 0, len(db.filters))
	for key := range db.filters {
		filterKeys = append(filterKeys, key)
	}
	sort.Strings(filterKeys)

	var whereClauses []string
	var values []interface{}
	for i, key := range filterKeys {
		column, op := splitFilterKey(key)
		whereClauses = append(whereClauses, fmt.Sprintf("%s %s $%d", quoteIdent(column), sqlOperator(op), i+1))
		values = append(values, db.filters[key])
	}

	sql := fmt.Sprintf(
		"DELETE FROM %s WHERE %s",
		db.binding.QualifiedName(),
		strings.Join(whereClauses, " AND "),
	)

	return sql, values
}

// ============================================================
// UTILITIES
// ============================================================

func splitFilterKey(key string) (column, op string) {
	column, op, found := strings.Cut(key, ":")
	if !found {
		return key, "eq"
	}
	return column, op
}

func sqlOperator(op string) string {
	switch op {
	case "eq":
		return "="
	case "neq":
		return "<>"
	case "gt":
		return ">"
	case "gte":
		return ">="
	case "lt":
		return "<"
	case "lte":
		return "<="
	default:
		return "="
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
