package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Row represents a single result row as a map of column name → value
// Values are typed: string, int64, float64, bool, nil, time.Time, [16]byte
type Row map[string]interface{}

// Get returns the value of a column
func (r Row) Get(column string) interface{} {
	return r[column]
}

// String returns the string value of a column, or empty string if not found
func (r Row) String(column string) string {
	v, ok := r[column]
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case [16]byte:
		return uuid.UUID(s).String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Int returns the int64 value of a column, or 0 if not found/not int
func (r Row) Int(column string) int64 {
	v, ok := r[column]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// UUID returns the uuid value of a column, or uuid.Nil if not found or not
// a uuid-shaped value
func (r Row) UUID(column string) uuid.UUID {
	v, ok := r[column]
	if !ok {
		return uuid.Nil
	}
	switch u := v.(type) {
	case [16]byte:
		return uuid.UUID(u)
	case uuid.UUID:
		return u
	case string:
		parsed, err := uuid.Parse(u)
		if err != nil {
			return uuid.Nil
		}
		return parsed
	default:
		return uuid.Nil
	}
}

// ScanRows converts pgx rows into Row maps
func ScanRows(rows pgx.Rows) ([]Row, error) {
	var result []Row
	columns := rows.FieldDescriptions()

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(Row)
		for i, col := range columns {
			row[col.Name] = values[i]
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
