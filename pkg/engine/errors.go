package engine

import (
	"fmt"
	"strings"
)

// Category identifies the kind of constraint a field error came from.
// Categories double as the message-override keys in configuration.
type Category string

const (
	CategoryNotNull      Category = "not_null"
	CategoryCheck        Category = "check"
	CategoryUnique       Category = "unique"
	CategoryForeignKey   Category = "foreign_key"
	CategoryReferencedBy Category = "referenced_by"
)

// FieldError is one per-field validation message. A constraint spanning a
// single column has one entry in Columns; a composite constraint lists every
// participating column in declaration order.
type FieldError struct {
	Columns  []string
	Category Category
	Message  string
}

// Field renders the error key: the bare column name for single-column
// constraints, the comma-joined tuple for composite ones.
func (fe FieldError) Field() string {
	return strings.Join(fe.Columns, ", ")
}

// FieldSplitter expands a multi-column FieldError into finer-grained errors
// before they are surfaced. Single-column errors are never passed to it.
type FieldSplitter func(FieldError) []FieldError

// SplitComposite is the standard splitter: one error per participating column,
// all carrying the composite's message.
func SplitComposite(fe FieldError) []FieldError {
	out := make([]FieldError, 0, len(fe.Columns))
	for _, col := range fe.Columns {
		out = append(out, FieldError{
			Columns:  []string{col},
			Category: fe.Category,
			Message:  fe.Message,
		})
	}
	return out
}

// ValidationFailure is the converted outcome of a classified constraint
// violation: per-field messages instead of the raw database error. The
// original violation stays reachable through Unwrap for diagnostics.
type ValidationFailure struct {
	Schema string
	Table  string
	Errors []FieldError

	cause error
}

func (e *ValidationFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "validation failed on %s.%s:", e.Schema, e.Table)
	for i, fe := range e.Errors {
		if i > 0 {
			b.WriteString(";")
		}
		fmt.Fprintf(&b, " %s %s", fe.Field(), fe.Message)
	}
	return b.String()
}

// Unwrap exposes the original database violation
func (e *ValidationFailure) Unwrap() error {
	return e.cause
}

// Cause returns the original database violation
func (e *ValidationFailure) Cause() error {
	return e.cause
}

// On reports whether any of the collected errors names the given column
func (e *ValidationFailure) On(column string) bool {
	for _, fe := range e.Errors {
		for _, col := range fe.Columns {
			if col == column {
				return true
			}
		}
	}
	return false
}
