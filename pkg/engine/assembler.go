package engine

import (
	"github.com/fieldfence/fieldfence/pkg/engine/introspect"
)

// assemble turns a classification into the externally visible outcome: a
// *ValidationFailure carrying per-field messages, or the original violation
// when classification did not hold up.
func assemble(
	cls classification,
	info ViolationInfo,
	meta *introspect.TableConstraints,
	messages Messages,
	splitter FieldSplitter,
	original error,
) error {
	if !cls.ok {
		return original
	}

	// A violation attributed to a different table (a trigger elsewhere)
	// must not produce validation messages for this one, even if the
	// constraint name happened to match. Deliberately conservative: an
	// honest raw error beats a possibly-wrong validation message.
	if !cls.skipSchemaCheck {
		if info.Schema != meta.Schema || info.Table != meta.Table {
			return original
		}
	}

	if len(cls.fields) == 0 {
		return original
	}

	errors := make([]FieldError, 0, len(cls.fields))
	for _, ref := range cls.fields {
		fe := FieldError{
			Columns:  ref.columns,
			Category: ref.category,
			Message:  messages[ref.category],
		}
		if splitter != nil && len(fe.Columns) > 1 {
			errors = append(errors, splitter(fe)...)
		} else {
			errors = append(errors, fe)
		}
	}

	return &ValidationFailure{
		Schema: meta.Schema,
		Table:  meta.Table,
		Errors: errors,
		cause:  original,
	}
}
