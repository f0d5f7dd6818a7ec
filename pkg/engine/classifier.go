package engine

import (
	"github.com/fieldfence/fieldfence/pkg/engine/introspect"
)

// classification is the classifier's verdict for one violation. A zero value
// means unclassifiable: the caller must surface the original error.
type classification struct {
	// fields carries (columns, category) pairs; messages are rendered later
	fields []fieldRef

	// skipSchemaCheck is set when the violation legitimately reports another
	// table's identity (reverse foreign key reference)
	skipSchemaCheck bool

	ok bool
}

type fieldRef struct {
	columns  []string
	category Category
}

// classify matches a violation against the table's constraint snapshot.
// It is a pure lookup: no database access, no mutation of the snapshot.
//
// Both sides of every name comparison are raw catalog spellings: the snapshot
// stores nspname/relname/attname verbatim, and the error data fields on a
// pgconn.PgError carry the same bare identifiers. No folding happens here.
func classify(info ViolationInfo, meta *introspect.TableConstraints) classification {
	if meta == nil {
		return classification{}
	}

	switch info.Kind {
	case KindNotNull:
		if info.Column == "" {
			return classification{}
		}
		return singleRef(info.Column, CategoryNotNull)

	case KindCheck:
		cols, found := meta.Checks[info.Constraint]
		if !found {
			return classification{}
		}
		return columnsRef(cols, CategoryCheck)

	case KindUnique:
		cols, found := meta.UniqueIndexes[info.Constraint]
		if !found {
			return classification{}
		}
		return columnsRef(cols, CategoryUnique)

	case KindForeignKey:
		switch foreignKeyDirection(info.Message) {
		case dirReferencing:
			cols, found := meta.ForeignKeys[info.Constraint]
			if !found {
				return classification{}
			}
			return columnsRef(cols, CategoryForeignKey)

		case dirReferencedBy:
			key := introspect.ReferencedByKey{
				Schema:     info.Schema,
				Table:      info.Table,
				Constraint: info.Constraint,
			}
			cols, found := meta.ReferencedBy[key]
			if !found {
				return classification{}
			}
			cls := columnsRef(cols, CategoryReferencedBy)
			// The reported schema/table belongs to the referencing table,
			// not to this binding; the assembler must not reject it.
			cls.skipSchemaCheck = true
			return cls

		default:
			return classification{}
		}
	}

	return classification{}
}

func singleRef(column string, category Category) classification {
	return classification{
		fields: []fieldRef{{columns: []string{column}, category: category}},
		ok:     true,
	}
}

func columnsRef(columns []string, category Category) classification {
	// copy so downstream field errors never alias the snapshot's slices
	cols := make([]string, len(columns))
	copy(cols, columns)
	return classification{
		fields: []fieldRef{{columns: cols, category: category}},
		ok:     true,
	}
}
