package introspect

import "sort"

// ReferencedByKey identifies a foreign key defined on another table that
// points into the inspected table.
type ReferencedByKey struct {
	Schema     string
	Table      string
	Constraint string
}

// TableConstraints is the per-table constraint snapshot built once at binding
// time. It is never mutated after construction: a binding change rebuilds it
// wholesale. All column lists are in constraint declaration order.
type TableConstraints struct {
	// Schema and Table are the canonical names as the catalog reports them,
	// which may differ from the name the binding was created with.
	Schema string
	Table  string

	// Checks maps CHECK constraint name to participating columns
	Checks map[string][]string

	// UniqueIndexes maps unique index name to indexed columns. Expression
	// indexes are excluded at build time; partial indexes with a plain
	// column list are included.
	UniqueIndexes map[string][]string

	// ForeignKeys maps FK constraint name to local columns, for constraints
	// defined on this table.
	ForeignKeys map[string][]string

	// ReferencedBy maps foreign keys on other tables to the columns of this
	// table they reference.
	ReferencedBy map[ReferencedByKey][]string
}

// constraintColumn is one (constraint, column) catalog row, in declaration
// order within its constraint.
type constraintColumn struct {
	Name   string
	Column string
}

// referencedColumn is one referenced-by catalog row: a column of the
// inspected table referenced by a foreign key on another table.
type referencedColumn struct {
	Schema     string
	Table      string
	Constraint string
	Column     string
}

// groupColumns folds ordered catalog rows into name → column list
func groupColumns(rows []constraintColumn) map[string][]string {
	out := make(map[string][]string, len(rows))
	for _, r := range rows {
		out[r.Name] = append(out[r.Name], r.Column)
	}
	return out
}

// groupReferenced folds ordered referenced-by rows, keyed by the referencing
// table's identity plus constraint name
func groupReferenced(rows []referencedColumn) map[ReferencedByKey][]string {
	out := make(map[ReferencedByKey][]string, len(rows))
	for _, r := range rows {
		key := ReferencedByKey{Schema: r.Schema, Table: r.Table, Constraint: r.Constraint}
		out[key] = append(out[key], r.Column)
	}
	return out
}

// SortedNames returns a constraint map's names in sorted order.
// Used by the CLI for stable output.
func SortedNames(m map[string][]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
