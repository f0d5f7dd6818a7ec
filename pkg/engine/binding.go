package engine

import (
	"fmt"
	"strings"

	"github.com/fieldfence/fieldfence/pkg/engine/introspect"
)

// Binding ties a database table to its constraint snapshot and conversion
// settings. Once built it is read-only and safe for concurrent use; a table
// change means building a fresh binding, never mutating this one.
type Binding struct {
	db     Querier
	schema string
	table  string

	// meta is nil for derived sources and for drivers without structured
	// violation info. Nil metadata makes ConvertViolation a permanent no-op.
	meta *introspect.TableConstraints

	messages Messages
	splitter FieldSplitter
	debug    *DebugContext
}

// NewBinding builds a table binding directly from its parts. Engine.Bind is
// the usual entry point; this constructor exists for callers that run their
// own introspection.
func NewBinding(db Querier, schema, table string, meta *introspect.TableConstraints) *Binding {
	if meta != nil {
		// The catalog's canonical names win over the requested spelling
		schema = meta.Schema
		table = meta.Table
	} else {
		schema = canonicalIdent(schema)
		table = canonicalIdent(table)
	}
	return &Binding{
		db:       db,
		schema:   schema,
		table:    table,
		meta:     meta,
		messages: DefaultMessages(),
		debug:    DefaultDebugContext(),
	}
}

// WithMessages returns a binding whose message table has the given overrides
// merged in. Recognized keys: not_null, check, unique, foreign_key,
// referenced_by.
func (b *Binding) WithMessages(overrides map[string]string) *Binding {
	clone := *b
	clone.messages = b.messages.Merge(overrides)
	return &clone
}

// WithFieldSplitting returns a binding that expands composite-constraint
// errors into one error per participating column.
func (b *Binding) WithFieldSplitting() *Binding {
	return b.WithSplitter(SplitComposite)
}

// WithSplitter returns a binding using a custom field-splitting collaborator
func (b *Binding) WithSplitter(splitter FieldSplitter) *Binding {
	clone := *b
	clone.splitter = splitter
	return &clone
}

// WithDebug returns a binding with debug output enabled
func (b *Binding) WithDebug(level DebugLevel) *Binding {
	clone := *b
	ctx := *DefaultDebugContext()
	ctx.Level = level
	clone.debug = &ctx
	return &clone
}

// Schema returns the binding's canonical schema name
func (b *Binding) Schema() string { return b.schema }

// Table returns the binding's canonical table name
func (b *Binding) Table() string { return b.table }

// QualifiedName returns the quoted schema.table pair for SQL generation
func (b *Binding) QualifiedName() string {
	if b.schema == "" {
		return quoteIdent(b.table)
	}
	return quoteIdent(b.schema) + "." + quoteIdent(b.table)
}

// Metadata returns the constraint snapshot, or nil when the binding has none.
// Callers must treat the snapshot as read-only.
func (b *Binding) Metadata() *introspect.TableConstraints { return b.meta }

// DB returns the binding's querier
func (b *Binding) DB() Querier { return b.db }

// Debug returns the binding's debug context
func (b *Binding) Debug() *DebugContext { return b.debug }

// Insert starts an INSERT mutation against the bound table
func (b *Binding) Insert() InsertMutation {
	factory := getMutationFactory()
	if factory == nil {
		return newInvalidInsertMutation(errNoFactory)
	}
	return factory.NewInsert(b)
}

// Update starts an UPDATE mutation against the bound table
func (b *Binding) Update() UpdateMutation {
	factory := getMutationFactory()
	if factory == nil {
		return newInvalidUpdateMutation(errNoFactory)
	}
	return factory.NewUpdate(b)
}

// Delete starts a DELETE mutation against the bound table
func (b *Binding) Delete() DeleteMutation {
	factory := getMutationFactory()
	if factory == nil {
		return newInvalidDeleteMutation(errNoFactory)
	}
	return factory.NewDelete(b)
}

var errNoFactory = fmt.Errorf("no mutation factory registered - import the mutation package")

// ConvertViolation routes a write error through the classifier. Constraint
// violations the snapshot can explain come back as *ValidationFailure with
// the original error as cause; everything else - unclassifiable violations,
// bindings without metadata, non-violation errors - comes back untouched.
//
// Conversion never introduces a new failure mode: any internal error while
// classifying is swallowed and the original violation returned (fail open).
func (b *Binding) ConvertViolation(err error) (converted error) {
	if err == nil {
		return nil
	}
	if b.meta == nil {
		return err
	}

	info, isViolation := ExtractViolation(err)
	if !isViolation {
		return err
	}

	defer func() {
		if recover() != nil {
			converted = err
		}
	}()

	cls := classify(info, b.meta)
	return assemble(cls, info, b.meta, b.messages, b.splitter, err)
}

// quoteIdent double-quotes an SQL identifier
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// canonicalIdent applies the server's quoting rules to a user-supplied
// identifier: quoted spellings keep their exact case (doubled quotes
// collapsed), unquoted ones fold to lower case. Only names typed by callers
// go through this; names already reported by the catalog or the driver are
// bare and compared verbatim.
func canonicalIdent(name string) string {
	name = strings.TrimSpace(name)
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		return strings.ReplaceAll(name[1:len(name)-1], `""`, `"`)
	}
	return strings.ToLower(name)
}

// splitQualified splits an optionally schema-qualified name. It does not try
// to honor quoted dots; names that need them should come from the catalog's
// canonical pair instead.
func splitQualified(name string) (schema, table string) {
	if schema, table, found := strings.Cut(name, "."); found {
		return schema, table
	}
	return "public", name
}
