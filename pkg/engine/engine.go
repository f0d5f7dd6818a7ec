package engine

import (
	"context"
	"fmt"

	"github.com/fieldfence/fieldfence/pkg/engine/introspect"
)

// Version is the FieldFence release version
const Version = "0.1.0"

// Engine is the main entry point for FieldFence
type Engine struct {
	connector *Connector
	messages  Messages
	splitter  FieldSplitter

	// Debug context
	Debug *DebugContext
}

// ============================================================
// ENGINE INITIALIZATION
// ============================================================

// NewEngine creates a new engine with default messages and no connection
func NewEngine() *Engine {
	return &Engine{
		messages: DefaultMessages(),
		Debug:    DefaultDebugContext(),
	}
}

// WithMessages merges message overrides into the engine's message table.
// Bindings created afterwards inherit the merged table.
func (e *Engine) WithMessages(overrides map[string]string) *Engine {
	e.messages = e.messages.Merge(overrides)
	return e
}

// WithFieldSplitting makes bindings expand composite-constraint errors into
// one error per participating column
func (e *Engine) WithFieldSplitting() *Engine {
	e.splitter = SplitComposite
	return e
}

// WithDebug returns the engine with debug enabled
func (e *Engine) WithDebug(level DebugLevel) *Engine {
	ctx := *DefaultDebugContext()
	ctx.Level = level
	ctx.ColorOutput = true
	e.Debug = &ctx
	return e
}

// ============================================================
// CONNECTION HANDLING
// ============================================================

// Connect establishes a database connection
func (e *Engine) Connect(ctx context.Context, config ConnectorConfig) error {
	e.connector = NewConnector(config)
	if err := e.connector.Connect(ctx); err != nil {
		return err
	}

	// Mutation factory is auto-registered via init() in the mutation
	// package - the registry handles it.

	return nil
}

// Close closes the database connection
func (e *Engine) Close() {
	if e.connector != nil {
		e.connector.Close()
	}
}

// IsConnected returns true if connected to a database
func (e *Engine) IsConnected() bool {
	return e.connector != nil && e.connector.IsConnected()
}

// Ping verifies the database connection is alive
func (e *Engine) Ping(ctx context.Context) error {
	if e.connector == nil {
		return fmt.Errorf("not connected")
	}
	return e.connector.Ping(ctx)
}

// Connector returns the underlying connector for raw SQL access
func (e *Engine) Connector() *Connector {
	return e.connector
}

// ============================================================
// TABLE BINDINGS
// ============================================================

// Bind introspects a table once and returns a binding holding its constraint
// snapshot. The table name may be schema-qualified and quoted; the server's
// quoting and search-path rules apply. Names that do not resolve to a plain
// table yield a binding without metadata, whose writes surface raw database
// errors.
//
// Introspection failures (e.g. missing catalog privileges) are returned here,
// at bind time - they never surface during writes.
func (e *Engine) Bind(ctx context.Context, table string) (*Binding, error) {
	if !e.IsConnected() {
		return nil, fmt.Errorf("not connected - call Connect() first")
	}

	intro := introspect.NewPostgres(e.connector.Pool())

	var meta *introspect.TableConstraints
	if intro.SupportsViolationInfo() {
		m, err := intro.TableConstraints(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("constraint introspection for %s failed: %w", table, err)
		}
		meta = m
	}

	return e.newBinding(table, meta), nil
}

// BindDerived creates a binding over a derived source (a subquery alias or
// similar). Derived sources carry no constraint snapshot, so violations on
// them always surface as the raw database error.
func (e *Engine) BindDerived(name string) *Binding {
	var db Querier
	if e.connector != nil {
		db = e.connector.Pool()
	}
	b := NewBinding(db, "", name, nil)
	b.messages = e.messages
	b.splitter = e.splitter
	b.debug = e.Debug
	return b
}

func (e *Engine) newBinding(table string, meta *introspect.TableConstraints) *Binding {
	schema, name := splitQualified(table)
	b := NewBinding(e.connector.Pool(), schema, name, meta)
	b.messages = e.messages
	b.splitter = e.splitter
	b.debug = e.Debug
	return b
}
