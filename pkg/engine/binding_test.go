package engine

import (
	"errors"
	"testing"

	"github.com/fieldfence/fieldfence/pkg/engine/introspect"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBinding_CanonicalNamesFromSnapshot(t *testing.T) {
	meta := &introspect.TableConstraints{Schema: "public", Table: "users"}
	b := NewBinding(nil, "PUBLIC", "USERS", meta)

	assert.Equal(t, "public", b.Schema())
	assert.Equal(t, "users", b.Table())
}

func TestNewBinding_NoSnapshot(t *testing.T) {
	b := NewBinding(nil, "Public", "Users", nil)

	// without a catalog answer the requested spelling is folded
	assert.Equal(t, "public", b.Schema())
	assert.Equal(t, "users", b.Table())
	assert.Nil(t, b.Metadata())
}

func TestBindingQualifiedName(t *testing.T) {
	b := NewBinding(nil, "public", "users", nil)
	assert.Equal(t, `"public"."users"`, b.QualifiedName())

	quoted := NewBinding(nil, "public", `"My Table"`, nil)
	assert.Equal(t, `"public"."My Table"`, quoted.QualifiedName())
}

func TestConvertViolation_NilError(t *testing.T) {
	b := testBinding()
	assert.NoError(t, b.ConvertViolation(nil))
}

func TestConvertViolation_NoMetadata(t *testing.T) {
	b := NewBinding(nil, "public", "users", nil)

	// every violation kind comes back untouched
	for _, code := range []string{"23502", "23514", "23505", "23503"} {
		orig := &pgconn.PgError{
			Code:       code,
			SchemaName: "public",
			TableName:  "users",
		}
		assert.Same(t, error(orig), b.ConvertViolation(orig), code)
	}
}

func TestConvertViolation_NonViolation(t *testing.T) {
	b := testBinding()

	plain := errors.New("connection reset")
	assert.Same(t, plain, b.ConvertViolation(plain))
}

func TestConvertViolation_FailOpen(t *testing.T) {
	b := testBinding().WithSplitter(func(FieldError) []FieldError {
		panic("splitter exploded")
	})

	orig := &pgconn.PgError{
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "uniq_pair"`,
		SchemaName:     "public",
		TableName:      "users",
		ConstraintName: "uniq_pair",
	}

	// a broken collaborator must never replace the real violation
	assert.Same(t, error(orig), b.ConvertViolation(orig))
}

func TestBindingWith_DoesNotMutateReceiver(t *testing.T) {
	base := testBinding()

	withMsg := base.WithMessages(map[string]string{"not_null": "changed"})
	require.NotSame(t, base, withMsg)
	assert.Equal(t, "is not present", base.messages[CategoryNotNull])
	assert.Equal(t, "changed", withMsg.messages[CategoryNotNull])

	withSplit := base.WithFieldSplitting()
	assert.Nil(t, base.splitter)
	assert.NotNil(t, withSplit.splitter)
}

func TestSplitQualified(t *testing.T) {
	tests := []struct {
		in     string
		schema string
		table  string
	}{
		{"users", "public", "users"},
		{"audit.users", "audit", "users"},
		{"a.b.c", "a", "b.c"},
	}
	for _, tt := range tests {
		schema, table := splitQualified(tt.in)
		assert.Equal(t, tt.schema, schema, tt.in)
		assert.Equal(t, tt.table, table, tt.in)
	}
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"users"`, quoteIdent("users"))
	assert.Equal(t, `"say ""hi"""`, quoteIdent(`say "hi"`))
}

func TestCanonicalIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"users", "users"},
		{"Users", "users"},
		{`"Users"`, "Users"},
		{`"odd""name"`, `odd"name`},
		{"  users  ", "users"},
		{`""`, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalIdent(tt.in), tt.in)
	}
}
