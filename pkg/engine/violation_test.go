package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestExtractViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind ViolationKind
		wantOK   bool
	}{
		{
			name: "not null violation",
			err: &pgconn.PgError{
				Code:       "23502",
				Message:    `null value in column "name" of relation "users" violates not-null constraint`,
				SchemaName: "public",
				TableName:  "users",
				ColumnName: "name",
			},
			wantKind: KindNotNull,
			wantOK:   true,
		},
		{
			name: "check violation",
			err: &pgconn.PgError{
				Code:           "23514",
				Message:        `new row for relation "users" violates check constraint "ck_age"`,
				SchemaName:     "public",
				TableName:      "users",
				ConstraintName: "ck_age",
			},
			wantKind: KindCheck,
			wantOK:   true,
		},
		{
			name: "unique violation",
			err: &pgconn.PgError{
				Code:           "23505",
				Message:        `duplicate key value violates unique constraint "uniq_email"`,
				ConstraintName: "uniq_email",
			},
			wantKind: KindUnique,
			wantOK:   true,
		},
		{
			name: "foreign key violation",
			err: &pgconn.PgError{
				Code:           "23503",
				Message:        `insert or update on table "albums" violates foreign key constraint "fk_artist"`,
				ConstraintName: "fk_artist",
			},
			wantKind: KindForeignKey,
			wantOK:   true,
		},
		{
			name:   "wrapped pg error is still found",
			err:    fmt.Errorf("INSERT failed: %w", &pgconn.PgError{Code: "23505"}),
			wantOK: true, wantKind: KindUnique,
		},
		{
			name:   "non-violation pg error",
			err:    &pgconn.PgError{Code: "42P01", Message: `relation "users" does not exist`},
			wantOK: false,
		},
		{
			name:   "plain error",
			err:    errors.New("connection refused"),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := ExtractViolation(tt.err)
			if ok != tt.wantOK {
				t.Fatalf("ExtractViolation() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && info.Kind != tt.wantKind {
				t.Errorf("ExtractViolation() kind = %v, want %v", info.Kind, tt.wantKind)
			}
		})
	}
}

func TestExtractViolation_CarriesReportedNames(t *testing.T) {
	info, ok := ExtractViolation(&pgconn.PgError{
		Code:           "23514",
		Message:        `new row for relation "users" violates check constraint "ck_age"`,
		SchemaName:     "audit",
		TableName:      "users_log",
		ConstraintName: "ck_age",
	})
	if !ok {
		t.Fatal("expected a violation")
	}
	if info.Schema != "audit" || info.Table != "users_log" {
		t.Errorf("reported names = %s.%s, want audit.users_log", info.Schema, info.Table)
	}
	if info.Constraint != "ck_age" {
		t.Errorf("constraint = %q, want ck_age", info.Constraint)
	}
}

func TestForeignKeyDirection(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    fkDirection
	}{
		{
			name:    "referencing side",
			message: `insert or update on table "albums" violates foreign key constraint "fk_artist"`,
			want:    dirReferencing,
		},
		{
			name:    "referenced-by side",
			message: `update or delete on table "artists" violates foreign key constraint "fk_artist" on table "albums"`,
			want:    dirReferencedBy,
		},
		{
			name:    "leading whitespace tolerated",
			message: `  insert or update on table "albums" violates foreign key constraint "fk"`,
			want:    dirReferencing,
		},
		{name: "unrecognized verb", message: "truncate cascades to table x", want: dirUnknown},
		{name: "empty message", message: "", want: dirUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := foreignKeyDirection(tt.message); got != tt.want {
				t.Fatalf("foreignKeyDirection(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestViolationKindString(t *testing.T) {
	if KindNotNull.String() != "not_null" || KindForeignKey.String() != "foreign_key" {
		t.Error("unexpected kind names")
	}
	if ViolationKind(99).String() != "unknown" {
		t.Error("unexpected fallback name")
	}
}
