package introspect

import (
	"reflect"
	"testing"
)

func TestGroupColumns(t *testing.T) {
	rows := []constraintColumn{
		{Name: "uniq_pair", Column: "a"},
		{Name: "uniq_pair", Column: "b"},
		{Name: "uniq_email", Column: "email"},
	}

	got := groupColumns(rows)
	want := map[string][]string{
		"uniq_pair":  {"a", "b"},
		"uniq_email": {"email"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("groupColumns = %v, want %v", got, want)
	}
}

func TestGroupColumnsPreservesOrder(t *testing.T) {
	// declaration order must survive the fold, whatever it is
	rows := []constraintColumn{
		{Name: "uniq", Column: "z"},
		{Name: "uniq", Column: "a"},
		{Name: "uniq", Column: "m"},
	}

	got := groupColumns(rows)["uniq"]
	if !reflect.DeepEqual(got, []string{"z", "a", "m"}) {
		t.Errorf("column order changed: %v", got)
	}
}

func TestGroupReferenced(t *testing.T) {
	rows := []referencedColumn{
		{Schema: "public", Table: "posts", Constraint: "fk_author", Column: "id"},
		{Schema: "public", Table: "comments", Constraint: "fk_user", Column: "id"},
		{Schema: "public", Table: "comments", Constraint: "fk_user", Column: "tenant_id"},
	}

	got := groupReferenced(rows)
	want := map[ReferencedByKey][]string{
		{Schema: "public", Table: "posts", Constraint: "fk_author"}:  {"id"},
		{Schema: "public", Table: "comments", Constraint: "fk_user"}: {"id", "tenant_id"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("groupReferenced = %v, want %v", got, want)
	}
}

func TestGroupFromSameRowsIsIdentical(t *testing.T) {
	rows := []constraintColumn{
		{Name: "ck_age", Column: "age"},
		{Name: "uniq_pair", Column: "a"},
		{Name: "uniq_pair", Column: "b"},
	}

	first := groupColumns(rows)
	second := groupColumns(rows)
	if !reflect.DeepEqual(first, second) {
		t.Error("same input should fold to the same snapshot")
	}
}

func TestSortedNames(t *testing.T) {
	m := map[string][]string{
		"zeta":  {"z"},
		"alpha": {"a"},
		"mid":   {"m"},
	}

	got := SortedNames(m)
	if !reflect.DeepEqual(got, []string{"alpha", "mid", "zeta"}) {
		t.Errorf("SortedNames = %v", got)
	}

	if len(SortedNames(nil)) != 0 {
		t.Error("SortedNames(nil) should be empty")
	}
}
