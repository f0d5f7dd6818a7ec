package engine

import (
	"context"
	"errors"
	"testing"
)

type stubFactory struct {
	inserts int
	updates int
	deletes int
}

func (f *stubFactory) NewInsert(binding *Binding) InsertMutation {
	f.inserts++
	return newInvalidInsertMutation(errStub)
}

func (f *stubFactory) NewUpdate(binding *Binding) UpdateMutation {
	f.updates++
	return newInvalidUpdateMutation(errStub)
}

func (f *stubFactory) NewDelete(binding *Binding) DeleteMutation {
	f.deletes++
	return newInvalidDeleteMutation(errStub)
}

var errStub = errors.New("stub factory")

// The engine package alone carries no factory; importing the mutation package
// is what registers one. These tests run without that import, so the registry
// starts empty.
func TestBindingWithoutFactory(t *testing.T) {
	if getMutationFactory() != nil {
		t.Skip("a factory is already registered in this process")
	}

	b := NewBinding(nil, "public", "users", nil)
	ctx := context.Background()

	if _, err := b.Insert().Set("name", "x").Execute(ctx); !errors.Is(err, errNoFactory) {
		t.Errorf("Insert without factory: got %v", err)
	}
	if _, err := b.Update().Set("name", "x").Execute(ctx); !errors.Is(err, errNoFactory) {
		t.Errorf("Update without factory: got %v", err)
	}
	if _, err := b.Delete().Filter("id", "eq", 1).Execute(ctx); !errors.Is(err, errNoFactory) {
		t.Errorf("Delete without factory: got %v", err)
	}
}

func TestRegisterMutationFactory(t *testing.T) {
	first := &stubFactory{}
	RegisterMutationFactory(nil)
	RegisterMutationFactory(first)
	RegisterMutationFactory(&stubFactory{})

	if getMutationFactory() != MutationFactory(first) {
		t.Fatal("first registered factory should win")
	}

	b := NewBinding(nil, "public", "users", nil)
	b.Insert()
	b.Update()
	b.Delete()

	if first.inserts != 1 || first.updates != 1 || first.deletes != 1 {
		t.Errorf("factory calls = %d/%d/%d, want 1/1/1",
			first.inserts, first.updates, first.deletes)
	}
}
