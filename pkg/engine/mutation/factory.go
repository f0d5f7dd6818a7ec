package mutation

import "github.com/fieldfence/fieldfence/pkg/engine"

// Factory is the stateless SQL mutation factory. The binding carries all
// per-table state, which is what keeps registration via init() safe.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// NewInsert creates an insert builder
func (f *Factory) NewInsert(binding *engine.Binding) engine.InsertMutation {
	return NewInsertBuilder(binding)
}

// NewUpdate creates an update builder
func (f *Factory) NewUpdate(binding *engine.Binding) engine.UpdateMutation {
	return NewUpdateBuilder(binding)
}

// NewDelete creates a delete builder
func (f *Factory) NewDelete(binding *engine.Binding) engine.DeleteMutation {
	return NewDeleteBuilder(binding)
}
