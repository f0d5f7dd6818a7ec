package engine

var mutationFactory MutationFactory

// RegisterMutationFactory installs the builder factory bindings hand out.
// The mutation package calls this from init; the first registration wins.
func RegisterMutationFactory(factory MutationFactory) {
	if factory == nil {
		return
	}
	if mutationFactory == nil {
		mutationFactory = factory
	}
}

func getMutationFactory() MutationFactory {
	return mutationFactory
}
