package mutation

import "github.com/fieldfence/fieldfence/pkg/engine"

// Auto-register the mutation factory on package import
// This happens automatically when the mutation package is imported anywhere
func init() {
	engine.RegisterMutationFactory(NewFactory())
}
