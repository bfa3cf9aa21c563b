// Package nn implements neural network building blocks:
//   - Module interface and trainable Parameter
//   - Linear, Embedding, Dropout layers
//   - multilayer GRU recurrent cell
//   - additive attention with valid-length masking
//   - Xavier/zeros/normal initializers
//
// Layers are generic over the computation backend, so the same module
// runs on the plain CPU backend or the autodiff decorator.
package nn

import (
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// Module is the base interface for all neural network components.
// Every module exposes its trainable parameters; modules without
// parameters return an empty slice.
type Module[B tensor.Backend] interface {
	Parameters() []*Parameter[B]
}
