package nn

import (
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network,
// typically a layer's weight or bias. Optimizers locate a parameter's
// gradient in the tape's gradient map by the parameter's RawTensor.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
}

// NewParameter creates a new trainable parameter.
// The tensor should be initialized before wrapping it.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

// Name returns the parameter name (e.g. "encoder.gru0.whz").
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}
