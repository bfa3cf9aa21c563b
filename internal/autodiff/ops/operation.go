// Package ops defines the differentiable operations recorded on the
// gradient tape.
//
// Each operation stores its input and output RawTensors during the
// forward pass and computes input gradients from the output gradient
// during the backward pass.
package ops

import "github.com/d2l-ai/d2l-go/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Backward computes gradients for the inputs given the output gradient.
	// The returned slice corresponds position-wise to Inputs(); entries may
	// be nil for non-differentiable inputs (e.g. integer indices).
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
