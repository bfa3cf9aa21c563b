package autodiff

import (
	"fmt"

	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// Backward runs the backward pass from a scalar loss tensor, seeding the
// output gradient with the given value (1 for plain gradients, 1/N for a
// mean over N contributions).
//
// Returns the gradient map and clears the tape for the next iteration.
func (b *Backend[B]) Backward(loss *tensor.RawTensor, seed float32) map[*tensor.RawTensor]*tensor.RawTensor {
	if loss.NumElements() != 1 {
		panic(fmt.Sprintf("Backward expects a scalar loss, got shape %v", loss.Shape()))
	}
	if last := b.tape.LastOutput(); last != loss {
		panic("Backward: loss is not the output of the last recorded operation")
	}

	outputGrad := tensor.MustNewRaw(tensor.Shape{1}, tensor.Float32)
	outputGrad.AsFloat32()[0] = seed

	grads := b.tape.Backward(outputGrad, b)
	b.tape.Clear()
	return grads
}
