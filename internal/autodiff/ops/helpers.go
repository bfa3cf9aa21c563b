package ops

import (
	"fmt"

	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// reduceBroadcast reduces a gradient back to the shape of a broadcast
// input by summing over the broadcast dimensions.
func reduceBroadcast(grad *tensor.RawTensor, target tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gs := grad.Shape()
	if gs.Equal(target) {
		return grad
	}

	// Scalar-like target: sum everything.
	if target.NumElements() == 1 {
		return backend.Reshape(backend.Sum(grad), target)
	}

	if len(gs) == 2 {
		rows, cols := gs[0], gs[1]
		switch {
		case len(target) == 1 && target[0] == cols:
			// [R, C] -> [C]: summed over rows (e.g. bias gradients).
			return backend.SumDim(grad, 0, false)
		case len(target) == 2 && target[0] == 1 && target[1] == cols:
			return backend.SumDim(grad, 0, true)
		case len(target) == 2 && target[0] == rows && target[1] == 1:
			return backend.SumDim(grad, 1, true)
		}
	}

	panic(fmt.Sprintf("reduceBroadcast: cannot reduce gradient %v to %v", gs, target))
}

// zerosLike allocates a zero gradient with the same shape and dtype as x.
func zerosLike(x *tensor.RawTensor) *tensor.RawTensor {
	return tensor.MustNewRaw(x.Shape(), x.DType())
}

// broadcastTo expands grad to shape by adding it to a zero tensor,
// relying on the backend's broadcasting rules.
func broadcastTo(grad *tensor.RawTensor, shape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	zeros := tensor.MustNewRaw(shape, grad.DType())
	return backend.Add(zeros, grad)
}
