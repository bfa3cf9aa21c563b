package optim

import (
	"math"

	"github.com/d2l-ai/d2l-go/internal/nn"
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// ClipGradNorm clips the gradients of the given parameters so that their
// global L2 norm, the norm of all gradient tensors treated as one
// concatenated vector, does not exceed maxNorm.
//
// If the global norm is at or below maxNorm the gradients are left
// unmodified; otherwise every gradient tensor is scaled in place by
// maxNorm/norm, making the resulting global norm equal maxNorm (up to
// floating-point tolerance). Returns the pre-clip global norm.
func ClipGradNorm[B tensor.Backend](params []*nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor, maxNorm float32) float32 {
	var sumSquares float64
	clipped := make([][]float32, 0, len(params))

	for _, param := range params {
		grad := gradientFor(param, grads)
		if grad == nil {
			continue
		}
		g := grad.AsFloat32()
		clipped = append(clipped, g)
		for _, v := range g {
			sumSquares += float64(v) * float64(v)
		}
	}

	norm := float32(math.Sqrt(sumSquares))
	if norm <= maxNorm {
		return norm
	}

	scale := maxNorm / norm
	for _, g := range clipped {
		for i := range g {
			g[i] *= scale
		}
	}
	return norm
}
