package nn

import (
	"fmt"
	"math/rand"

	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// Dropout randomly zeroes elements with probability p during training,
// scaling the survivors by 1/(1-p) (inverted dropout). In evaluation
// mode the input passes through unchanged.
type Dropout[B tensor.Backend] struct {
	p        float32
	training bool
	backend  B
}

// NewDropout creates a Dropout layer. p must be in [0, 1).
func NewDropout[B tensor.Backend](p float32, backend B) *Dropout[B] {
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("Dropout: p must be in [0, 1), got %v", p))
	}
	return &Dropout[B]{p: p, backend: backend}
}

// SetTraining switches between training and evaluation behavior.
func (d *Dropout[B]) SetTraining(training bool) {
	d.training = training
}

// Forward applies dropout. The random mask is a constant with respect to
// differentiation; gradients flow through the surviving elements only.
func (d *Dropout[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !d.training || d.p == 0 {
		return x
	}

	mask := tensor.Zeros[float32](x.Shape(), d.backend)
	scale := 1 / (1 - d.p)
	data := mask.Data()
	for i := range data {
		//nolint:gosec // G404: math/rand is intentional for dropout masks
		if rand.Float32() >= d.p {
			data[i] = scale
		}
	}

	return x.Mul(mask)
}

// Parameters returns an empty slice; dropout has no trainable parameters.
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return nil
}
