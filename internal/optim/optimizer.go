// Package optim implements optimization algorithms for training.
//
// Optimizers consume the gradient map produced by the autodiff tape and
// update parameters in place, entirely outside the tape:
//
//	grads := backend.Backward(loss, seed)
//	optim.ClipGradNorm(params, grads, 1.0)
//	optimizer.Step(grads)
package optim

import (
	"github.com/d2l-ai/d2l-go/internal/nn"
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies gradient updates to all parameters. Parameters
	// without an entry in the gradient map are skipped.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// GetLR returns the current learning rate.
	GetLR() float32

	// SetLR updates the learning rate (for scheduling).
	SetLR(lr float32)
}

// gradientFor retrieves the gradient recorded for a parameter, or nil if
// the parameter did not participate in the forward pass.
func gradientFor[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}
