package ops

import "github.com/d2l-ai/d2l-go/internal/tensor"

// SoftmaxOp represents output = softmax(x) along the last dimension.
//
// The Jacobian of softmax simplifies to
//
//	grad_x = output ⊙ (outputGrad - Σ_j(outputGrad_j * output_j))
//
// where the inner sum runs along the softmax dimension.
type SoftmaxOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
	dim    int
}

// NewSoftmaxOp creates a new SoftmaxOp.
func NewSoftmaxOp(x, output *tensor.RawTensor, dim int) *SoftmaxOp {
	return &SoftmaxOp{inputs: []*tensor.RawTensor{x}, output: output, dim: dim}
}

// Backward computes the softmax input gradient.
func (op *SoftmaxOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	// inner = Σ_j grad_j * out_j, kept as [rows, 1] for broadcasting.
	inner := backend.SumDim(backend.Mul(outputGrad, op.output), op.dim, true)
	gradX := backend.Mul(op.output, backend.Sub(outputGrad, inner))
	return []*tensor.RawTensor{gradX}
}

// Inputs returns the input tensor [x].
func (op *SoftmaxOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the output tensor softmax(x).
func (op *SoftmaxOp) Output() *tensor.RawTensor { return op.output }
