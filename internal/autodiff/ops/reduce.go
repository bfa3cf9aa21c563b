package ops

import "github.com/d2l-ai/d2l-go/internal/tensor"

// SumOp represents output = Σx (total sum, shape {1}).
// The gradient broadcasts back to the input shape.
type SumOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{inputs: []*tensor.RawTensor{x}, output: output}
}

// Backward broadcasts the scalar gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{broadcastTo(outputGrad, op.inputs[0].Shape(), backend)}
}

// Inputs returns the input tensor [x].
func (op *SumOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the scalar sum tensor.
func (op *SumOp) Output() *tensor.RawTensor { return op.output }

// SumDimOp represents output = Σx along one dimension of a 2D tensor.
type SumDimOp struct {
	inputs  []*tensor.RawTensor
	output  *tensor.RawTensor
	dim     int
	keepDim bool
}

// NewSumDimOp creates a new SumDimOp.
func NewSumDimOp(x, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{inputs: []*tensor.RawTensor{x}, output: output, dim: dim, keepDim: keepDim}
}

// Backward broadcasts the reduced gradient back along the summed dimension.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := outputGrad
	if !op.keepDim {
		// Reinstate the reduced dimension so broadcasting aligns.
		inShape := op.inputs[0].Shape()
		if op.dim == 0 {
			grad = backend.Reshape(grad, tensor.Shape{1, inShape[1]})
		} else {
			grad = backend.Reshape(grad, tensor.Shape{inShape[0], 1})
		}
	}
	return []*tensor.RawTensor{broadcastTo(grad, op.inputs[0].Shape(), backend)}
}

// Inputs returns the input tensor [x].
func (op *SumDimOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the reduced tensor.
func (op *SumDimOp) Output() *tensor.RawTensor { return op.output }
