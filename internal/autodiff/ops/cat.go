package ops

import "github.com/d2l-ai/d2l-go/internal/tensor"

// CatOp represents concatenation of 2D tensors along a dimension.
// The backward pass splits the gradient by the original input shapes.
type CatOp struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
	dim    int
}

// NewCatOp creates a new CatOp.
func NewCatOp(inputs []*tensor.RawTensor, output *tensor.RawTensor, dim int) *CatOp {
	return &CatOp{inputs: inputs, output: output, dim: dim}
}

// Backward slices the output gradient into per-input gradients.
func (op *CatOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grads := make([]*tensor.RawTensor, len(op.inputs))
	gv := outputGrad.AsFloat32()
	outShape := outputGrad.Shape()

	if op.dim == 0 {
		rowOffset := 0
		for i, in := range op.inputs {
			rows, cols := in.Shape()[0], in.Shape()[1]
			g := tensor.MustNewRaw(in.Shape(), tensor.Float32)
			copy(g.AsFloat32(), gv[rowOffset*cols:(rowOffset+rows)*cols])
			grads[i] = g
			rowOffset += rows
		}
		return grads
	}

	totalCols := outShape[1]
	colOffset := 0
	for i, in := range op.inputs {
		rows, cols := in.Shape()[0], in.Shape()[1]
		g := tensor.MustNewRaw(in.Shape(), tensor.Float32)
		gd := g.AsFloat32()
		for r := 0; r < rows; r++ {
			copy(gd[r*cols:(r+1)*cols], gv[r*totalCols+colOffset:r*totalCols+colOffset+cols])
		}
		grads[i] = g
		colOffset += cols
	}
	return grads
}

// Inputs returns the concatenated input tensors.
func (op *CatOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the concatenated tensor.
func (op *CatOp) Output() *tensor.RawTensor { return op.output }
