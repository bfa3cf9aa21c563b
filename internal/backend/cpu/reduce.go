package cpu

import (
	"fmt"

	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// Sum returns the total sum of all elements as a shape-{1} tensor.
func (c *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic("sum: only float32 supported")
	}
	result := tensor.MustNewRaw(tensor.Shape{1}, tensor.Float32)
	var total float64
	for _, v := range x.AsFloat32() {
		total += float64(v)
	}
	result.AsFloat32()[0] = float32(total)
	return result
}

// SumDim sums a 2D tensor along a dimension.
//
// dim 0: [R, C] -> [C] (or [1, C] with keepDim)
// dim 1: [R, C] -> [R] (or [R, 1] with keepDim)
func (c *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("sumdim: only 2D tensors supported, got shape %v", shape))
	}
	if x.DType() != tensor.Float32 {
		panic("sumdim: only float32 supported")
	}

	rows, cols := shape[0], shape[1]
	xv := x.AsFloat32()

	var outShape tensor.Shape
	switch dim {
	case 0:
		if keepDim {
			outShape = tensor.Shape{1, cols}
		} else {
			outShape = tensor.Shape{cols}
		}
		result := tensor.MustNewRaw(outShape, tensor.Float32)
		res := result.AsFloat32()
		for r := 0; r < rows; r++ {
			for col := 0; col < cols; col++ {
				res[col] += xv[r*cols+col]
			}
		}
		return result
	case 1:
		if keepDim {
			outShape = tensor.Shape{rows, 1}
		} else {
			outShape = tensor.Shape{rows}
		}
		result := tensor.MustNewRaw(outShape, tensor.Float32)
		res := result.AsFloat32()
		for r := 0; r < rows; r++ {
			var sum float64
			for col := 0; col < cols; col++ {
				sum += float64(xv[r*cols+col])
			}
			res[r] = float32(sum)
		}
		return result
	default:
		panic(fmt.Sprintf("sumdim: invalid dim %d for shape %v", dim, shape))
	}
}

// Argmax returns the Int32 indices of the maxima of a 2D tensor along dim 1.
// Ties resolve to the lowest index.
func (c *Backend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 2 || dim != 1 {
		panic(fmt.Sprintf("argmax: only 2D tensors along dim 1 supported, got shape %v dim %d", shape, dim))
	}
	if x.DType() != tensor.Float32 {
		panic("argmax: only float32 supported")
	}

	rows, cols := shape[0], shape[1]
	result := tensor.MustNewRaw(tensor.Shape{rows}, tensor.Int32)
	xv := x.AsFloat32()
	res := result.AsInt32()

	for r := 0; r < rows; r++ {
		row := xv[r*cols : (r+1)*cols]
		best := 0
		for i, v := range row {
			if v > row[best] {
				best = i
			}
		}
		res[r] = int32(best)
	}

	return result
}
