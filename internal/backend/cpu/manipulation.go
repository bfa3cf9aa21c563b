package cpu

import (
	"fmt"

	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// Reshape returns a copy of x under a new shape with the same element count.
func (c *Backend) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if newShape.NumElements() != x.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v to %v", x.Shape(), newShape))
	}
	return x.Clone().WithShape(newShape)
}

// Transpose transposes a 2D tensor. Axes default to {1, 0}.
func (c *Backend) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("transpose: only 2D tensors supported, got shape %v", shape))
	}
	if len(axes) != 0 && !(len(axes) == 2 && axes[0] == 1 && axes[1] == 0) {
		panic(fmt.Sprintf("transpose: unsupported axes %v for 2D tensor", axes))
	}
	if x.DType() != tensor.Float32 {
		panic("transpose: only float32 supported")
	}

	rows, cols := shape[0], shape[1]
	result := tensor.MustNewRaw(tensor.Shape{cols, rows}, tensor.Float32)
	xv := x.AsFloat32()
	res := result.AsFloat32()

	for r := 0; r < rows; r++ {
		for col := 0; col < cols; col++ {
			res[col*rows+r] = xv[r*cols+col]
		}
	}

	return result
}

// Cat concatenates 2D tensors along a dimension.
func (c *Backend) Cat(ts []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(ts) == 0 {
		panic("cat: no tensors to concatenate")
	}
	first := ts[0]
	if len(first.Shape()) != 2 {
		panic(fmt.Sprintf("cat: only 2D tensors supported, got shape %v", first.Shape()))
	}
	if dim != 0 && dim != 1 {
		panic(fmt.Sprintf("cat: invalid dim %d", dim))
	}
	if first.DType() != tensor.Float32 {
		panic("cat: only float32 supported")
	}

	rows, cols := first.Shape()[0], first.Shape()[1]
	totalRows, totalCols := rows, cols
	for _, t := range ts[1:] {
		s := t.Shape()
		if len(s) != 2 {
			panic(fmt.Sprintf("cat: only 2D tensors supported, got shape %v", s))
		}
		if dim == 0 {
			if s[1] != cols {
				panic(fmt.Sprintf("cat: column mismatch %d vs %d", s[1], cols))
			}
			totalRows += s[0]
		} else {
			if s[0] != rows {
				panic(fmt.Sprintf("cat: row mismatch %d vs %d", s[0], rows))
			}
			totalCols += s[1]
		}
	}

	if dim == 0 {
		result := tensor.MustNewRaw(tensor.Shape{totalRows, cols}, tensor.Float32)
		res := result.AsFloat32()
		offset := 0
		for _, t := range ts {
			n := copy(res[offset:], t.AsFloat32())
			offset += n
		}
		return result
	}

	result := tensor.MustNewRaw(tensor.Shape{rows, totalCols}, tensor.Float32)
	res := result.AsFloat32()
	colOffset := 0
	for _, t := range ts {
		tCols := t.Shape()[1]
		tv := t.AsFloat32()
		for r := 0; r < rows; r++ {
			copy(res[r*totalCols+colOffset:r*totalCols+colOffset+tCols], tv[r*tCols:(r+1)*tCols])
		}
		colOffset += tCols
	}
	return result
}

// Embedding looks up rows of weight [V, E] by Int32 indices, producing
// a tensor with shape indices.Shape() + [E].
func (c *Backend) Embedding(weight, indices *tensor.RawTensor) *tensor.RawTensor {
	ws := weight.Shape()
	if len(ws) != 2 {
		panic(fmt.Sprintf("embedding: weight must be 2D, got shape %v", ws))
	}
	if weight.DType() != tensor.Float32 || indices.DType() != tensor.Int32 {
		panic("embedding: weight must be float32 and indices int32")
	}

	vocab, embedDim := ws[0], ws[1]
	outShape := append(indices.Shape().Clone(), embedDim)
	result := tensor.MustNewRaw(outShape, tensor.Float32)

	wv := weight.AsFloat32()
	idx := indices.AsInt32()
	res := result.AsFloat32()

	for i, id := range idx {
		if id < 0 || int(id) >= vocab {
			panic(fmt.Sprintf("embedding: index %d out of range [0, %d)", id, vocab))
		}
		copy(res[i*embedDim:(i+1)*embedDim], wv[int(id)*embedDim:(int(id)+1)*embedDim])
	}

	return result
}
