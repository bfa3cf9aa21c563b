package cpu

import (
	"fmt"
	"math"

	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// AddScalar adds a scalar to every element.
func (c *Backend) AddScalar(x *tensor.RawTensor, s float32) *tensor.RawTensor {
	return unaryFloat32(x, func(v float32) float32 { return v + s })
}

// MulScalar multiplies every element by a scalar.
func (c *Backend) MulScalar(x *tensor.RawTensor, s float32) *tensor.RawTensor {
	return unaryFloat32(x, func(v float32) float32 { return v * s })
}

// Exp computes the element-wise exponential.
func (c *Backend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryFloat32(x, func(v float32) float32 { return float32(math.Exp(float64(v))) })
}

// Log computes the element-wise natural logarithm.
// Input values must be positive.
func (c *Backend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryFloat32(x, func(v float32) float32 { return float32(math.Log(float64(v))) })
}

// Tanh computes the element-wise hyperbolic tangent.
func (c *Backend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryFloat32(x, func(v float32) float32 { return float32(math.Tanh(float64(v))) })
}

// Sigmoid computes the element-wise logistic sigmoid: 1 / (1 + exp(-x)).
func (c *Backend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryFloat32(x, func(v float32) float32 {
		return float32(1.0 / (1.0 + math.Exp(float64(-v))))
	})
}

// Softmax applies a numerically stable softmax along the last dimension
// of a 2D tensor. Each row is shifted by its maximum before exponentiation.
func (c *Backend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 2 || dim != 1 {
		panic(fmt.Sprintf("softmax: only 2D tensors along dim 1 supported, got shape %v dim %d", shape, dim))
	}
	if x.DType() != tensor.Float32 {
		panic("softmax: only float32 supported")
	}

	rows, cols := shape[0], shape[1]
	result := tensor.MustNewRaw(shape, tensor.Float32)
	xv := x.AsFloat32()
	res := result.AsFloat32()

	for r := 0; r < rows; r++ {
		row := xv[r*cols : (r+1)*cols]
		out := res[r*cols : (r+1)*cols]

		maxVal := row[0]
		for _, v := range row[1:] {
			if v > maxVal {
				maxVal = v
			}
		}

		var sum float64
		for i, v := range row {
			e := math.Exp(float64(v - maxVal))
			out[i] = float32(e)
			sum += e
		}
		inv := float32(1.0 / sum)
		for i := range out {
			out[i] *= inv
		}
	}

	return result
}
