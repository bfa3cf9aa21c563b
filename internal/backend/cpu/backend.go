// Package cpu implements the CPU backend: pure Go element-wise kernels
// with NumPy-style broadcasting and BLAS-backed matrix multiplication.
package cpu

import (
	"fmt"

	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// Backend implements tensor.Backend on the CPU.
//
// Execution is synchronous and single-threaded; all results are freshly
// allocated contiguous tensors.
type Backend struct{}

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend name.
func (c *Backend) Name() string {
	return "CPU"
}

// Add performs element-wise addition with broadcasting.
func (c *Backend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("add", a, b, func(x, y float32) float32 { return x + y }, func(x, y int32) int32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (c *Backend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("sub", a, b, func(x, y float32) float32 { return x - y }, func(x, y int32) int32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (c *Backend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("mul", a, b, func(x, y float32) float32 { return x * y }, func(x, y int32) int32 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (c *Backend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("div", a, b, func(x, y float32) float32 { return x / y }, func(x, y int32) int32 { return x / y })
}

// binary dispatches an element-wise binary op over dtype and broadcasting.
func (c *Backend) binary(name string, a, b *tensor.RawTensor, f32 func(x, y float32) float32, i32 func(x, y int32) int32) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result := tensor.MustNewRaw(outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		if !needsBroadcast {
			binaryVectorizedFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), f32)
		} else {
			binaryBroadcastFloat32(result, a, b, outShape, f32)
		}
	case tensor.Int32:
		if !needsBroadcast {
			binaryVectorizedInt32(result.AsInt32(), a.AsInt32(), b.AsInt32(), i32)
		} else {
			binaryBroadcastInt32(result, a, b, outShape, i32)
		}
	default:
		panic(name + ": unsupported dtype")
	}

	return result
}
