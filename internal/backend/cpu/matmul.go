package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// MatMul performs 2D matrix multiplication via single-precision BLAS:
// [M, K] @ [K, N] -> [M, N].
func (c *Backend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != tensor.Float32 || b.DType() != tensor.Float32 {
		panic("matmul: only float32 supported")
	}

	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D tensors, got %v @ %v", as, bs))
	}
	if as[1] != bs[0] {
		panic(fmt.Sprintf("matmul: inner dimensions do not match: %v @ %v", as, bs))
	}

	m, k, n := as[0], as[1], bs[1]
	result := tensor.MustNewRaw(tensor.Shape{m, n}, tensor.Float32)

	ga := blas32.General{Rows: m, Cols: k, Stride: k, Data: a.AsFloat32()}
	gb := blas32.General{Rows: k, Cols: n, Stride: n, Data: b.AsFloat32()}
	gc := blas32.General{Rows: m, Cols: n, Stride: n, Data: result.AsFloat32()}

	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, ga, gb, 0, gc)

	return result
}
