package cpu

import (
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// binaryVectorizedFloat32 computes result[i] = f(a[i], b[i]) for equal shapes.
func binaryVectorizedFloat32(result, a, b []float32, f func(x, y float32) float32) {
	for i := range result {
		result[i] = f(a[i], b[i])
	}
}

func binaryVectorizedInt32(result, a, b []int32, f func(x, y int32) int32) {
	for i := range result {
		result[i] = f(a[i], b[i])
	}
}

// binaryBroadcastFloat32 computes an element-wise op with broadcasting,
// using zero strides for broadcast dimensions.
func binaryBroadcastFloat32(result, a, b *tensor.RawTensor, outShape tensor.Shape, f func(x, y float32) float32) {
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)
	outStrides := outShape.ComputeStrides()

	res := result.AsFloat32()
	av := a.AsFloat32()
	bv := b.AsFloat32()
	for i := range res {
		res[i] = f(av[flatIndex(i, outStrides, aStrides)], bv[flatIndex(i, outStrides, bStrides)])
	}
}

func binaryBroadcastInt32(result, a, b *tensor.RawTensor, outShape tensor.Shape, f func(x, y int32) int32) {
	aStrides := broadcastStrides(a.Shape(), outShape)
	bStrides := broadcastStrides(b.Shape(), outShape)
	outStrides := outShape.ComputeStrides()

	res := result.AsInt32()
	av := a.AsInt32()
	bv := b.AsInt32()
	for i := range res {
		res[i] = f(av[flatIndex(i, outStrides, aStrides)], bv[flatIndex(i, outStrides, bStrides)])
	}
}

// broadcastStrides computes strides for broadcasting inShape to outShape.
// Dimensions of size 1 (or missing on the left) get stride 0.
func broadcastStrides(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	inDim := len(inShape)
	offset := outDim - inDim
	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0 || inIdx >= inDim:
			strides[i] = 0
		case inShape[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}

	return strides
}

// flatIndex maps an output flat index to a source flat index given
// broadcast-adjusted source strides.
func flatIndex(outIdx int, outStrides, inStrides []int) int {
	flat := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flat += coord * inStrides[i]
	}
	return flat
}

// unaryFloat32 allocates a result and applies f element-wise.
func unaryFloat32(x *tensor.RawTensor, f func(v float32) float32) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic("unary op: only float32 supported")
	}
	result := tensor.MustNewRaw(x.Shape(), tensor.Float32)
	xv := x.AsFloat32()
	res := result.AsFloat32()
	for i, v := range xv {
		res[i] = f(v)
	}
	return result
}
