package ops

import "github.com/d2l-ai/d2l-go/internal/tensor"

// EmbeddingOp represents an embedding lookup: output = weight[indices].
//
// The backward pass scatter-adds the output gradient into the rows of
// the weight gradient selected by the indices. Indices themselves are
// not differentiable.
type EmbeddingOp struct {
	inputs []*tensor.RawTensor // [weight, indices]
	output *tensor.RawTensor
}

// NewEmbeddingOp creates a new EmbeddingOp.
func NewEmbeddingOp(weight, indices, output *tensor.RawTensor) *EmbeddingOp {
	return &EmbeddingOp{inputs: []*tensor.RawTensor{weight, indices}, output: output}
}

// Backward scatter-adds gradients into the embedding weight rows.
func (op *EmbeddingOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	weight, indices := op.inputs[0], op.inputs[1]
	embedDim := weight.Shape()[1]

	gradWeight := zerosLike(weight)
	gw := gradWeight.AsFloat32()
	gv := outputGrad.AsFloat32()

	for i, id := range indices.AsInt32() {
		dst := gw[int(id)*embedDim : (int(id)+1)*embedDim]
		src := gv[i*embedDim : (i+1)*embedDim]
		for j := range dst {
			dst[j] += src[j]
		}
	}

	return []*tensor.RawTensor{gradWeight, nil}
}

// Inputs returns [weight, indices].
func (op *EmbeddingOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the looked-up embeddings.
func (op *EmbeddingOp) Output() *tensor.RawTensor { return op.output }
