package nn

import (
	"fmt"

	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// Embedding is a lookup table mapping token indices to dense vectors.
// The weight matrix [numEmbeddings, embedDim] is a learnable parameter;
// gradients scatter-add into the rows selected during the forward pass.
type Embedding[B tensor.Backend] struct {
	weight   *Parameter[B]
	numEmbed int
	embedDim int
	backend  B
}

// NewEmbedding creates an Embedding layer with N(0, 0.01)-scaled weights.
func NewEmbedding[B tensor.Backend](numEmbeddings, embedDim int, backend B) *Embedding[B] {
	weight := Randn(tensor.Shape{numEmbeddings, embedDim}, backend).MulScalar(0.01)
	return &Embedding[B]{
		weight:   NewParameter("embedding.weight", weight),
		numEmbed: numEmbeddings,
		embedDim: embedDim,
		backend:  backend,
	}
}

// Forward looks up embeddings for the given Int32 indices.
// Output shape: indices.Shape() + [embedDim].
func (e *Embedding[B]) Forward(indices *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	raw := e.backend.Embedding(e.weight.Tensor().Raw(), indices.Raw())
	return tensor.New[float32, B](raw, e.backend)
}

// Weight returns the embedding weight parameter.
func (e *Embedding[B]) Weight() *Parameter[B] {
	return e.weight
}

// EmbedDim returns the embedding vector size.
func (e *Embedding[B]) EmbedDim() int {
	return e.embedDim
}

// Parameters returns the trainable parameters.
func (e *Embedding[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{e.weight}
}

// String returns a short description of the layer.
func (e *Embedding[B]) String() string {
	return fmt.Sprintf("Embedding(%d, %d)", e.numEmbed, e.embedDim)
}
