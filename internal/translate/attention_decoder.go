package translate

import (
	"github.com/d2l-ai/d2l-go/internal/nn"
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// AttentionDecoder replaces the fixed context vector with additive
// attention over all encoder outputs. The query is the decoder's own
// top-layer hidden state, so the context is recomputed every step.
//
// Attention weights of the most recent decode are retained per step for
// visualization.
type AttentionDecoder[B tensor.Backend] struct {
	embedding *nn.Embedding[B]
	attention *nn.AdditiveAttention[B]
	rnn       *nn.GRU[B]
	dense     *nn.Linear[B]
	backend   B

	weights [][][]float32 // [decode step][batch][source step]
}

// NewAttentionDecoder creates an attention decoder over a target
// vocabulary. Queries, keys and the attention hidden layer all use
// numHiddens units.
func NewAttentionDecoder[B tensor.Backend](vocabSize, embedSize, numHiddens, numLayers int, dropout float32, backend B) *AttentionDecoder[B] {
	return &AttentionDecoder[B]{
		embedding: nn.NewEmbedding(vocabSize, embedSize, backend),
		attention: nn.NewAdditiveAttention(numHiddens, numHiddens, numHiddens, dropout, backend),
		rnn:       nn.NewGRU(embedSize+numHiddens, numHiddens, numLayers, backend),
		dense:     nn.NewLinear(numHiddens, vocabSize, backend),
		backend:   backend,
	}
}

// InitState seeds the decoder's hidden state from the encoder and
// resets the retained attention weights.
func (d *AttentionDecoder[B]) InitState(enc EncoderState[B]) *DecoderState[B] {
	d.weights = nil
	hidden := make([]*tensor.Tensor[float32, B], len(enc.Hidden))
	copy(hidden, enc.Hidden)
	return &DecoderState[B]{Hidden: hidden, Enc: enc}
}

// Step attends the current top hidden state over the encoder outputs,
// concatenates the resulting context to the embedded input and advances
// the GRU.
func (d *AttentionDecoder[B]) Step(tokens *tensor.Tensor[int32, B], state *DecoderState[B]) (*tensor.Tensor[float32, B], *DecoderState[B]) {
	query := state.Hidden[len(state.Hidden)-1]
	context := d.attention.Forward(query, state.Enc.Outputs, state.Enc.Outputs, state.Enc.ValidLens)
	d.weights = append(d.weights, d.attention.Weights())

	x := d.embedding.Forward(tokens)
	xc := tensor.Cat([]*tensor.Tensor[float32, B]{x, context}, 1)

	out, hidden := d.rnn.Step(xc, state.Hidden)
	logits := d.dense.Forward(out)
	return logits, &DecoderState[B]{Hidden: hidden, Enc: state.Enc}
}

// SetTraining switches the attention dropout between train and eval.
func (d *AttentionDecoder[B]) SetTraining(training bool) {
	d.attention.SetTraining(training)
}

// AttentionWeights returns the weights recorded since the last
// InitState, indexed [decode step][batch][source step].
func (d *AttentionDecoder[B]) AttentionWeights() [][][]float32 {
	return d.weights
}

// Parameters returns the trainable parameters.
func (d *AttentionDecoder[B]) Parameters() []*nn.Parameter[B] {
	params := append(d.embedding.Parameters(), d.attention.Parameters()...)
	params = append(params, d.rnn.Parameters()...)
	return append(params, d.dense.Parameters()...)
}
