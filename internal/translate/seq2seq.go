package translate

import (
	"github.com/d2l-ai/d2l-go/internal/nn"
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// Seq2SeqEncoder embeds source tokens and runs them through a stacked
// GRU, one timestep at a time.
type Seq2SeqEncoder[B tensor.Backend] struct {
	embedding *nn.Embedding[B]
	rnn       *nn.GRU[B]
	backend   B
}

// NewSeq2SeqEncoder creates an encoder over a source vocabulary.
func NewSeq2SeqEncoder[B tensor.Backend](vocabSize, embedSize, numHiddens, numLayers int, backend B) *Seq2SeqEncoder[B] {
	return &Seq2SeqEncoder[B]{
		embedding: nn.NewEmbedding(vocabSize, embedSize, backend),
		rnn:       nn.NewGRU(embedSize, numHiddens, numLayers, backend),
		backend:   backend,
	}
}

// Encode runs the source batch [batch, steps] through the recurrent
// stack and returns the per-step outputs and final hidden state.
func (e *Seq2SeqEncoder[B]) Encode(src *tensor.Tensor[int32, B], validLens []int) EncoderState[B] {
	batch, steps := src.Shape()[0], src.Shape()[1]

	state := e.rnn.BeginState(batch)
	outputs := make([]*tensor.Tensor[float32, B], steps)
	for t := 0; t < steps; t++ {
		x := e.embedding.Forward(column(src, t))
		outputs[t], state = e.rnn.Step(x, state)
	}

	return EncoderState[B]{Outputs: outputs, Hidden: state, ValidLens: validLens}
}

// HiddenSize returns the recurrent hidden width.
func (e *Seq2SeqEncoder[B]) HiddenSize() int {
	return e.rnn.HiddenSize()
}

// Parameters returns the trainable parameters.
func (e *Seq2SeqEncoder[B]) Parameters() []*nn.Parameter[B] {
	return append(e.embedding.Parameters(), e.rnn.Parameters()...)
}

// Seq2SeqDecoder generates target tokens conditioned on a fixed context
// vector, the encoder's final top-layer hidden state, concatenated to
// every embedded input token.
type Seq2SeqDecoder[B tensor.Backend] struct {
	embedding *nn.Embedding[B]
	rnn       *nn.GRU[B]
	dense     *nn.Linear[B]
	backend   B
}

// NewSeq2SeqDecoder creates a decoder over a target vocabulary. The GRU
// consumes embedSize+numHiddens features per step because the context
// vector rides along with every input embedding.
func NewSeq2SeqDecoder[B tensor.Backend](vocabSize, embedSize, numHiddens, numLayers int, backend B) *Seq2SeqDecoder[B] {
	return &Seq2SeqDecoder[B]{
		embedding: nn.NewEmbedding(vocabSize, embedSize, backend),
		rnn:       nn.NewGRU(embedSize+numHiddens, numHiddens, numLayers, backend),
		dense:     nn.NewLinear(numHiddens, vocabSize, backend),
		backend:   backend,
	}
}

// InitState seeds the decoder's hidden state with the encoder's final
// hidden state, layer for layer.
func (d *Seq2SeqDecoder[B]) InitState(enc EncoderState[B]) *DecoderState[B] {
	hidden := make([]*tensor.Tensor[float32, B], len(enc.Hidden))
	copy(hidden, enc.Hidden)
	return &DecoderState[B]{Hidden: hidden, Enc: enc}
}

// Step advances one timestep: embed the previous tokens, append the
// context vector, run the GRU and project to vocabulary logits.
func (d *Seq2SeqDecoder[B]) Step(tokens *tensor.Tensor[int32, B], state *DecoderState[B]) (*tensor.Tensor[float32, B], *DecoderState[B]) {
	x := d.embedding.Forward(tokens)
	context := state.Enc.Hidden[len(state.Enc.Hidden)-1]
	xc := tensor.Cat([]*tensor.Tensor[float32, B]{x, context}, 1)

	out, hidden := d.rnn.Step(xc, state.Hidden)
	logits := d.dense.Forward(out)
	return logits, &DecoderState[B]{Hidden: hidden, Enc: state.Enc}
}

// SetTraining is a no-op; the plain decoder has no dropout.
func (d *Seq2SeqDecoder[B]) SetTraining(bool) {}

// Parameters returns the trainable parameters.
func (d *Seq2SeqDecoder[B]) Parameters() []*nn.Parameter[B] {
	params := append(d.embedding.Parameters(), d.rnn.Parameters()...)
	return append(params, d.dense.Parameters()...)
}
