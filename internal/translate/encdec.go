// Package translate implements sequence-to-sequence machine translation:
// GRU encoder-decoder architectures with optional additive attention, a
// teacher-forcing training loop with masked cross-entropy and gradient
// clipping, greedy decoding and BLEU scoring.
package translate

import (
	"github.com/d2l-ai/d2l-go/internal/nn"
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// EncoderState is everything a decoder consumes from an encoder: the
// top-layer output at every source step, the final hidden state of each
// layer and the per-example valid source lengths.
type EncoderState[B tensor.Backend] struct {
	Outputs   []*tensor.Tensor[float32, B] // per source step, each [batch, hidden]
	Hidden    []*tensor.Tensor[float32, B] // per layer, each [batch, hidden]
	ValidLens []int
}

// DecoderState carries the decoder's recurrent hidden state between
// steps plus the encoder state it conditions on.
type DecoderState[B tensor.Backend] struct {
	Hidden []*tensor.Tensor[float32, B]
	Enc    EncoderState[B]
}

// Encoder maps a padded source batch to an EncoderState.
type Encoder[B tensor.Backend] interface {
	Encode(src *tensor.Tensor[int32, B], validLens []int) EncoderState[B]
	Parameters() []*nn.Parameter[B]
}

// Decoder generates target logits one timestep at a time, threading a
// DecoderState through successive calls. Implementations with dropout
// switch it via SetTraining.
type Decoder[B tensor.Backend] interface {
	InitState(enc EncoderState[B]) *DecoderState[B]
	// Step consumes the previous target tokens [batch] and returns
	// vocabulary logits [batch, vocabSize] with the advanced state.
	Step(tokens *tensor.Tensor[int32, B], state *DecoderState[B]) (*tensor.Tensor[float32, B], *DecoderState[B])
	SetTraining(training bool)
	Parameters() []*nn.Parameter[B]
}

// column extracts column t of a [batch, steps] index tensor as a
// [batch] tensor.
func column[B tensor.Backend](src *tensor.Tensor[int32, B], t int) *tensor.Tensor[int32, B] {
	shape := src.Shape()
	batch, steps := shape[0], shape[1]
	data := src.Data()
	col := make([]int32, batch)
	for b := 0; b < batch; b++ {
		col[b] = data[b*steps+t]
	}
	return tensor.MustFromSlice(col, tensor.Shape{batch}, src.Backend())
}
