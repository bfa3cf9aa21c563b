package translate

import (
	"strings"

	"github.com/d2l-ai/d2l-go/internal/tensor"
	"github.com/d2l-ai/d2l-go/internal/text"
)

// PredictGreedy translates a single source sentence by greedy decoding:
// the decoder is fed its own argmax prediction at every step, stopping
// when it emits the end-of-sequence token or after numSteps steps.
//
// The source sentence is lowercased word-tokenized, given a trailing
// end-of-sequence token and padded to numSteps, mirroring the training
// pipeline. Even an empty source is encoded; the appended token keeps
// its valid length at one.
func PredictGreedy[B tensor.Backend](
	encoder Encoder[B],
	decoder Decoder[B],
	sentence string,
	srcVocab, tgtVocab *text.Vocab,
	numSteps int,
	backend B,
) string {
	decoder.SetTraining(false)

	srcTokens := strings.Fields(strings.ToLower(sentence))
	indices := append(srcVocab.ToIndices(srcTokens), srcVocab.Idx(text.EosToken))
	validLen := len(indices)
	if validLen > numSteps {
		validLen = numSteps
	}
	padded := text.TruncatePad(indices, numSteps, srcVocab.Idx(text.PadToken))

	src := make([]int32, numSteps)
	for i, idx := range padded {
		src[i] = int32(idx)
	}
	srcTensor := tensor.MustFromSlice(src, tensor.Shape{1, numSteps}, backend)

	enc := encoder.Encode(srcTensor, []int{validLen})
	state := decoder.InitState(enc)

	eos := int32(tgtVocab.Idx(text.EosToken))
	input := tensor.MustFromSlice([]int32{int32(tgtVocab.Idx(text.BosToken))}, tensor.Shape{1}, backend)

	var out []string
	for t := 0; t < numSteps; t++ {
		logits, next := decoder.Step(input, state)
		state = next

		pred := logits.Argmax(1).Data()[0]
		if pred == eos {
			break
		}
		out = append(out, tgtVocab.Token(int(pred)))
		input = tensor.MustFromSlice([]int32{pred}, tensor.Shape{1}, backend)
	}
	return strings.Join(out, " ")
}
