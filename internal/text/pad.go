package text

import (
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// TruncatePad forces a sequence of token indices to exactly numSteps
// entries: longer sequences are truncated, shorter ones are padded with
// the pad index.
func TruncatePad(line []int, numSteps, pad int) []int {
	if len(line) >= numSteps {
		return line[:numSteps]
	}
	out := make([]int, numSteps)
	copy(out, line)
	for i := len(line); i < numSteps; i++ {
		out[i] = pad
	}
	return out
}

// BuildArray converts tokenized lines into a [numLines, numSteps] index
// tensor plus per-line valid lengths. An end-of-sequence token is
// appended to every line before truncation and padding, and the valid
// length counts the non-pad entries of each padded row.
func BuildArray[B tensor.Backend](lines [][]string, vocab *Vocab, numSteps int, backend B) (*tensor.Tensor[int32, B], []int) {
	pad := vocab.Idx(PadToken)
	eos := vocab.Idx(EosToken)

	data := make([]int32, 0, len(lines)*numSteps)
	validLens := make([]int, len(lines))
	for i, line := range lines {
		indices := append(vocab.ToIndices(line), eos)
		padded := TruncatePad(indices, numSteps, pad)

		valid := 0
		for _, idx := range padded {
			if idx != pad {
				valid++
			}
		}
		validLens[i] = valid

		for _, idx := range padded {
			data = append(data, int32(idx))
		}
	}

	arr := tensor.MustFromSlice(data, tensor.Shape{len(lines), numSteps}, backend)
	return arr, validLens
}
