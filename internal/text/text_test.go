package text_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d2l-ai/d2l-go/internal/backend/cpu"
	"github.com/d2l-ai/d2l-go/internal/tensor"
	"github.com/d2l-ai/d2l-go/internal/text"
)

func TestTokenizeWord(t *testing.T) {
	tokens := text.Tokenize([]string{"the time machine", "  by h g wells "}, text.WordMode)
	require.Len(t, tokens, 2)
	assert.Equal(t, []string{"the", "time", "machine"}, tokens[0])
	assert.Equal(t, []string{"by", "h", "g", "wells"}, tokens[1])
}

func TestTokenizeChar(t *testing.T) {
	tokens := text.Tokenize([]string{"abc"}, text.CharMode)
	require.Len(t, tokens, 1)
	assert.Equal(t, []string{"a", "b", "c"}, tokens[0])

	// Char tokens concatenate back into the original line.
	assert.Equal(t, "abc", strings.Join(tokens[0], ""))
}

func TestTokenizeUnknownModePanics(t *testing.T) {
	assert.Panics(t, func() {
		text.Tokenize([]string{"x"}, text.TokenMode("sentence"))
	})
}

func TestCountCorpus(t *testing.T) {
	counts := text.CountCorpus([][]string{{"a", "b", "a"}, {"a"}})
	assert.Equal(t, 3, counts["a"])
	assert.Equal(t, 1, counts["b"])
}

func TestVocabUnknownIsZero(t *testing.T) {
	vocab := text.NewVocab([][]string{{"hello"}}, 1, nil)
	assert.Equal(t, 0, vocab.Idx(text.UnkToken))
	assert.Equal(t, 0, vocab.Idx("never-seen"))
	assert.Equal(t, text.UnkToken, vocab.Token(0))
}

func TestVocabReservedOrder(t *testing.T) {
	reserved := []string{text.PadToken, text.BosToken, text.EosToken}
	vocab := text.NewVocab(nil, 1, reserved)

	assert.Equal(t, 1, vocab.Idx(text.PadToken))
	assert.Equal(t, 2, vocab.Idx(text.BosToken))
	assert.Equal(t, 3, vocab.Idx(text.EosToken))
	assert.Equal(t, 4, vocab.Len())
}

func TestVocabMinFreq(t *testing.T) {
	tokens := [][]string{{"common", "common", "rare"}}
	vocab := text.NewVocab(tokens, 2, nil)

	assert.NotEqual(t, 0, vocab.Idx("common"))
	assert.Equal(t, 0, vocab.Idx("rare"), "rare token should map to <unk>")
}

func TestVocabFrequencyOrder(t *testing.T) {
	tokens := [][]string{{"b", "b", "b", "a", "a", "c"}}
	vocab := text.NewVocab(tokens, 1, nil)

	// More frequent tokens get smaller indices.
	assert.Less(t, vocab.Idx("b"), vocab.Idx("a"))
	assert.Less(t, vocab.Idx("a"), vocab.Idx("c"))
}

func TestVocabRoundTrip(t *testing.T) {
	tokens := [][]string{{"the", "time", "machine"}}
	vocab := text.NewVocab(tokens, 1, nil)

	indices := vocab.ToIndices([]string{"time", "machine", "the"})
	back := vocab.ToTokens(indices)
	assert.Equal(t, []string{"time", "machine", "the"}, back)
}

func TestTruncatePad(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, text.TruncatePad([]int{1, 2, 3, 4, 5}, 3, 0))
	assert.Equal(t, []int{1, 2, 9, 9}, text.TruncatePad([]int{1, 2}, 4, 9))
	assert.Equal(t, []int{9, 9}, text.TruncatePad(nil, 2, 9))
}

func TestBuildArray(t *testing.T) {
	backend := cpu.New()
	reserved := []string{text.PadToken, text.BosToken, text.EosToken}
	lines := [][]string{{"hello", "world"}, {"hi"}}
	vocab := text.NewVocab(lines, 1, reserved)

	arr, validLens := text.BuildArray(lines, vocab, 5, backend)

	require.True(t, arr.Shape().Equal(tensor.Shape{2, 5}))
	// Each line gets <eos> appended before padding.
	assert.Equal(t, []int{3, 2}, validLens)

	eos := int32(vocab.Idx(text.EosToken))
	pad := int32(vocab.Idx(text.PadToken))
	data := arr.Data()
	assert.Equal(t, eos, data[2], "first line ends with <eos>")
	assert.Equal(t, pad, data[3])
	assert.Equal(t, eos, data[5+1], "second line ends with <eos>")
}

func TestBuildArrayTruncatesLongLines(t *testing.T) {
	backend := cpu.New()
	lines := [][]string{{"a", "b", "c", "d"}}
	vocab := text.NewVocab(lines, 1, []string{text.PadToken, text.EosToken})

	arr, validLens := text.BuildArray(lines, vocab, 3, backend)
	require.True(t, arr.Shape().Equal(tensor.Shape{1, 3}))
	assert.Equal(t, []int{3}, validLens)
}
