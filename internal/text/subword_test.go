package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d2l-ai/d2l-go/internal/text"
)

func loadSubword(t *testing.T) *text.Subword {
	t.Helper()
	sub, err := text.NewSubword("cl100k_base")
	if err != nil {
		t.Skipf("encoding unavailable: %v", err)
	}
	return sub
}

func TestSubwordInvalidEncoding(t *testing.T) {
	_, err := text.NewSubword("invalid_encoding_xyz")
	assert.Error(t, err)
}

func TestSubwordRoundtrip(t *testing.T) {
	sub := loadSubword(t)

	for _, input := range []string{
		"Hello, world!",
		"the time machine",
		"naïve café",
	} {
		ids := sub.Encode(input)
		require.NotEmpty(t, ids)
		assert.Equal(t, input, sub.Decode(ids))
	}
}

func TestSubwordEncodeLines(t *testing.T) {
	sub := loadSubword(t)

	lines := sub.EncodeLines([]string{"go now", "wait"})
	require.Len(t, lines, 2)
	assert.NotEmpty(t, lines[0])
	assert.Equal(t, "cl100k_base", sub.Encoding())
}
