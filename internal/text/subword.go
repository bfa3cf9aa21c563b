package text

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Subword encodes text with a pretrained byte-pair encoding vocabulary.
// It complements word and char tokenization for corpora where neither
// granularity fits, and needs no corpus pass to build a Vocab.
type Subword struct {
	encoding string
	enc      *tiktoken.Tiktoken
}

// NewSubword loads a named tiktoken encoding, e.g. "cl100k_base".
func NewSubword(encoding string) (*Subword, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load encoding %q: %w", encoding, err)
	}
	return &Subword{encoding: encoding, enc: enc}, nil
}

// Encoding returns the name of the loaded encoding.
func (s *Subword) Encoding() string {
	return s.encoding
}

// Encode maps text to subword token ids.
func (s *Subword) Encode(text string) []int {
	return s.enc.Encode(text, nil, nil)
}

// Decode maps subword token ids back to text.
func (s *Subword) Decode(ids []int) string {
	return s.enc.Decode(ids)
}

// EncodeLines encodes each line independently.
func (s *Subword) EncodeLines(lines []string) [][]int {
	out := make([][]int, len(lines))
	for i, line := range lines {
		out[i] = s.Encode(line)
	}
	return out
}
