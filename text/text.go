// Copyright 2025 The d2l-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package text provides corpus preprocessing: tokenization, vocabulary
// construction, sequence padding and subword encoding.
package text

import (
	"github.com/d2l-ai/d2l-go/internal/tensor"
	"github.com/d2l-ai/d2l-go/internal/text"
)

// TokenMode selects how lines are split into tokens.
type TokenMode = text.TokenMode

// Token modes.
const (
	WordMode TokenMode = text.WordMode
	CharMode TokenMode = text.CharMode
)

// Standard reserved tokens for sequence models.
const (
	UnkToken = text.UnkToken
	PadToken = text.PadToken
	BosToken = text.BosToken
	EosToken = text.EosToken
)

// Tokenize splits each line into tokens. Word mode splits on
// whitespace, char mode yields one token per rune; any other mode
// panics.
func Tokenize(lines []string, mode TokenMode) [][]string {
	return text.Tokenize(lines, mode)
}

// CountCorpus counts token frequencies over a tokenized corpus.
func CountCorpus(tokens [][]string) map[string]int {
	return text.CountCorpus(tokens)
}

// Vocab maps tokens to dense integer indices and back. Index 0 is
// always the unknown token.
type Vocab = text.Vocab

// NewVocab builds a vocabulary from a tokenized corpus, dropping tokens
// rarer than minFreq and always including the reserved tokens.
//
// Example:
//
//	vocab := text.NewVocab(tokens, 2, []string{text.PadToken, text.BosToken, text.EosToken})
func NewVocab(tokens [][]string, minFreq int, reserved []string) *Vocab {
	return text.NewVocab(tokens, minFreq, reserved)
}

// TruncatePad forces a sequence of token indices to exactly numSteps
// entries, truncating or padding with the pad index.
func TruncatePad(line []int, numSteps, pad int) []int {
	return text.TruncatePad(line, numSteps, pad)
}

// BuildArray converts tokenized lines into a [numLines, numSteps] index
// tensor plus per-line valid lengths.
func BuildArray[B tensor.Backend](lines [][]string, vocab *Vocab, numSteps int, backend B) (*tensor.Tensor[int32, B], []int) {
	return text.BuildArray(lines, vocab, numSteps, backend)
}

// Subword encodes text with a pretrained byte-pair encoding vocabulary.
type Subword = text.Subword

// NewSubword loads a named tiktoken encoding, e.g. "cl100k_base".
func NewSubword(encoding string) (*Subword, error) {
	return text.NewSubword(encoding)
}
