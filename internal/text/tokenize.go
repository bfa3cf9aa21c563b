// Package text implements corpus preprocessing: line tokenization,
// vocabulary construction, sequence padding and a subword encoder
// backed by tiktoken BPE vocabularies.
package text

import (
	"fmt"
	"strings"
)

// TokenMode selects how lines are split into tokens.
type TokenMode string

const (
	// WordMode splits lines on whitespace.
	WordMode TokenMode = "word"
	// CharMode splits lines into single-character tokens.
	CharMode TokenMode = "char"
)

// Tokenize splits each line into tokens. Word mode splits on runs of
// whitespace, char mode yields one token per rune. Any other mode is a
// programming error and panics.
func Tokenize(lines []string, mode TokenMode) [][]string {
	tokens := make([][]string, len(lines))
	switch mode {
	case WordMode:
		for i, line := range lines {
			tokens[i] = strings.Fields(line)
		}
	case CharMode:
		for i, line := range lines {
			runes := []rune(line)
			lineTokens := make([]string, len(runes))
			for j, r := range runes {
				lineTokens[j] = string(r)
			}
			tokens[i] = lineTokens
		}
	default:
		panic(fmt.Sprintf("Tokenize: unknown token mode %q", mode))
	}
	return tokens
}

// CountCorpus counts token frequencies over a tokenized corpus.
func CountCorpus(tokens [][]string) map[string]int {
	counts := make(map[string]int)
	for _, line := range tokens {
		for _, token := range line {
			counts[token]++
		}
	}
	return counts
}
