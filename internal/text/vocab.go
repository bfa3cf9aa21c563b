package text

import "sort"

// Standard reserved tokens for sequence models.
const (
	UnkToken = "<unk>"
	PadToken = "<pad>"
	BosToken = "<bos>"
	EosToken = "<eos>"
)

// Vocab maps tokens to dense integer indices and back. Index 0 is
// always the unknown token; reserved tokens follow in the order given,
// then corpus tokens sorted by descending frequency with ties broken
// lexicographically.
type Vocab struct {
	idxToToken []string
	tokenToIdx map[string]int
}

// NewVocab builds a vocabulary from a tokenized corpus. Tokens that
// appear fewer than minFreq times are dropped and map to the unknown
// index. Reserved tokens are always included regardless of frequency.
func NewVocab(tokens [][]string, minFreq int, reserved []string) *Vocab {
	counts := CountCorpus(tokens)

	type pair struct {
		token string
		freq  int
	}
	pairs := make([]pair, 0, len(counts))
	for token, freq := range counts {
		pairs = append(pairs, pair{token, freq})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].freq != pairs[j].freq {
			return pairs[i].freq > pairs[j].freq
		}
		return pairs[i].token < pairs[j].token
	})

	v := &Vocab{
		idxToToken: []string{UnkToken},
		tokenToIdx: map[string]int{UnkToken: 0},
	}
	for _, token := range reserved {
		v.add(token)
	}
	for _, p := range pairs {
		if p.freq < minFreq {
			break
		}
		v.add(p.token)
	}
	return v
}

func (v *Vocab) add(token string) {
	if _, ok := v.tokenToIdx[token]; ok {
		return
	}
	v.tokenToIdx[token] = len(v.idxToToken)
	v.idxToToken = append(v.idxToToken, token)
}

// Len returns the vocabulary size including reserved tokens.
func (v *Vocab) Len() int {
	return len(v.idxToToken)
}

// Idx returns the index of a token, or the unknown index for
// out-of-vocabulary tokens.
func (v *Vocab) Idx(token string) int {
	if idx, ok := v.tokenToIdx[token]; ok {
		return idx
	}
	return 0
}

// Token returns the token at an index.
func (v *Vocab) Token(idx int) string {
	return v.idxToToken[idx]
}

// ToIndices maps a token sequence to its indices.
func (v *Vocab) ToIndices(tokens []string) []int {
	indices := make([]int, len(tokens))
	for i, token := range tokens {
		indices[i] = v.Idx(token)
	}
	return indices
}

// ToTokens maps an index sequence back to tokens.
func (v *Vocab) ToTokens(indices []int) []string {
	tokens := make([]string, len(indices))
	for i, idx := range indices {
		tokens[i] = v.Token(idx)
	}
	return tokens
}
