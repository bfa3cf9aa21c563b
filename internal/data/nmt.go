package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/d2l-ai/d2l-go/internal/tensor"
	"github.com/d2l-ai/d2l-go/internal/text"
)

// TranslationCorpus holds a tokenized parallel corpus and the
// vocabularies built from each side.
type TranslationCorpus struct {
	Source   [][]string
	Target   [][]string
	SrcVocab *text.Vocab
	TgtVocab *text.Vocab
}

// PreprocessNMT normalizes raw translation text: non-breaking spaces
// become plain spaces, everything is lowercased, and a space is
// inserted before any punctuation mark not already preceded by one.
func PreprocessNMT(raw string) string {
	s := strings.ReplaceAll(raw, "\u00a0", " ")
	s = strings.ReplaceAll(s, "\u202f", " ")
	s = strings.ToLower(s)

	var sb strings.Builder
	sb.Grow(len(s))
	var prev rune
	for i, r := range s {
		if i > 0 && isNMTPunct(r) && prev != ' ' {
			sb.WriteRune(' ')
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}

func isNMTPunct(r rune) bool {
	switch r {
	case ',', '.', '!', '?':
		return true
	}
	return false
}

// TokenizeNMT splits preprocessed text into parallel source and target
// token sequences. Each line holds a source sentence and its
// translation separated by a tab; lines without a tab are skipped.
// maxExamples limits the number of pairs kept, zero means no limit.
func TokenizeNMT(preprocessed string, maxExamples int) (source, target [][]string) {
	for _, line := range strings.Split(preprocessed, "\n") {
		if maxExamples > 0 && len(source) >= maxExamples {
			break
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		source = append(source, strings.Fields(parts[0]))
		target = append(target, strings.Fields(parts[1]))
	}
	return source, target
}

// NewTranslationCorpus preprocesses and tokenizes raw tab-separated
// translation text and builds both vocabularies. Tokens appearing
// fewer than minFreq times map to the unknown token.
func NewTranslationCorpus(raw string, maxExamples, minFreq int) *TranslationCorpus {
	source, target := TokenizeNMT(PreprocessNMT(raw), maxExamples)
	reserved := []string{text.PadToken, text.BosToken, text.EosToken}
	return &TranslationCorpus{
		Source:   source,
		Target:   target,
		SrcVocab: text.NewVocab(source, minFreq, reserved),
		TgtVocab: text.NewVocab(target, minFreq, reserved),
	}
}

// LoadFraEng downloads the English-French corpus into cacheDir and
// returns its raw text.
func LoadFraEng(cacheDir string) (string, error) {
	dir, err := DownloadExtract("fra-eng", cacheDir)
	if err != nil {
		return "", err
	}
	raw, err := os.ReadFile(filepath.Join(dir, "fra-eng", "fra.txt"))
	if err != nil {
		return "", fmt.Errorf("read corpus: %w", err)
	}
	return string(raw), nil
}

// BuildTranslationArrays converts a corpus into padded index tensors of
// numSteps columns plus per-sequence valid lengths, ready for batching.
func BuildTranslationArrays[B tensor.Backend](c *TranslationCorpus, numSteps int, backend B) (src, tgt *tensor.Tensor[int32, B], srcLens, tgtLens []int) {
	src, srcLens = text.BuildArray(c.Source, c.SrcVocab, numSteps, backend)
	tgt, tgtLens = text.BuildArray(c.Target, c.TgtVocab, numSteps, backend)
	return src, tgt, srcLens, tgtLens
}
