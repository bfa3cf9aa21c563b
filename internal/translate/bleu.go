package translate

import (
	"math"
	"strings"
)

// BLEU scores a predicted translation against a reference, using n-gram
// precisions up to maxN with exponentially decaying weights 1/2ⁿ and a
// brevity penalty for short predictions:
//
//	exp(min(0, 1 - lenRef/lenPred)) · Π pₙ^(1/2ⁿ)
//
// Returns 0 when the prediction is empty or shorter than some n with a
// zero n-gram precision.
func BLEU(pred, reference string, maxN int) float64 {
	predTokens := strings.Fields(pred)
	refTokens := strings.Fields(reference)
	lenPred, lenRef := len(predTokens), len(refTokens)
	if lenPred == 0 {
		return 0
	}

	score := math.Exp(math.Min(0, 1-float64(lenRef)/float64(lenPred)))
	for n := 1; n <= maxN; n++ {
		matches := 0
		refCounts := make(map[string]int)
		for i := 0; i+n <= lenRef; i++ {
			refCounts[strings.Join(refTokens[i:i+n], " ")]++
		}
		total := lenPred - n + 1
		for i := 0; i+n <= lenPred; i++ {
			gram := strings.Join(predTokens[i:i+n], " ")
			if refCounts[gram] > 0 {
				matches++
				refCounts[gram]--
			}
		}
		if total <= 0 || matches == 0 {
			return 0
		}
		precision := float64(matches) / float64(total)
		score *= math.Pow(precision, math.Pow(0.5, float64(n)))
	}
	return score
}
