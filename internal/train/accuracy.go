package train

import (
	"fmt"

	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// Accuracy returns the number of correct predictions: rows of yHat
// [batch, classes] whose argmax equals the label in y [batch].
func Accuracy[B tensor.Backend](yHat *tensor.Tensor[float32, B], y *tensor.Tensor[int32, B]) float64 {
	pred := yHat.Argmax(1)
	labels := y.Data()
	if pred.NumElements() != len(labels) {
		panic(fmt.Sprintf("Accuracy: %d predictions vs %d labels", pred.NumElements(), len(labels)))
	}

	var correct float64
	for i, p := range pred.Data() {
		if p == labels[i] {
			correct++
		}
	}
	return correct
}
