package nn

import (
	"fmt"
	"math"

	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// maskValue is added to attention scores at positions beyond a
// sequence's valid length, driving their softmax weight to zero.
const maskValue = -1e6

// MaskBias builds a constant [batch, steps] tensor holding 0 at valid
// positions and a large negative value at padding positions. Adding it
// to attention scores implements valid-length masking.
func MaskBias[B tensor.Backend](validLens []int, steps int, backend B) *tensor.Tensor[float32, B] {
	bias := tensor.Zeros[float32](tensor.Shape{len(validLens), steps}, backend)
	data := bias.Data()
	for b, vl := range validLens {
		for t := vl; t < steps; t++ {
			data[b*steps+t] = maskValue
		}
	}
	return bias
}

// AdditiveAttention scores a query against keys through a shared hidden
// projection:
//
//	score(q, k) = wᵥᵀ tanh(q@Wq + k@Wk)
//
// Positions beyond each example's valid length are masked out before the
// softmax. The weights of the most recent forward pass are retained for
// inspection (e.g. attention heatmaps).
type AdditiveAttention[B tensor.Backend] struct {
	wq, wk, wv *Parameter[B]
	dropout    *Dropout[B]
	backend    B

	lastWeights [][]float32
}

// NewAdditiveAttention creates additive attention with the given query
// and key sizes projected into numHiddens units.
func NewAdditiveAttention[B tensor.Backend](querySize, keySize, numHiddens int, dropout float32, backend B) *AdditiveAttention[B] {
	return &AdditiveAttention[B]{
		wq:      NewParameter("attention.wq", Xavier(querySize, numHiddens, tensor.Shape{querySize, numHiddens}, backend)),
		wk:      NewParameter("attention.wk", Xavier(keySize, numHiddens, tensor.Shape{keySize, numHiddens}, backend)),
		wv:      NewParameter("attention.wv", Xavier(numHiddens, 1, tensor.Shape{numHiddens, 1}, backend)),
		dropout: NewDropout(dropout, backend),
		backend: backend,
	}
}

// SetTraining switches the internal dropout between train and eval mode.
func (a *AdditiveAttention[B]) SetTraining(training bool) {
	a.dropout.SetTraining(training)
}

// Forward attends a single query [batch, querySize] over per-step keys
// and values (each [batch, keySize] / [batch, valueSize]). validLens
// gives the number of attendable steps per example; nil means all steps
// are valid.
//
// Returns the context vector [batch, valueSize].
func (a *AdditiveAttention[B]) Forward(
	query *tensor.Tensor[float32, B],
	keys, values []*tensor.Tensor[float32, B],
	validLens []int,
) *tensor.Tensor[float32, B] {
	steps := len(keys)
	if steps == 0 || steps != len(values) {
		panic(fmt.Sprintf("AdditiveAttention: got %d keys and %d values", steps, len(values)))
	}
	batch := query.Shape()[0]

	if validLens == nil {
		validLens = make([]int, batch)
		for i := range validLens {
			validLens[i] = steps
		}
	}

	// Per-step scores [batch, 1], masked by valid length.
	qProj := query.MatMul(a.wq.Tensor())
	scores := make([]*tensor.Tensor[float32, B], steps)
	for t, k := range keys {
		hidden := qProj.Add(k.MatMul(a.wk.Tensor())).Tanh()
		score := hidden.MatMul(a.wv.Tensor())
		scores[t] = score.Add(stepMask(validLens, t, a.backend))
	}

	// Stable softmax over steps: shift by the per-example max. The shift
	// is a constant, so it does not perturb gradients.
	shift := tensor.Zeros[float32](tensor.Shape{batch, 1}, a.backend)
	shiftData := shift.Data()
	for b := 0; b < batch; b++ {
		maxScore := float32(math.Inf(-1))
		for t := range scores {
			if v := scores[t].At(b, 0); v > maxScore {
				maxScore = v
			}
		}
		shiftData[b] = maxScore
	}

	exps := make([]*tensor.Tensor[float32, B], steps)
	denom := tensor.Zeros[float32](tensor.Shape{batch, 1}, a.backend)
	for t := range scores {
		exps[t] = scores[t].Sub(shift).Exp()
		denom = denom.Add(exps[t])
	}

	a.lastWeights = make([][]float32, batch)
	for b := range a.lastWeights {
		a.lastWeights[b] = make([]float32, steps)
	}

	var context *tensor.Tensor[float32, B]
	for t := range exps {
		weight := exps[t].Div(denom) // [batch, 1]
		for b := 0; b < batch; b++ {
			a.lastWeights[b][t] = weight.At(b, 0)
		}
		contrib := a.dropout.Forward(weight).Mul(values[t])
		if context == nil {
			context = contrib
		} else {
			context = context.Add(contrib)
		}
	}

	return context
}

// stepMask builds the constant [batch, 1] bias for step t: zero where t
// is within the example's valid length, maskValue otherwise.
func stepMask[B tensor.Backend](validLens []int, t int, backend B) *tensor.Tensor[float32, B] {
	mask := tensor.Zeros[float32](tensor.Shape{len(validLens), 1}, backend)
	data := mask.Data()
	for b, vl := range validLens {
		if t >= vl {
			data[b] = maskValue
		}
	}
	return mask
}

// Weights returns the attention weights [batch][steps] of the most
// recent forward pass.
func (a *AdditiveAttention[B]) Weights() [][]float32 {
	return a.lastWeights
}

// Parameters returns the trainable parameters.
func (a *AdditiveAttention[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{a.wq, a.wk, a.wv}
}
