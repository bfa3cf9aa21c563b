package ops

import (
	"fmt"
	"math"

	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// MaskedCrossEntropyOp represents a weighted softmax cross-entropy loss:
//
//	loss = Σ_b weights_b * (logsumexp(logits_b) - logits_b[targets_b])
//
// Padding positions are excluded by passing weight 0 for them; the
// weights are the validity mask derived from per-example valid lengths.
//
// Backward:
//
//	∂loss/∂logits_{b,v} = weights_b * (softmax(logits_b)_v - 1{v == targets_b})
type MaskedCrossEntropyOp struct {
	inputs []*tensor.RawTensor // [logits, targets, weights]
	output *tensor.RawTensor
}

// NewMaskedCrossEntropyOp creates a new MaskedCrossEntropyOp.
func NewMaskedCrossEntropyOp(logits, targets, weights, output *tensor.RawTensor) *MaskedCrossEntropyOp {
	return &MaskedCrossEntropyOp{
		inputs: []*tensor.RawTensor{logits, targets, weights},
		output: output,
	}
}

// MaskedCrossEntropyForward computes the weighted cross-entropy sum using
// the log-sum-exp trick for numerical stability.
//
// Shapes: logits [batch, classes] float32, targets [batch] int32,
// weights [batch] float32. Returns a shape-{1} tensor.
func MaskedCrossEntropyForward(logits, targets, weights *tensor.RawTensor) *tensor.RawTensor {
	shape := logits.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("masked cross entropy: logits must be 2D, got shape %v", shape))
	}
	batch, classes := shape[0], shape[1]
	if targets.NumElements() != batch || weights.NumElements() != batch {
		panic(fmt.Sprintf("masked cross entropy: batch mismatch: logits %v, targets %v, weights %v",
			shape, targets.Shape(), weights.Shape()))
	}

	lv := logits.AsFloat32()
	tv := targets.AsInt32()
	wv := weights.AsFloat32()

	var total float64
	for b := 0; b < batch; b++ {
		if wv[b] == 0 {
			continue
		}
		row := lv[b*classes : (b+1)*classes]

		maxVal := row[0]
		for _, v := range row[1:] {
			if v > maxVal {
				maxVal = v
			}
		}
		var sumExp float64
		for _, v := range row {
			sumExp += math.Exp(float64(v - maxVal))
		}
		logSumExp := float64(maxVal) + math.Log(sumExp)
		total += float64(wv[b]) * (logSumExp - float64(row[tv[b]]))
	}

	result := tensor.MustNewRaw(tensor.Shape{1}, tensor.Float32)
	result.AsFloat32()[0] = float32(total)
	return result
}

// Backward computes the logits gradient; targets and weights receive nil.
func (op *MaskedCrossEntropyOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	logits, targets, weights := op.inputs[0], op.inputs[1], op.inputs[2]
	batch, classes := logits.Shape()[0], logits.Shape()[1]

	softmax := backend.Softmax(logits, 1)

	grad := zerosLike(logits)
	gv := grad.AsFloat32()
	sv := softmax.AsFloat32()
	tv := targets.AsInt32()
	wv := weights.AsFloat32()
	upstream := outputGrad.AsFloat32()[0]

	for b := 0; b < batch; b++ {
		scale := upstream * wv[b]
		if scale == 0 {
			continue
		}
		for v := 0; v < classes; v++ {
			gv[b*classes+v] = scale * sv[b*classes+v]
		}
		gv[b*classes+int(tv[b])] -= scale
	}

	return []*tensor.RawTensor{grad, nil, nil}
}

// Inputs returns [logits, targets, weights].
func (op *MaskedCrossEntropyOp) Inputs() []*tensor.RawTensor { return op.inputs }

// Output returns the scalar loss tensor.
func (op *MaskedCrossEntropyOp) Output() *tensor.RawTensor { return op.output }
