package nn

import (
	"fmt"

	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// GRU is a multilayer gated recurrent unit operating one timestep at a
// time. Callers drive the unrolling, which keeps the layer independent
// of batch layout and lets decoders feed back their own outputs.
//
// Per-layer update for input x and previous hidden h:
//
//	Z = σ(x@Wxz + h@Whz + bz)       update gate
//	R = σ(x@Wxr + h@Whr + br)       reset gate
//	H̃ = tanh(x@Wxh + (R⊙h)@Whh + bh) candidate
//	H = Z⊙h + (1-Z)⊙H̃
type GRU[B tensor.Backend] struct {
	inputSize  int
	hiddenSize int
	layers     []*gruLayer[B]
	backend    B
}

type gruLayer[B tensor.Backend] struct {
	wxz, whz, bz *Parameter[B]
	wxr, whr, br *Parameter[B]
	wxh, whh, bh *Parameter[B]
}

// NewGRU creates a GRU with the given number of stacked layers.
// Layer 0 consumes inputSize features; deeper layers consume hiddenSize.
func NewGRU[B tensor.Backend](inputSize, hiddenSize, numLayers int, backend B) *GRU[B] {
	if numLayers < 1 {
		panic(fmt.Sprintf("GRU: numLayers must be >= 1, got %d", numLayers))
	}

	layers := make([]*gruLayer[B], numLayers)
	for l := range layers {
		in := inputSize
		if l > 0 {
			in = hiddenSize
		}
		layers[l] = newGRULayer(l, in, hiddenSize, backend)
	}

	return &GRU[B]{
		inputSize:  inputSize,
		hiddenSize: hiddenSize,
		layers:     layers,
		backend:    backend,
	}
}

func newGRULayer[B tensor.Backend](idx, in, hidden int, backend B) *gruLayer[B] {
	name := func(s string) string { return fmt.Sprintf("gru%d.%s", idx, s) }
	weight := func(s string, rows, cols int) *Parameter[B] {
		return NewParameter(name(s), Xavier(rows, cols, tensor.Shape{rows, cols}, backend))
	}
	bias := func(s string) *Parameter[B] {
		return NewParameter(name(s), Zeros(tensor.Shape{hidden}, backend))
	}

	return &gruLayer[B]{
		wxz: weight("wxz", in, hidden), whz: weight("whz", hidden, hidden), bz: bias("bz"),
		wxr: weight("wxr", in, hidden), whr: weight("whr", hidden, hidden), br: bias("br"),
		wxh: weight("wxh", in, hidden), whh: weight("whh", hidden, hidden), bh: bias("bh"),
	}
}

// HiddenSize returns the hidden state width.
func (g *GRU[B]) HiddenSize() int {
	return g.hiddenSize
}

// NumLayers returns the number of stacked layers.
func (g *GRU[B]) NumLayers() int {
	return len(g.layers)
}

// BeginState returns zero hidden states, one [batch, hidden] tensor per layer.
func (g *GRU[B]) BeginState(batch int) []*tensor.Tensor[float32, B] {
	state := make([]*tensor.Tensor[float32, B], len(g.layers))
	for l := range state {
		state[l] = tensor.Zeros[float32](tensor.Shape{batch, g.hiddenSize}, g.backend)
	}
	return state
}

// Step advances one timestep. x is [batch, inputSize]; state holds one
// [batch, hidden] tensor per layer. Returns the top layer's new hidden
// state as the step output together with the full new state.
func (g *GRU[B]) Step(x *tensor.Tensor[float32, B], state []*tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], []*tensor.Tensor[float32, B]) {
	if len(state) != len(g.layers) {
		panic(fmt.Sprintf("GRU.Step: expected %d state tensors, got %d", len(g.layers), len(state)))
	}

	newState := make([]*tensor.Tensor[float32, B], len(g.layers))
	input := x
	for l, layer := range g.layers {
		h := state[l]

		z := input.MatMul(layer.wxz.Tensor()).Add(h.MatMul(layer.whz.Tensor())).Add(layer.bz.Tensor()).Sigmoid()
		r := input.MatMul(layer.wxr.Tensor()).Add(h.MatMul(layer.whr.Tensor())).Add(layer.br.Tensor()).Sigmoid()
		hTilde := input.MatMul(layer.wxh.Tensor()).Add(r.Mul(h).MatMul(layer.whh.Tensor())).Add(layer.bh.Tensor()).Tanh()

		// H = Z⊙h + (1-Z)⊙H̃
		oneMinusZ := z.MulScalar(-1).AddScalar(1)
		hNew := z.Mul(h).Add(oneMinusZ.Mul(hTilde))

		newState[l] = hNew
		input = hNew
	}

	return newState[len(newState)-1], newState
}

// Parameters returns all trainable parameters across layers.
func (g *GRU[B]) Parameters() []*Parameter[B] {
	params := make([]*Parameter[B], 0, len(g.layers)*9)
	for _, l := range g.layers {
		params = append(params,
			l.wxz, l.whz, l.bz,
			l.wxr, l.whr, l.br,
			l.wxh, l.whh, l.bh,
		)
	}
	return params
}
