package cpu_test

import (
	"math"
	"testing"

	"github.com/d2l-ai/d2l-go/internal/backend/cpu"
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

func floatEqual(a, b, eps float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

func assertFloats(t *testing.T, want []float32, got []float32, msg string) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s: length %d, want %d", msg, len(got), len(want))
	}
	for i := range want {
		if !floatEqual(want[i], got[i], 1e-5) {
			t.Errorf("%s: element %d = %v, want %v", msg, i, got[i], want[i])
		}
	}
}

func TestAdd(t *testing.T) {
	backend := cpu.New()
	a := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	b := tensor.MustFromSlice([]float32{10, 20, 30, 40}, tensor.Shape{2, 2}, backend)

	assertFloats(t, []float32{11, 22, 33, 44}, a.Add(b).Data(), "add")
}

func TestAddBroadcast(t *testing.T) {
	backend := cpu.New()
	a := tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	bias := tensor.MustFromSlice([]float32{10, 20, 30}, tensor.Shape{3}, backend)

	got := a.Add(bias)
	if !got.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("broadcast shape = %v", got.Shape())
	}
	assertFloats(t, []float32{11, 22, 33, 14, 25, 36}, got.Data(), "broadcast add")
}

func TestMulInt32(t *testing.T) {
	backend := cpu.New()
	a := tensor.MustFromSlice([]int32{2, 3, 4}, tensor.Shape{3}, backend)
	b := tensor.MustFromSlice([]int32{5, 6, 7}, tensor.Shape{3}, backend)

	got := a.Mul(b).Data()
	want := []int32{10, 18, 28}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("int mul element %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMatMul(t *testing.T) {
	backend := cpu.New()
	// [1 2; 3 4] @ [5 6; 7 8] = [19 22; 43 50]
	a := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	b := tensor.MustFromSlice([]float32{5, 6, 7, 8}, tensor.Shape{2, 2}, backend)

	assertFloats(t, []float32{19, 22, 43, 50}, a.MatMul(b).Data(), "matmul")
}

func TestMatMulRectangular(t *testing.T) {
	backend := cpu.New()
	a := tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	b := tensor.MustFromSlice([]float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2}, backend)

	got := a.MatMul(b)
	if !got.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("matmul shape = %v", got.Shape())
	}
	assertFloats(t, []float32{58, 64, 139, 154}, got.Data(), "rect matmul")
}

func TestSoftmaxRowsSumToOne(t *testing.T) {
	backend := cpu.New()
	x := tensor.MustFromSlice([]float32{1, 2, 3, 100, 100, 100}, tensor.Shape{2, 3}, backend)

	sm := x.Softmax(1)
	data := sm.Data()
	for r := 0; r < 2; r++ {
		var sum float32
		for c := 0; c < 3; c++ {
			v := data[r*3+c]
			if v < 0 || v > 1 {
				t.Errorf("softmax value out of range: %v", v)
			}
			sum += v
		}
		if !floatEqual(sum, 1, 1e-5) {
			t.Errorf("row %d sums to %v", r, sum)
		}
	}
	// Larger logit gets larger weight.
	if data[0] >= data[2] {
		t.Error("softmax not monotone in logits")
	}
}

func TestSumAndSumDim(t *testing.T) {
	backend := cpu.New()
	x := tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)

	total := x.Sum()
	if !total.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("sum shape = %v", total.Shape())
	}
	if !floatEqual(total.Data()[0], 21, 1e-5) {
		t.Errorf("sum = %v, want 21", total.Data()[0])
	}

	cols := x.SumDim(0, false)
	if !cols.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("sumdim(0) shape = %v", cols.Shape())
	}
	assertFloats(t, []float32{5, 7, 9}, cols.Data(), "sumdim 0")

	rows := x.SumDim(1, true)
	if !rows.Shape().Equal(tensor.Shape{2, 1}) {
		t.Fatalf("sumdim(1, keep) shape = %v", rows.Shape())
	}
	assertFloats(t, []float32{6, 15}, rows.Data(), "sumdim 1")
}

func TestArgmax(t *testing.T) {
	backend := cpu.New()
	x := tensor.MustFromSlice([]float32{
		0.1, 0.9, 0.5,
		2.0, 2.0, 1.0, // tie resolves to the lowest index
	}, tensor.Shape{2, 3}, backend)

	got := x.Argmax(1)
	if got.DType() != tensor.Int32 {
		t.Fatalf("argmax dtype = %v", got.DType())
	}
	want := []int32{1, 0}
	for i := range want {
		if got.Data()[i] != want[i] {
			t.Errorf("argmax row %d = %d, want %d", i, got.Data()[i], want[i])
		}
	}
}

func TestTranspose(t *testing.T) {
	backend := cpu.New()
	x := tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)

	xt := x.Transpose()
	if !xt.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("transpose shape = %v", xt.Shape())
	}
	assertFloats(t, []float32{1, 4, 2, 5, 3, 6}, xt.Data(), "transpose")
}

func TestReshapeCopies(t *testing.T) {
	backend := cpu.New()
	x := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)

	y := x.Reshape(4)
	y.Data()[0] = 99
	if x.Data()[0] != 1 {
		t.Error("reshape shares memory with original")
	}
}

func TestCat(t *testing.T) {
	backend := cpu.New()
	a := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	b := tensor.MustFromSlice([]float32{5, 6, 7, 8}, tensor.Shape{2, 2}, backend)

	rows := tensor.Cat([]*tensor.Tensor[float32, *cpu.Backend]{a, b}, 0)
	if !rows.Shape().Equal(tensor.Shape{4, 2}) {
		t.Fatalf("cat dim 0 shape = %v", rows.Shape())
	}
	assertFloats(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, rows.Data(), "cat dim 0")

	cols := tensor.Cat([]*tensor.Tensor[float32, *cpu.Backend]{a, b}, 1)
	if !cols.Shape().Equal(tensor.Shape{2, 4}) {
		t.Fatalf("cat dim 1 shape = %v", cols.Shape())
	}
	assertFloats(t, []float32{1, 2, 5, 6, 3, 4, 7, 8}, cols.Data(), "cat dim 1")
}

func TestEmbedding(t *testing.T) {
	backend := cpu.New()
	weight := tensor.MustFromSlice([]float32{
		0, 0, // row 0
		1, 1, // row 1
		2, 2, // row 2
	}, tensor.Shape{3, 2}, backend)
	indices := tensor.MustFromSlice([]int32{2, 0, 1}, tensor.Shape{3}, backend)

	raw := backend.Embedding(weight.Raw(), indices.Raw())
	if !raw.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("embedding shape = %v", raw.Shape())
	}
	assertFloats(t, []float32{2, 2, 0, 0, 1, 1}, raw.AsFloat32(), "embedding")
}

func TestUnaryOps(t *testing.T) {
	backend := cpu.New()
	x := tensor.MustFromSlice([]float32{0, 1}, tensor.Shape{2}, backend)

	exp := x.Exp().Data()
	if !floatEqual(exp[0], 1, 1e-5) || !floatEqual(exp[1], float32(math.E), 1e-4) {
		t.Errorf("exp = %v", exp)
	}

	sig := x.Sigmoid().Data()
	if !floatEqual(sig[0], 0.5, 1e-5) {
		t.Errorf("sigmoid(0) = %v, want 0.5", sig[0])
	}

	tanh := x.Tanh().Data()
	if !floatEqual(tanh[0], 0, 1e-5) {
		t.Errorf("tanh(0) = %v, want 0", tanh[0])
	}
}
