package data

import (
	"math/rand"

	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// Batch is one minibatch of a parallel corpus: padded source and target
// index tensors of shape [batchSize, numSteps] and their per-sequence
// valid lengths.
type Batch[B tensor.Backend] struct {
	Src         *tensor.Tensor[int32, B]
	SrcValidLen []int
	Tgt         *tensor.Tensor[int32, B]
	TgtValidLen []int
}

// Loader yields shuffled minibatches from padded corpus arrays. Each
// call to Shuffle reshuffles the example order; iteration is
// synchronous and drops the final short batch.
type Loader[B tensor.Backend] struct {
	src, tgt         *tensor.Tensor[int32, B]
	srcLens, tgtLens []int
	batchSize        int
	numSteps         int
	perm             []int
	rng              *rand.Rand
	backend          B
}

// NewLoader creates a batch loader over padded arrays. src and tgt must
// both be [numExamples, numSteps].
func NewLoader[B tensor.Backend](src, tgt *tensor.Tensor[int32, B], srcLens, tgtLens []int, batchSize int, seed int64, backend B) *Loader[B] {
	if src.Shape()[0] != tgt.Shape()[0] {
		panic("NewLoader: source and target example counts differ")
	}
	if batchSize <= 0 {
		panic("NewLoader: batch size must be positive")
	}
	l := &Loader[B]{
		src:       src,
		tgt:       tgt,
		srcLens:   srcLens,
		tgtLens:   tgtLens,
		batchSize: batchSize,
		numSteps:  src.Shape()[1],
		rng:       rand.New(rand.NewSource(seed)),
		backend:   backend,
	}
	l.Shuffle()
	return l
}

// NumExamples returns the total example count.
func (l *Loader[B]) NumExamples() int {
	return l.src.Shape()[0]
}

// NumBatches returns the number of full batches per epoch.
func (l *Loader[B]) NumBatches() int {
	return l.NumExamples() / l.batchSize
}

// Shuffle reshuffles the example order for the next epoch.
func (l *Loader[B]) Shuffle() {
	n := l.NumExamples()
	l.perm = l.rng.Perm(n)
}

// Batch gathers the i-th shuffled minibatch.
func (l *Loader[B]) Batch(i int) Batch[B] {
	if i < 0 || i >= l.NumBatches() {
		panic("Loader.Batch: index out of range")
	}
	rows := l.perm[i*l.batchSize : (i+1)*l.batchSize]

	return Batch[B]{
		Src:         l.gather(l.src, rows),
		SrcValidLen: gatherInts(l.srcLens, rows),
		Tgt:         l.gather(l.tgt, rows),
		TgtValidLen: gatherInts(l.tgtLens, rows),
	}
}

func (l *Loader[B]) gather(arr *tensor.Tensor[int32, B], rows []int) *tensor.Tensor[int32, B] {
	src := arr.Data()
	out := make([]int32, 0, len(rows)*l.numSteps)
	for _, r := range rows {
		out = append(out, src[r*l.numSteps:(r+1)*l.numSteps]...)
	}
	return tensor.MustFromSlice(out, tensor.Shape{len(rows), l.numSteps}, l.backend)
}

func gatherInts(vals []int, rows []int) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = vals[r]
	}
	return out
}
