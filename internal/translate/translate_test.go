package translate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d2l-ai/d2l-go/internal/autodiff"
	"github.com/d2l-ai/d2l-go/internal/backend/cpu"
	"github.com/d2l-ai/d2l-go/internal/data"
	"github.com/d2l-ai/d2l-go/internal/nn"
	"github.com/d2l-ai/d2l-go/internal/optim"
	"github.com/d2l-ai/d2l-go/internal/tensor"
	"github.com/d2l-ai/d2l-go/internal/text"
	"github.com/d2l-ai/d2l-go/internal/train"
	"github.com/d2l-ai/d2l-go/internal/translate"
)

const tinyCorpus = "go .\tva !\n" +
	"hi .\tsalut !\n" +
	"run !\tcours !\n" +
	"wait !\tattends !\n" +
	"i see .\tje comprends .\n" +
	"i know .\tje sais .\n" +
	"i lost .\tj'ai perdu .\n" +
	"i paid .\tj'ai payé .\n"

func newVocabs() (*text.Vocab, *text.Vocab) {
	corpus := data.NewTranslationCorpus(tinyCorpus, 0, 1)
	return corpus.SrcVocab, corpus.TgtVocab
}

// BLEU

func TestBLEUPerfectMatch(t *testing.T) {
	assert.InDelta(t, 1.0, translate.BLEU("a b c d", "a b c d", 2), 1e-9)
}

func TestBLEUEmptyPrediction(t *testing.T) {
	assert.Zero(t, translate.BLEU("", "a b c", 2))
}

func TestBLEUKnownValue(t *testing.T) {
	// lenPred=5, lenRef=7: BP = exp(1 - 7/5)
	// p1 = 4/5, p2 = 3/4
	want := math.Exp(-0.4) * math.Pow(0.8, 0.5) * math.Pow(0.75, 0.25)
	got := translate.BLEU("a b b c d", "a b c d e f g", 2)
	assert.InDelta(t, want, got, 1e-9)
}

func TestBLEUZeroPrecision(t *testing.T) {
	assert.Zero(t, translate.BLEU("x y z", "a b c", 2))
}

func TestBLEUClippedCounts(t *testing.T) {
	// "the" appears twice in the prediction but once in the reference,
	// so only one occurrence counts.
	got := translate.BLEU("the the", "the cat", 1)
	bp := math.Exp(1 - 2.0/2.0)
	assert.InDelta(t, bp*math.Pow(0.5, 0.5), got, 1e-9)
}

// Greedy decoding with a scripted decoder

// scriptedDecoder ignores the encoder and emits a fixed token sequence.
type scriptedDecoder struct {
	script  []int32
	vocab   int
	step    int
	backend *cpu.Backend
}

func (d *scriptedDecoder) InitState(enc translate.EncoderState[*cpu.Backend]) *translate.DecoderState[*cpu.Backend] {
	d.step = 0
	return &translate.DecoderState[*cpu.Backend]{Enc: enc}
}

func (d *scriptedDecoder) Step(tokens *tensor.Tensor[int32, *cpu.Backend], state *translate.DecoderState[*cpu.Backend]) (*tensor.Tensor[float32, *cpu.Backend], *translate.DecoderState[*cpu.Backend]) {
	logits := tensor.Zeros[float32](tensor.Shape{1, d.vocab}, d.backend)
	next := d.script[len(d.script)-1]
	if d.step < len(d.script) {
		next = d.script[d.step]
	}
	logits.Set(10, 0, int(next))
	d.step++
	return logits, state
}

func (d *scriptedDecoder) SetTraining(bool) {}

func (d *scriptedDecoder) Parameters() []*nn.Parameter[*cpu.Backend] { return nil }

func TestPredictGreedyStopsAtEOS(t *testing.T) {
	backend := cpu.New()
	srcVocab, tgtVocab := newVocabs()

	encoder := translate.NewSeq2SeqEncoder(srcVocab.Len(), 8, 8, 1, backend)
	decoder := &scriptedDecoder{
		script: []int32{
			int32(tgtVocab.Idx("salut")),
			int32(tgtVocab.Idx("!")),
			int32(tgtVocab.Idx(text.EosToken)),
			int32(tgtVocab.Idx("salut")), // never reached
		},
		vocab:   tgtVocab.Len(),
		backend: backend,
	}

	got := translate.PredictGreedy(encoder, decoder, "hi .", srcVocab, tgtVocab, 10, backend)
	assert.Equal(t, "salut !", got)
	assert.Equal(t, 3, decoder.step, "decoding should stop right after <eos>")
}

func TestPredictGreedyStopsAtNumSteps(t *testing.T) {
	backend := cpu.New()
	srcVocab, tgtVocab := newVocabs()

	encoder := translate.NewSeq2SeqEncoder(srcVocab.Len(), 8, 8, 1, backend)
	decoder := &scriptedDecoder{
		script:  []int32{int32(tgtVocab.Idx("va"))}, // repeats forever
		vocab:   tgtVocab.Len(),
		backend: backend,
	}

	got := translate.PredictGreedy(encoder, decoder, "go .", srcVocab, tgtVocab, 4, backend)
	assert.Equal(t, "va va va va", got)
	assert.Equal(t, 4, decoder.step)
}

func TestPredictGreedyEmptySource(t *testing.T) {
	backend := cpu.New()
	srcVocab, tgtVocab := newVocabs()

	encoder := translate.NewSeq2SeqEncoder(srcVocab.Len(), 8, 8, 1, backend)
	decoder := translate.NewSeq2SeqDecoder(tgtVocab.Len(), 8, 8, 1, backend)

	assert.NotPanics(t, func() {
		translate.PredictGreedy(encoder, decoder, "", srcVocab, tgtVocab, 5, backend)
	})
}

// Encoder and decoder shapes

func TestSeq2SeqEncoderShapes(t *testing.T) {
	backend := cpu.New()
	srcVocab, _ := newVocabs()
	encoder := translate.NewSeq2SeqEncoder(srcVocab.Len(), 8, 16, 2, backend)

	src := tensor.Zeros[int32](tensor.Shape{3, 5}, backend)
	enc := encoder.Encode(src, []int{2, 3, 5})

	require.Len(t, enc.Outputs, 5)
	for _, out := range enc.Outputs {
		require.True(t, out.Shape().Equal(tensor.Shape{3, 16}))
	}
	require.Len(t, enc.Hidden, 2)
	assert.Equal(t, []int{2, 3, 5}, enc.ValidLens)
}

func TestSeq2SeqDecoderStepShapes(t *testing.T) {
	backend := cpu.New()
	srcVocab, tgtVocab := newVocabs()
	encoder := translate.NewSeq2SeqEncoder(srcVocab.Len(), 8, 16, 2, backend)
	decoder := translate.NewSeq2SeqDecoder(tgtVocab.Len(), 8, 16, 2, backend)

	src := tensor.Zeros[int32](tensor.Shape{3, 5}, backend)
	state := decoder.InitState(encoder.Encode(src, []int{5, 5, 5}))

	tokens := tensor.Zeros[int32](tensor.Shape{3}, backend)
	logits, next := decoder.Step(tokens, state)

	require.True(t, logits.Shape().Equal(tensor.Shape{3, tgtVocab.Len()}))
	require.Len(t, next.Hidden, 2)
}

func TestAttentionDecoderRecordsWeights(t *testing.T) {
	backend := cpu.New()
	srcVocab, tgtVocab := newVocabs()
	encoder := translate.NewSeq2SeqEncoder(srcVocab.Len(), 8, 16, 1, backend)
	decoder := translate.NewAttentionDecoder(tgtVocab.Len(), 8, 16, 1, 0, backend)
	decoder.SetTraining(false)

	src := tensor.Zeros[int32](tensor.Shape{2, 4}, backend)
	state := decoder.InitState(encoder.Encode(src, []int{4, 4}))

	tokens := tensor.Zeros[int32](tensor.Shape{2}, backend)
	for i := 0; i < 3; i++ {
		_, state = decoder.Step(tokens, state)
	}

	weights := decoder.AttentionWeights()
	require.Len(t, weights, 3, "one weight matrix per decode step")
	require.Len(t, weights[0], 2, "one row per batch example")
	require.Len(t, weights[0][0], 4, "one weight per source step")

	var sum float32
	for _, w := range weights[0][0] {
		sum += w
	}
	assert.InDelta(t, 1.0, float64(sum), 1e-4)

	// InitState resets the recording.
	decoder.InitState(encoder.Encode(src, []int{4, 4}))
	assert.Empty(t, decoder.AttentionWeights())
}

// Training loop

func TestTrainSmoke(t *testing.T) {
	backend := autodiff.New(cpu.New())
	corpus := data.NewTranslationCorpus(tinyCorpus, 0, 1)
	src, tgt, srcLens, tgtLens := data.BuildTranslationArrays(corpus, 6, backend)
	loader := data.NewLoader(src, tgt, srcLens, tgtLens, 4, 3, backend)

	encoder := translate.NewSeq2SeqEncoder(corpus.SrcVocab.Len(), 8, 16, 1, backend)
	decoder := translate.NewSeq2SeqDecoder(corpus.TgtVocab.Len(), 8, 16, 1, backend)
	params := append(encoder.Parameters(), decoder.Parameters()...)

	before := make([]float32, len(params[0].Tensor().Data()))
	copy(before, params[0].Tensor().Data())

	optimizer := optim.NewAdam(params, optim.AdamConfig{LR: 0.01})
	result := translate.Train(encoder, decoder, loader, corpus.TgtVocab, optimizer,
		translate.TrainConfig{Epochs: 2, GradClip: 1.0}, backend, nil)

	assert.Greater(t, result.Loss, 0.0)
	assert.False(t, math.IsNaN(result.Loss) || math.IsInf(result.Loss, 0))
	assert.NotEqual(t, before, params[0].Tensor().Data(), "training should update parameters")

	// The tape must be clean after training so inference does not grow it.
	assert.Zero(t, backend.Tape().NumOps())
}

func TestTrainEmitsEvents(t *testing.T) {
	backend := autodiff.New(cpu.New())
	corpus := data.NewTranslationCorpus(tinyCorpus, 0, 1)
	src, tgt, srcLens, tgtLens := data.BuildTranslationArrays(corpus, 6, backend)
	loader := data.NewLoader(src, tgt, srcLens, tgtLens, 4, 3, backend)

	encoder := translate.NewSeq2SeqEncoder(corpus.SrcVocab.Len(), 8, 16, 1, backend)
	decoder := translate.NewSeq2SeqDecoder(corpus.TgtVocab.Len(), 8, 16, 1, backend)
	params := append(encoder.Parameters(), decoder.Parameters()...)
	optimizer := optim.NewSGD(params, optim.SGDConfig{LR: 0.1})

	events := make(chan train.Event, 16)
	translate.Train(encoder, decoder, loader, corpus.TgtVocab, optimizer,
		translate.TrainConfig{Epochs: 3, GradClip: 1.0}, backend, events)
	close(events)

	series := map[string]int{}
	for ev := range events {
		series[ev.Series]++
		assert.False(t, math.IsNaN(ev.Y))
	}
	assert.Equal(t, 3, series["loss"])
	assert.Equal(t, 3, series["tok/sec"])
}

func TestTrainRejectsEmptyLoader(t *testing.T) {
	backend := autodiff.New(cpu.New())
	corpus := data.NewTranslationCorpus(tinyCorpus, 0, 1)
	src, tgt, srcLens, tgtLens := data.BuildTranslationArrays(corpus, 6, backend)

	// A batch size larger than the corpus leaves no full batch.
	loader := data.NewLoader(src, tgt, srcLens, tgtLens, 100, 3, backend)
	require.Zero(t, loader.NumBatches())

	encoder := translate.NewSeq2SeqEncoder(corpus.SrcVocab.Len(), 8, 16, 1, backend)
	decoder := translate.NewSeq2SeqDecoder(corpus.TgtVocab.Len(), 8, 16, 1, backend)
	optimizer := optim.NewSGD(encoder.Parameters(), optim.SGDConfig{})

	assert.Panics(t, func() {
		translate.Train(encoder, decoder, loader, corpus.TgtVocab, optimizer,
			translate.TrainConfig{Epochs: 1}, backend, nil)
	})
}

func TestTrainRejectsZeroEpochs(t *testing.T) {
	backend := autodiff.New(cpu.New())
	corpus := data.NewTranslationCorpus(tinyCorpus, 0, 1)
	src, tgt, srcLens, tgtLens := data.BuildTranslationArrays(corpus, 6, backend)
	loader := data.NewLoader(src, tgt, srcLens, tgtLens, 4, 3, backend)

	encoder := translate.NewSeq2SeqEncoder(corpus.SrcVocab.Len(), 8, 16, 1, backend)
	decoder := translate.NewSeq2SeqDecoder(corpus.TgtVocab.Len(), 8, 16, 1, backend)
	optimizer := optim.NewSGD(encoder.Parameters(), optim.SGDConfig{})

	assert.Panics(t, func() {
		translate.Train(encoder, decoder, loader, corpus.TgtVocab, optimizer,
			translate.TrainConfig{Epochs: 0}, backend, nil)
	})
}
