package translate

import (
	"fmt"

	"github.com/d2l-ai/d2l-go/internal/autodiff"
	"github.com/d2l-ai/d2l-go/internal/data"
	"github.com/d2l-ai/d2l-go/internal/optim"
	"github.com/d2l-ai/d2l-go/internal/tensor"
	"github.com/d2l-ai/d2l-go/internal/text"
	"github.com/d2l-ai/d2l-go/internal/train"
)

// TrainConfig holds the training hyperparameters. All fields are
// explicit; zero values are rejected where they make no sense.
type TrainConfig struct {
	Epochs   int
	GradClip float32 // max global gradient norm, 0 disables clipping
}

// TrainResult summarizes the final epoch.
type TrainResult struct {
	Loss         float64 // mean masked cross-entropy per target token
	TokensPerSec float64
}

// Train fits an encoder-decoder pair with teacher forcing: at every
// timestep the decoder consumes the ground-truth previous token rather
// than its own prediction. The loss is masked cross-entropy averaged
// over non-padding target tokens, gradients are clipped to
// cfg.GradClip before each optimizer step.
//
// Per-epoch loss and throughput are published on events if non-nil; the
// channel is not closed.
func Train[B tensor.Backend](
	encoder Encoder[*autodiff.Backend[B]],
	decoder Decoder[*autodiff.Backend[B]],
	loader *data.Loader[*autodiff.Backend[B]],
	tgtVocab *text.Vocab,
	optimizer optim.Optimizer,
	cfg TrainConfig,
	backend *autodiff.Backend[B],
	events chan<- train.Event,
) TrainResult {
	if cfg.Epochs <= 0 {
		panic(fmt.Sprintf("Train: epochs must be positive, got %d", cfg.Epochs))
	}
	if loader.NumBatches() == 0 {
		panic(fmt.Sprintf("Train: loader yields no batches (%d examples), reduce the batch size",
			loader.NumExamples()))
	}

	params := append(encoder.Parameters(), decoder.Parameters()...)
	decoder.SetTraining(true)
	defer decoder.SetTraining(false)

	var result TrainResult
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		loader.Shuffle()
		metric := train.NewAccumulator(2) // loss sum, token count
		timer := train.NewTimer()

		for i := 0; i < loader.NumBatches(); i++ {
			batch := loader.Batch(i)

			backend.Tape().Clear()
			backend.Tape().StartRecording()
			loss, numTokens := forwardBatch(encoder, decoder, batch, tgtVocab, backend)
			if numTokens == 0 {
				backend.Tape().StopRecording()
				backend.Tape().Clear()
				continue
			}
			lossSum := float64(loss.Raw().AsFloat32()[0])

			grads := backend.Backward(loss.Raw(), 1/float32(numTokens))
			backend.Tape().StopRecording()
			if cfg.GradClip > 0 {
				optim.ClipGradNorm(params, grads, cfg.GradClip)
			}
			optimizer.Step(grads)

			metric.Add(lossSum, float64(numTokens))
		}

		elapsed := timer.Stop()
		if metric.Get(1) == 0 {
			// Every target in the epoch was all padding.
			continue
		}
		result.Loss = metric.Get(0) / metric.Get(1)
		result.TokensPerSec = metric.Get(1) / elapsed
		if events != nil {
			events <- train.Event{Series: "loss", X: float64(epoch + 1), Y: result.Loss}
			events <- train.Event{Series: "tok/sec", X: float64(epoch + 1), Y: result.TokensPerSec}
		}
	}
	return result
}

// forwardBatch runs one teacher-forced pass over a batch and returns
// the summed masked cross-entropy with the count of non-padding target
// tokens it covers.
func forwardBatch[B tensor.Backend](
	encoder Encoder[*autodiff.Backend[B]],
	decoder Decoder[*autodiff.Backend[B]],
	batch data.Batch[*autodiff.Backend[B]],
	tgtVocab *text.Vocab,
	backend *autodiff.Backend[B],
) (*tensor.Tensor[float32, *autodiff.Backend[B]], int) {
	batchSize, numSteps := batch.Tgt.Shape()[0], batch.Tgt.Shape()[1]

	enc := encoder.Encode(batch.Src, batch.SrcValidLen)
	state := decoder.InitState(enc)

	bos := make([]int32, batchSize)
	for b := range bos {
		bos[b] = int32(tgtVocab.Idx(text.BosToken))
	}
	input := tensor.MustFromSlice(bos, tensor.Shape{batchSize}, backend)

	var loss *tensor.Tensor[float32, *autodiff.Backend[B]]
	numTokens := 0
	for t := 0; t < numSteps; t++ {
		logits, next := decoder.Step(input, state)
		state = next

		weights := make([]float32, batchSize)
		for b, vl := range batch.TgtValidLen {
			if t < vl {
				weights[b] = 1
				numTokens++
			}
		}
		targets := column(batch.Tgt, t)
		w := tensor.MustFromSlice(weights, tensor.Shape{batchSize}, backend)

		raw := backend.MaskedCrossEntropy(logits.Raw(), targets.Raw(), w.Raw())
		stepLoss := tensor.New[float32](raw, backend)
		if loss == nil {
			loss = stepLoss
		} else {
			loss = loss.Add(stepLoss)
		}

		// Teacher forcing: the next input is the ground-truth token.
		input = targets
	}

	return loss, numTokens
}
