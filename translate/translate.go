// Copyright 2025 The d2l-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package translate provides sequence-to-sequence machine translation:
// GRU encoder-decoder models with optional additive attention, a
// teacher-forcing training loop, greedy decoding and BLEU scoring.
package translate

import (
	"github.com/d2l-ai/d2l-go/internal/autodiff"
	"github.com/d2l-ai/d2l-go/internal/data"
	"github.com/d2l-ai/d2l-go/internal/optim"
	"github.com/d2l-ai/d2l-go/internal/tensor"
	"github.com/d2l-ai/d2l-go/internal/text"
	"github.com/d2l-ai/d2l-go/internal/train"
	"github.com/d2l-ai/d2l-go/internal/translate"
)

// EncoderState is everything a decoder consumes from an encoder.
type EncoderState[B tensor.Backend] = translate.EncoderState[B]

// DecoderState carries the decoder's recurrent state between steps.
type DecoderState[B tensor.Backend] = translate.DecoderState[B]

// Encoder maps a padded source batch to an EncoderState.
type Encoder[B tensor.Backend] = translate.Encoder[B]

// Decoder generates target logits one timestep at a time.
type Decoder[B tensor.Backend] = translate.Decoder[B]

// Seq2SeqEncoder embeds source tokens and runs them through a stacked GRU.
type Seq2SeqEncoder[B tensor.Backend] = translate.Seq2SeqEncoder[B]

// NewSeq2SeqEncoder creates an encoder over a source vocabulary.
func NewSeq2SeqEncoder[B tensor.Backend](vocabSize, embedSize, numHiddens, numLayers int, backend B) *Seq2SeqEncoder[B] {
	return translate.NewSeq2SeqEncoder(vocabSize, embedSize, numHiddens, numLayers, backend)
}

// Seq2SeqDecoder conditions generation on a fixed context vector.
type Seq2SeqDecoder[B tensor.Backend] = translate.Seq2SeqDecoder[B]

// NewSeq2SeqDecoder creates a decoder over a target vocabulary.
func NewSeq2SeqDecoder[B tensor.Backend](vocabSize, embedSize, numHiddens, numLayers int, backend B) *Seq2SeqDecoder[B] {
	return translate.NewSeq2SeqDecoder(vocabSize, embedSize, numHiddens, numLayers, backend)
}

// AttentionDecoder recomputes its context every step with additive
// attention over the encoder outputs.
type AttentionDecoder[B tensor.Backend] = translate.AttentionDecoder[B]

// NewAttentionDecoder creates an attention decoder over a target
// vocabulary.
func NewAttentionDecoder[B tensor.Backend](vocabSize, embedSize, numHiddens, numLayers int, dropout float32, backend B) *AttentionDecoder[B] {
	return translate.NewAttentionDecoder(vocabSize, embedSize, numHiddens, numLayers, dropout, backend)
}

// TrainConfig holds the training hyperparameters.
type TrainConfig = translate.TrainConfig

// TrainResult summarizes the final epoch.
type TrainResult = translate.TrainResult

// Train fits an encoder-decoder pair with teacher forcing, masked
// cross-entropy loss and gradient clipping. Per-epoch metrics are
// published on events if non-nil.
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
	return translate.Train(encoder, decoder, loader, tgtVocab, optimizer, cfg, backend, events)
}

// PredictGreedy translates a single sentence by greedy decoding,
// stopping at the end-of-sequence token or after numSteps steps.
func PredictGreedy[B tensor.Backend](
	encoder Encoder[B],
	decoder Decoder[B],
	sentence string,
	srcVocab, tgtVocab *text.Vocab,
	numSteps int,
	backend B,
) string {
	return translate.PredictGreedy(encoder, decoder, sentence, srcVocab, tgtVocab, numSteps, backend)
}

// BLEU scores a predicted translation against a reference with n-gram
// precisions up to maxN and a brevity penalty.
func BLEU(pred, reference string, maxN int) float64 {
	return translate.BLEU(pred, reference, maxN)
}
