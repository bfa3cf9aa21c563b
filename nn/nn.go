// Copyright 2025 The d2l-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks: layers,
// recurrent cells, attention and parameter initialization.
package nn

import (
	"github.com/d2l-ai/d2l-go/internal/nn"
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// Module is the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(256, 10, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// Embedding represents a lookup table for embeddings.
type Embedding[B tensor.Backend] = nn.Embedding[B]

// NewEmbedding creates a new embedding layer.
//
// Example:
//
//	backend := cpu.New()
//	embed := nn.NewEmbedding(10000, 32, backend)
func NewEmbedding[B tensor.Backend](numEmbeddings, embedDim int, backend B) *Embedding[B] {
	return nn.NewEmbedding(numEmbeddings, embedDim, backend)
}

// Dropout randomly zeroes activations during training.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// NewDropout creates a dropout layer with the given drop probability.
func NewDropout[B tensor.Backend](p float32, backend B) *Dropout[B] {
	return nn.NewDropout(p, backend)
}

// Recurrent layers

// GRU is a multilayer gated recurrent unit driven one timestep at a time.
type GRU[B tensor.Backend] = nn.GRU[B]

// NewGRU creates a GRU with the given number of stacked layers.
//
// Example:
//
//	rnn := nn.NewGRU(32, 64, 2, backend)
//	state := rnn.BeginState(batchSize)
//	out, state := rnn.Step(x, state)
func NewGRU[B tensor.Backend](inputSize, hiddenSize, numLayers int, backend B) *GRU[B] {
	return nn.NewGRU(inputSize, hiddenSize, numLayers, backend)
}

// Attention

// AdditiveAttention scores a query against keys through a shared hidden
// projection, masking positions beyond each example's valid length.
type AdditiveAttention[B tensor.Backend] = nn.AdditiveAttention[B]

// NewAdditiveAttention creates additive attention with the given query
// and key sizes projected into numHiddens units.
func NewAdditiveAttention[B tensor.Backend](querySize, keySize, numHiddens int, dropout float32, backend B) *AdditiveAttention[B] {
	return nn.NewAdditiveAttention(querySize, keySize, numHiddens, dropout, backend)
}

// MaskBias builds a constant [batch, steps] tensor holding 0 at valid
// positions and a large negative value at padding positions.
func MaskBias[B tensor.Backend](validLens []int, steps int, backend B) *tensor.Tensor[float32, B] {
	return nn.MaskBias(validLens, steps, backend)
}

// Initialization functions

// Xavier initializes a tensor using Xavier/Glorot initialization.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// Zeros initializes a tensor with zeros (for biases).
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}

// Ones initializes a tensor with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Ones(shape, backend)
}

// Randn initializes a tensor with random values from N(0, 1).
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Randn(shape, backend)
}
