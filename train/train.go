// Copyright 2025 The d2l-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides training-time utilities: metric accumulation,
// timing and a channel-fed progress recorder.
package train

import (
	"io"

	"github.com/d2l-ai/d2l-go/internal/tensor"
	"github.com/d2l-ai/d2l-go/internal/train"
)

// Accumulator keeps running sums over a fixed number of scalar slots.
type Accumulator = train.Accumulator

// NewAccumulator creates an accumulator with n slots, all zero.
//
// Example:
//
//	metric := train.NewAccumulator(2)
//	metric.Add(lossSum, float64(numTokens))
//	avg := metric.Get(0) / metric.Get(1)
func NewAccumulator(n int) *Accumulator {
	return train.NewAccumulator(n)
}

// Timer measures elapsed wall-clock time across start/stop cycles.
type Timer = train.Timer

// NewTimer creates a timer and starts its first measurement.
func NewTimer() *Timer {
	return train.NewTimer()
}

// Accuracy returns the number of rows of yHat whose argmax equals the
// label in y.
func Accuracy[B tensor.Backend](yHat *tensor.Tensor[float32, B], y *tensor.Tensor[int32, B]) float64 {
	return train.Accuracy(yHat, y)
}

// Event is a single metric observation emitted by a training loop.
type Event = train.Event

// Point is one plotted point of a recorder series.
type Point = train.Point

// Recorder accumulates metric events per named series, compacts them
// and renders a sparkline progress board.
type Recorder = train.Recorder

// NewRecorder creates a Recorder writing rendered boards to w,
// averaging every compactEvery raw events into one plotted point.
func NewRecorder(compactEvery int, w io.Writer) *Recorder {
	return train.NewRecorder(compactEvery, w)
}
