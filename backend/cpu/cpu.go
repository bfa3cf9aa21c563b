// Copyright 2025 The d2l-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend.
package cpu

import (
	internalcpu "github.com/d2l-ai/d2l-go/internal/backend/cpu"
	"github.com/d2l-ai/d2l-go/tensor"
)

// Backend is the CPU backend implementation. Matrix multiplication is
// delegated to gonum BLAS; everything else is plain Go.
type Backend = internalcpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func New() *Backend {
	return internalcpu.New()
}
