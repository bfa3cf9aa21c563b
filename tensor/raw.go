// Copyright 2025 The d2l-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// RawTensor is the low-level tensor representation shared by backends
// and the autodiff tape. Most users should work with Tensor[T, B].
type RawTensor = tensor.RawTensor

// NewRaw creates a new raw tensor with the given shape and dtype.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// MustNewRaw is like NewRaw but panics on error.
func MustNewRaw(shape Shape, dtype DataType) *RawTensor {
	return tensor.MustNewRaw(shape, dtype)
}
