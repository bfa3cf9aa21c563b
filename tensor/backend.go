// Copyright 2025 The d2l-go Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/d2l-ai/d2l-go/internal/tensor"
)

// Backend defines the interface for tensor computation backends.
//
// Implementations operate on RawTensors; the generic Tensor[T, B] layer
// adds type safety on top. The autodiff decorator wraps any Backend and
// records operations for the backward pass.
type Backend = tensor.Backend
