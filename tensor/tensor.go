// Copyright 2026 Graft ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor operations in the Graft
// framework.
//
// Tensors are dense row-major float64 arrays of arbitrary rank with the
// operations the layer stack consumes: elementwise arithmetic with
// broadcasting, matrix multiplication, axis reduction, reshaping, spatial
// zero-padding and row slicing.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3})
//	y := tensor.Full(tensor.Shape{2, 3}, 1.0)
//	z := x.Add(y) // Element-wise addition
package tensor

import (
	"math/rand"

	"github.com/graft-ml/graft/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a dense row-major float64 tensor.
type Tensor = tensor.Tensor

// Creation functions

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Tensor, error) {
	return tensor.New(shape)
}

// Zeros creates a tensor filled with zeros. Panics on an invalid shape.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3})
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	x := tensor.Full(tensor.Shape{2, 3}, 3.14)
func Full(shape Shape, value float64) *Tensor {
	return tensor.Full(shape, value)
}

// FromSlice creates a tensor from a Go slice. The data is copied.
//
// Example:
//
//	data := []float64{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3})
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Uniform creates a tensor with values drawn from scale*U[0,1) using the
// supplied generator.
func Uniform(shape Shape, scale float64, rng *rand.Rand) *Tensor {
	return tensor.Uniform(shape, scale, rng)
}

// Utility functions

// BroadcastShapes resolves the common shape of two operands under
// right-to-left broadcasting, or returns an error when the shapes are
// incompatible.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return tensor.BroadcastShapes(a, b)
}
