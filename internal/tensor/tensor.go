// Package tensor implements the CPU numeric substrate for the Graft framework.
//
// Tensors are dense row-major float64 arrays of arbitrary rank. The package
// provides exactly the operations the layer stack consumes: elementwise
// arithmetic with broadcasting, matrix multiplication, axis reduction,
// reshaping, spatial zero-padding and rectangular row slicing.
//
// All computation is synchronous and single-threaded. Shape violations are
// caller bugs and panic immediately; they are not recoverable errors.
package tensor

import (
	"fmt"
	"math/rand"
)

// Tensor is a dense row-major float64 tensor.
type Tensor struct {
	data   []float64
	shape  Shape
	stride []int
}

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Tensor{
		data:   make([]float64, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}, nil
}

// Zeros creates a zero-filled tensor. Panics on an invalid shape.
func Zeros(shape Shape) *Tensor {
	t, err := New(shape)
	if err != nil {
		panic(fmt.Sprintf("tensor.Zeros: %v", err))
	}
	return t
}

// Full creates a tensor filled with value. Panics on an invalid shape.
func Full(shape Shape, value float64) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// FromSlice creates a tensor from a Go slice. The data is copied.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v implies %d elements but data has length %d",
			shape, shape.NumElements(), len(data))
	}
	t := Zeros(shape)
	copy(t.data, data)
	return t, nil
}

// Uniform creates a tensor with values drawn from scale*U[0,1) using the
// supplied generator. The generator is threaded explicitly so runs are
// reproducible.
func Uniform(shape Shape, scale float64, rng *rand.Rand) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = scale * rng.Float64()
	}
	return t
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Strides returns the tensor's row-major memory strides.
func (t *Tensor) Strides() []int {
	return t.stride
}

// Data returns the underlying storage. Mutations are visible to every view
// of the same buffer.
func (t *Tensor) Data() []float64 {
	return t.data
}

// NumElements returns the total element count.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// At returns the element at the given multi-dimensional index.
func (t *Tensor) At(indices ...int) float64 {
	return t.data[t.offset(indices)]
}

// Set writes the element at the given multi-dimensional index.
func (t *Tensor) Set(value float64, indices ...int) {
	t.data[t.offset(indices)] = value
}

func (t *Tensor) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("tensor: index rank %d does not match tensor rank %d", len(indices), len(t.shape)))
	}
	off := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for dimension %d (size %d)", idx, i, t.shape[i]))
		}
		off += idx * t.stride[i]
	}
	return off
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	clone := Zeros(t.shape)
	copy(clone.data, t.data)
	return clone
}

// String returns a compact description for debugging.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(shape=%v)", t.shape)
}
