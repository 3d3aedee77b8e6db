package nn

import (
	"fmt"

	"github.com/graft-ml/graft/internal/tensor"
)

// Flatten reshapes a multi-dimensional batch to 2D and back.
//
// Forward turns (batch, d1, d2, ...) into (batch, d1*d2*...); Backward
// restores the cached original shape. No numeric change in either direction.
type Flatten struct {
	inputShape tensor.Shape
}

// NewFlatten creates a flatten layer.
func NewFlatten() *Flatten {
	return &Flatten{}
}

// Forward caches the input shape and returns the (batch, rest) view.
func (f *Flatten) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	if len(shape) < 2 {
		panic(fmt.Sprintf("Flatten.Forward: expected at least 2D input, got shape %v", shape))
	}
	f.inputShape = shape.Clone()
	return input.Reshape(shape[0], shape.NumElements()/shape[0])
}

// Backward reshapes the gradient back to the cached pre-flatten shape.
func (f *Flatten) Backward(outputGrad *tensor.Tensor, _ float64) *tensor.Tensor {
	return outputGrad.Reshape(f.inputShape...)
}
