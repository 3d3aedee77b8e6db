package nn

import (
	"github.com/graft-ml/graft/internal/tensor"
)

// Activation wraps a pair of elementwise functions as a parameterless layer.
//
// The function and its derivative are supplied by the caller (the
// activations package provides the usual ones). Forward caches the
// pre-activation input; Backward applies the chain rule through it.
type Activation struct {
	fn    func(float64) float64
	deriv func(float64) float64

	input *tensor.Tensor
}

// NewActivation creates an activation layer from an elementwise function and
// its derivative.
func NewActivation(fn, deriv func(float64) float64) *Activation {
	return &Activation{fn: fn, deriv: deriv}
}

// Forward applies the activation elementwise.
func (a *Activation) Forward(input *tensor.Tensor) *tensor.Tensor {
	a.input = input
	return input.Apply(a.fn)
}

// Backward returns deriv(cached input) ⊙ outputGrad. The learning rate is
// accepted to satisfy the Layer contract; there are no learnable parameters.
func (a *Activation) Backward(outputGrad *tensor.Tensor, _ float64) *tensor.Tensor {
	return a.input.Apply(a.deriv).Mul(outputGrad)
}
