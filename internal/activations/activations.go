// Package activations provides elementwise nonlinearities and their
// derivatives for use with the nn.Activation layer.
//
// Each function comes as a pair: the activation itself and its derivative
// with respect to the pre-activation input. The pairs are plain func values
// so custom activations plug in the same way.
package activations

import "math"

// Sigmoid computes 1 / (1 + exp(-x)).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// SigmoidGrad computes sigmoid(x) * (1 - sigmoid(x)).
func SigmoidGrad(x float64) float64 {
	s := Sigmoid(x)
	return s * (1 - s)
}

// Tanh computes the hyperbolic tangent.
func Tanh(x float64) float64 {
	return math.Tanh(x)
}

// TanhGrad computes 1 - tanh(x)².
func TanhGrad(x float64) float64 {
	t := math.Tanh(x)
	return 1 - t*t
}

// ReLU computes max(0, x).
func ReLU(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// ReLUGrad returns 1 for x > 0, else 0.
func ReLUGrad(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// Identity returns x unchanged.
func Identity(x float64) float64 {
	return x
}

// IdentityGrad returns 1 for every x.
func IdentityGrad(_ float64) float64 {
	return 1
}
