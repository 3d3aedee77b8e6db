// Package nn implements the layer stack of the Graft framework.
//
// This package provides the building blocks for feed-forward networks:
//   - Layer interface: the forward/backward contract all layers implement
//   - Dense: fully connected layer
//   - Activation: elementwise nonlinearity wrapper
//   - Flatten: multi-dimensional to 2D reshape
//   - Conv2D: 2D convolution (sliding-window cross-correlation)
//   - Loss functions: MSE, MAE and their gradients
//
// Layers carry per-call cached state: Forward stores the input it saw so the
// paired Backward call can compute gradients against it. A layer instance
// therefore serves one in-flight sample or batch at a time; it is not
// reentrant and not safe for concurrent use.
package nn

import (
	"github.com/graft-ml/graft/internal/tensor"
)

// Layer is the forward/backward contract for all network layers.
//
// Backward must only be called after a matching Forward on the same
// instance: Forward caches the input the gradient computation needs, and a
// second Forward overwrites it. Shape mismatches are caller bugs and panic.
type Layer interface {
	// Forward computes the layer output for the given input and caches the
	// input for the paired Backward call.
	Forward(input *tensor.Tensor) *tensor.Tensor

	// Backward computes the gradient of the loss with respect to this
	// layer's input, given the gradient with respect to its output, and
	// updates any learnable parameters in place by plain gradient descent
	// scaled by learningRate.
	Backward(outputGrad *tensor.Tensor, learningRate float64) *tensor.Tensor
}
