// Copyright 2026 Graft ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/graft-ml/graft/internal/net"
	"github.com/graft-ml/graft/internal/nn"
	"github.com/graft-ml/graft/internal/tensor"
)

// Layer is the forward/backward contract for all network layers.
type Layer = nn.Layer

// Layers

// Dense represents a fully connected layer.
type Dense = nn.Dense

// NewDense creates a fully connected layer.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	layer := nn.NewDense(784, 128, rng)
func NewDense(inSize, outSize int, rng *rand.Rand) *Dense {
	return nn.NewDense(inSize, outSize, rng)
}

// Activation wraps an elementwise function pair as a parameterless layer.
type Activation = nn.Activation

// NewActivation creates an activation layer from an elementwise function
// and its derivative.
//
// Example:
//
//	act := nn.NewActivation(activations.Sigmoid, activations.SigmoidGrad)
func NewActivation(fn, deriv func(float64) float64) *Activation {
	return nn.NewActivation(fn, deriv)
}

// Flatten reshapes a multi-dimensional batch to 2D and back.
type Flatten = nn.Flatten

// NewFlatten creates a flatten layer.
func NewFlatten() *Flatten {
	return nn.NewFlatten()
}

// Conv2D represents a 2D convolution layer over channels-last data.
type Conv2D = nn.Conv2D

// Padding selects the spatial padding mode of a convolution.
type Padding = nn.Padding

// Supported padding modes.
const (
	PaddingValid = nn.PaddingValid
	PaddingSame  = nn.PaddingSame
)

// NewConv2D creates a convolution layer.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	conv := nn.NewConv2D(8, 3, 3, nn.PaddingSame, 1, rng) // 8 filters, 3x3 kernel, stride 1
func NewConv2D(filters, kernelH, kernelW int, padding Padding, stride int, rng *rand.Rand) *Conv2D {
	return nn.NewConv2D(filters, kernelH, kernelW, padding, stride, rng)
}

// Initialization

// GlorotUniform initializes convolution parameters for a 4D filter shape,
// returning Glorot-uniform weights and a zero bias.
func GlorotUniform(shape tensor.Shape, rng *rand.Rand) (*tensor.Tensor, *tensor.Tensor) {
	return nn.GlorotUniform(shape, rng)
}

// Loss functions

// Loss computes a scalar loss from true and predicted values.
type Loss = nn.Loss

// LossGrad computes the gradient of a loss with respect to the predictions.
type LossGrad = nn.LossGrad

// Loss function pairs.
var (
	MSE     Loss     = nn.MSE
	MSEGrad LossGrad = nn.MSEGrad
	MAE     Loss     = nn.MAE
	MAEGrad LossGrad = nn.MAEGrad
)

// Model

// Model is an ordered sequence of layers plus a loss function pair.
type Model = net.Model

// Config holds model construction options.
type Config = net.Config

// TrainingMethod selects how Fit walks the training set.
type TrainingMethod = net.TrainingMethod

// Supported training methods.
const (
	Online = net.Online
	Batch  = net.Batch
)

// NewModel creates an empty model.
//
// Example:
//
//	model := nn.NewModel(nn.Config{Method: nn.Online}).
//	    Add(nn.NewDense(2, 1, rng)).
//	    Use(nn.MSE, nn.MSEGrad)
//	model.Fit(x, y, 100, 0.1)
func NewModel(cfg Config) *Model {
	return net.NewModel(cfg)
}
