// Copyright 2026 Graft ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package activations re-exports the built-in elementwise nonlinearities
// for use with the nn.Activation layer.
//
// Each activation comes as a pair: the function itself and its derivative
// with respect to the pre-activation input.
package activations

import "github.com/graft-ml/graft/internal/activations"

// Built-in activation function pairs.
var (
	Sigmoid      = activations.Sigmoid
	SigmoidGrad  = activations.SigmoidGrad
	Tanh         = activations.Tanh
	TanhGrad     = activations.TanhGrad
	ReLU         = activations.ReLU
	ReLUGrad     = activations.ReLUGrad
	Identity     = activations.Identity
	IdentityGrad = activations.IdentityGrad
)
