// Copyright 2026 Graft ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers and training surface of the Graft
// framework.
//
// # Overview
//
// This package contains:
//   - Layers: Dense, Activation, Flatten, Conv2D
//   - Loss functions: MSE, MAE and their gradients
//   - Initialization: GlorotUniform
//   - Model: sequential container with online/batch training
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/graft-ml/graft/activations"
//	    "github.com/graft-ml/graft/nn"
//	    "github.com/graft-ml/graft/tensor"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewSource(42))
//
//	    model := nn.NewModel(nn.Config{Method: nn.Online}).
//	        Add(nn.NewDense(2, 3, rng)).
//	        Add(nn.NewActivation(activations.Tanh, activations.TanhGrad)).
//	        Add(nn.NewDense(3, 1, rng)).
//	        Use(nn.MSE, nn.MSEGrad)
//
//	    x, _ := tensor.FromSlice([]float64{0, 0, 0, 1, 1, 0, 1, 1}, tensor.Shape{4, 2})
//	    y, _ := tensor.FromSlice([]float64{0, 1, 1, 0}, tensor.Shape{4, 1})
//
//	    model.Fit(x, y, 1000, 0.1)
//	}
//
// # Layer contract
//
// Every layer implements Forward and Backward. Forward caches the input it
// saw; Backward must only be called after a matching Forward on the same
// instance and returns the gradient for the preceding layer while updating
// any learnable parameters by plain gradient descent. Layer instances are
// not safe for concurrent use.
package nn
