package nn

import (
	"fmt"
	"math/rand"

	"github.com/graft-ml/graft/internal/tensor"
)

// Dense implements a fully connected layer.
//
// Performs the transformation: Y = X @ W + b
// where:
//   - X is the input with shape [batch, in_size]
//   - W is the weight matrix with shape [in_size, out_size]
//   - b is the bias row vector with shape [1, out_size]
//   - Y is the output with shape [batch, out_size]
//
// Weights and biases are initialized to 0.1 * U[0, 1); both shapes are fixed
// at construction and mutated in place by every Backward call.
type Dense struct {
	inSize  int
	outSize int
	weights *tensor.Tensor // [in_size, out_size]
	bias    *tensor.Tensor // [1, out_size]

	input *tensor.Tensor // cached by Forward for the paired Backward
}

// NewDense creates a fully connected layer.
//
// The generator is threaded explicitly so initialization is reproducible.
func NewDense(inSize, outSize int, rng *rand.Rand) *Dense {
	if inSize <= 0 || outSize <= 0 {
		panic(fmt.Sprintf("nn.NewDense: sizes must be positive, got (%d, %d)", inSize, outSize))
	}
	return &Dense{
		inSize:  inSize,
		outSize: outSize,
		weights: tensor.Uniform(tensor.Shape{inSize, outSize}, 0.1, rng),
		bias:    tensor.Uniform(tensor.Shape{1, outSize}, 0.1, rng),
	}
}

// Forward computes Y = X @ W + b with the bias broadcast over the batch rows.
//
// Input shape: [batch, in_size]. Output shape: [batch, out_size].
func (d *Dense) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("Dense.Forward: expected 2D input [batch, features], got shape %v", shape))
	}
	if shape[1] != d.inSize {
		panic(fmt.Sprintf("Dense.Forward: expected input with %d features, got %d", d.inSize, shape[1]))
	}

	d.input = input
	return input.MatMul(d.weights).Add(d.bias)
}

// Backward computes the input gradient and applies the gradient-descent
// update to the weights and bias.
//
// With m = batch rows:
//
//	inputGrad = dY @ Wᵀ
//	dW = Xᵀ @ dY / m
//	dB = columnSum(dY) / m
//
// Averaging over the batch is deliberate: without the division by m the
// effective learning rate would scale with batch size.
func (d *Dense) Backward(outputGrad *tensor.Tensor, learningRate float64) *tensor.Tensor {
	m := float64(outputGrad.Shape()[0])

	inputGrad := outputGrad.MatMul(d.weights.Transpose())
	dW := d.input.Transpose().MatMul(outputGrad).Scale(1 / m)
	dB := outputGrad.SumAxis(0, true).Scale(1 / m).Reshape(1, d.outSize)

	d.weights.AddScaled(-learningRate, dW)
	d.bias.AddScaled(-learningRate, dB)
	return inputGrad
}

// Weights returns the weight matrix.
func (d *Dense) Weights() *tensor.Tensor {
	return d.weights
}

// Bias returns the bias row vector.
func (d *Dense) Bias() *tensor.Tensor {
	return d.bias
}

// InSize returns the number of input features.
func (d *Dense) InSize() int {
	return d.inSize
}

// OutSize returns the number of output features.
func (d *Dense) OutSize() int {
	return d.outSize
}
