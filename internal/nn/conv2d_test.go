package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graft-ml/graft/internal/tensor"
)

func TestConv2D_Creation(t *testing.T) {
	conv := NewConv2D(4, 3, 3, PaddingValid, 1, newRNG())

	// Parameters are lazy: the input channel count is unknown until the
	// first Forward call.
	assert.Nil(t, conv.Weights())
	assert.Nil(t, conv.Bias())

	assert.Panics(t, func() { NewConv2D(0, 3, 3, PaddingValid, 1, newRNG()) })
	assert.Panics(t, func() { NewConv2D(4, 0, 3, PaddingValid, 1, newRNG()) })
	assert.Panics(t, func() { NewConv2D(4, 3, 3, PaddingValid, 0, newRNG()) })
	assert.Panics(t, func() { NewConv2D(4, 3, 3, Padding("full"), 1, newRNG()) })
}

func TestConv2D_OutputSizeValid(t *testing.T) {
	// 5×5 input, 3×3 kernel, stride 1, 'valid' → 3×3 output.
	conv := NewConv2D(2, 3, 3, PaddingValid, 1, newRNG())
	out := conv.Forward(tensor.Zeros(tensor.Shape{1, 5, 5, 1}))

	assert.True(t, out.Shape().Equal(tensor.Shape{1, 3, 3, 2}))
}

func TestConv2D_OutputSizeSame(t *testing.T) {
	// 5×5 input, 3×3 kernel, stride 1, 'same' → 5×5 output.
	conv := NewConv2D(2, 3, 3, PaddingSame, 1, newRNG())
	out := conv.Forward(tensor.Zeros(tensor.Shape{1, 5, 5, 1}))

	assert.True(t, out.Shape().Equal(tensor.Shape{1, 5, 5, 2}))
}

func TestConv2D_OutputSizeStride(t *testing.T) {
	// 7×7 input, 3×3 kernel, stride 2, 'valid' → floor((7-3)/2)+1 = 3.
	conv := NewConv2D(1, 3, 3, PaddingValid, 2, newRNG())
	out := conv.Forward(tensor.Zeros(tensor.Shape{1, 7, 7, 1}))

	assert.True(t, out.Shape().Equal(tensor.Shape{1, 3, 3, 1}))
}

func TestConv2D_KernelTooLargePanics(t *testing.T) {
	conv := NewConv2D(1, 5, 5, PaddingValid, 1, newRNG())
	assert.Panics(t, func() { conv.Forward(tensor.Zeros(tensor.Shape{1, 3, 3, 1})) })
}

// TestConv2D_ForwardWindowSums checks the forward pass against the window
// sums an all-ones kernel must produce.
func TestConv2D_ForwardWindowSums(t *testing.T) {
	conv := NewConv2D(1, 2, 2, PaddingValid, 1, newRNG())
	conv.SetParameters(
		tensor.Full(tensor.Shape{2, 2, 1, 1}, 1.0),
		tensor.Zeros(tensor.Shape{1, 1, 1, 1}),
	)

	data := make([]float64, 16)
	for i := range data {
		data[i] = float64(i + 1) // 1..16 row-major
	}
	x, err := tensor.FromSlice(data, tensor.Shape{1, 4, 4, 1})
	require.NoError(t, err)

	out := conv.Forward(x)
	require.True(t, out.Shape().Equal(tensor.Shape{1, 3, 3, 1}))

	for h := 0; h < 3; h++ {
		for w := 0; w < 3; w++ {
			want := x.At(0, h, w, 0) + x.At(0, h, w+1, 0) +
				x.At(0, h+1, w, 0) + x.At(0, h+1, w+1, 0)
			assert.InDelta(t, want, out.At(0, h, w, 0), 1e-12, "output cell (%d, %d)", h, w)
		}
	}
}

// TestConv2D_WeightsInitializedOnce verifies the lazy one-time
// initialization: parameters appear on the first Forward and stay put on
// later calls instead of being redrawn.
func TestConv2D_WeightsInitializedOnce(t *testing.T) {
	conv := NewConv2D(3, 3, 3, PaddingSame, 1, newRNG())
	x := tensor.Uniform(tensor.Shape{2, 5, 5, 2}, 1.0, newRNG())

	conv.Forward(x)
	require.NotNil(t, conv.Weights())
	assert.True(t, conv.Weights().Shape().Equal(tensor.Shape{3, 3, 2, 3}))
	assert.True(t, conv.Bias().Shape().Equal(tensor.Shape{1, 1, 1, 3}))

	before := conv.Weights().Clone()
	conv.Forward(x)
	conv.Forward(x)

	assert.Equal(t, before.Data(), conv.Weights().Data())
}

func TestConv2D_ChannelMismatchPanics(t *testing.T) {
	conv := NewConv2D(2, 3, 3, PaddingSame, 1, newRNG())
	conv.Forward(tensor.Zeros(tensor.Shape{1, 5, 5, 2}))

	assert.Panics(t, func() { conv.Forward(tensor.Zeros(tensor.Shape{1, 5, 5, 3})) })
}

func TestConv2D_GradientShapeSymmetry(t *testing.T) {
	for _, padding := range []Padding{PaddingValid, PaddingSame} {
		conv := NewConv2D(2, 3, 3, padding, 1, newRNG())
		x := tensor.Uniform(tensor.Shape{2, 6, 6, 3}, 1.0, newRNG())

		out := conv.Forward(x)
		grad := conv.Backward(tensor.Full(out.Shape(), 1.0), 0)

		assert.True(t, grad.Shape().Equal(x.Shape()), "padding %q", padding)
	}
}

// TestConv2D_InputGradient checks Backward's input gradient against central
// finite differences of L(A) = sum(forward(A) ⊙ G).
func TestConv2D_InputGradient(t *testing.T) {
	for _, padding := range []Padding{PaddingValid, PaddingSame} {
		rng := rand.New(rand.NewSource(11))
		conv := NewConv2D(2, 3, 3, padding, 1, rng)

		x := tensor.Uniform(tensor.Shape{1, 4, 4, 1}, 1.0, rng)
		out := conv.Forward(x)
		g := tensor.Uniform(out.Shape(), 1.0, rand.New(rand.NewSource(13)))

		// lr = 0: gradients only, no parameter update.
		analytic := conv.Backward(g, 0)

		const h = 1e-6
		for i := range x.Data() {
			plus := x.Clone()
			plus.Data()[i] += h
			minus := x.Clone()
			minus.Data()[i] -= h

			lossPlus := conv.Forward(plus).Mul(g).Sum()
			lossMinus := conv.Forward(minus).Mul(g).Sum()
			numeric := (lossPlus - lossMinus) / (2 * h)

			assert.InDelta(t, numeric, analytic.Data()[i], 1e-5,
				"padding %q, input element %d", padding, i)
		}
	}
}

// TestConv2D_ParameterGradients recovers dW and db from the parameter update
// at lr = 1 and checks them against finite differences.
func TestConv2D_ParameterGradients(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	conv := NewConv2D(1, 2, 2, PaddingValid, 1, rng)

	x := tensor.Uniform(tensor.Shape{2, 3, 3, 1}, 1.0, rng)
	w0, _ := GlorotUniform(tensor.Shape{2, 2, 1, 1}, rand.New(rand.NewSource(19)))
	b0 := tensor.Zeros(tensor.Shape{1, 1, 1, 1})
	conv.SetParameters(w0.Clone(), b0.Clone())

	out := conv.Forward(x)
	g := tensor.Uniform(out.Shape(), 1.0, rand.New(rand.NewSource(23)))

	// With lr = 1: W_after = W0 - dW, so dW = W0 - W_after.
	conv.Backward(g, 1.0)
	dW := w0.Sub(conv.Weights())
	db := b0.Sub(conv.Bias())

	// db accumulates every gradient cell of the filter.
	assert.InDelta(t, g.Sum(), db.At(0, 0, 0, 0), 1e-9)

	const h = 1e-6
	for i := range w0.Data() {
		plus := w0.Clone()
		plus.Data()[i] += h
		conv.SetParameters(plus, b0.Clone())
		lossPlus := conv.Forward(x).Mul(g).Sum()

		minus := w0.Clone()
		minus.Data()[i] -= h
		conv.SetParameters(minus, b0.Clone())
		lossMinus := conv.Forward(x).Mul(g).Sum()

		numeric := (lossPlus - lossMinus) / (2 * h)
		assert.InDelta(t, numeric, dW.Data()[i], 1e-5, "weight element %d", i)
	}
}

// TestConv2D_SingleUpdatePerBackward ensures the batch gradient is applied
// once after full accumulation: two identical samples must move the weights
// exactly twice as far as one of them.
func TestConv2D_SingleUpdatePerBackward(t *testing.T) {
	w0, _ := GlorotUniform(tensor.Shape{2, 2, 1, 1}, rand.New(rand.NewSource(29)))
	b0 := tensor.Zeros(tensor.Shape{1, 1, 1, 1})

	sample := tensor.Uniform(tensor.Shape{1, 3, 3, 1}, 1.0, rand.New(rand.NewSource(31)))
	double := tensor.Zeros(tensor.Shape{2, 3, 3, 1})
	copy(double.Data()[:9], sample.Data())
	copy(double.Data()[9:], sample.Data())

	run := func(x *tensor.Tensor, gradShape tensor.Shape) *tensor.Tensor {
		conv := NewConv2D(1, 2, 2, PaddingValid, 1, newRNG())
		conv.SetParameters(w0.Clone(), b0.Clone())
		conv.Forward(x)
		conv.Backward(tensor.Full(gradShape, 1.0), 0.1)
		return w0.Sub(conv.Weights()) // lr * dW
	}

	deltaSingle := run(sample, tensor.Shape{1, 2, 2, 1})
	deltaDouble := run(double, tensor.Shape{2, 2, 2, 1})

	for i := range deltaSingle.Data() {
		assert.InDelta(t, 2*deltaSingle.Data()[i], deltaDouble.Data()[i], 1e-9,
			"weight element %d", i)
	}
}

func TestConv2D_SamePaddingEvenKernel(t *testing.T) {
	// 2×2 kernel at stride 1 needs total padding 1; the truncated symmetric
	// pad is 0, so the output shrinks by one instead of padding unevenly.
	conv := NewConv2D(1, 2, 2, PaddingSame, 1, newRNG())
	out := conv.Forward(tensor.Zeros(tensor.Shape{1, 4, 4, 1}))

	assert.True(t, out.Shape().Equal(tensor.Shape{1, 3, 3, 1}))
}

func TestConv2D_BackwardBadGradPanics(t *testing.T) {
	conv := NewConv2D(1, 2, 2, PaddingValid, 1, newRNG())
	conv.Forward(tensor.Zeros(tensor.Shape{1, 4, 4, 1}))

	assert.Panics(t, func() { conv.Backward(tensor.Zeros(tensor.Shape{3, 3}), 0.1) })
}
