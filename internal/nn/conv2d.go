package nn

import (
	"fmt"
	"math/rand"

	"github.com/graft-ml/graft/internal/tensor"
)

// Padding selects the spatial padding mode of a convolution.
type Padding string

// Supported padding modes.
const (
	// PaddingValid applies no padding; the output shrinks by kernel-1.
	PaddingValid Padding = "valid"
	// PaddingSame zero-pads so the output keeps the input's spatial size
	// at stride 1.
	PaddingSame Padding = "same"
)

// Conv2D implements a 2D convolution layer over channels-last data.
//
// Input layout is (batch, height, width, channels). Filter weights have
// shape (kernel_h, kernel_w, in_channels, filters) and the bias has shape
// (1, 1, 1, filters). The forward pass is a dense cross-correlation: a
// sliding window stepped by stride, each output cell the weighted sum of
// one input window plus the filter bias. No kernel flip is performed.
//
// Parameters are initialized lazily on the first Forward call, when the
// input channel count is first known, with a Glorot-uniform draw from the
// layer's generator. Later calls reuse them; they are never reset.
//
// 'same' padding uses a single truncated integer pad amount applied to both
// sides of each spatial axis: pad = ((in-1)*stride + kernel - in) / 2. At
// stride 1 this preserves the spatial size for odd kernels. When the
// required total padding is odd (even kernels) the truncated symmetric pad
// falls one short and the output shrinks accordingly; no asymmetric padding
// is applied.
type Conv2D struct {
	filters int
	kernelH int
	kernelW int
	padding Padding
	stride  int
	rng     *rand.Rand

	weights     *tensor.Tensor // (kernel_h, kernel_w, in_channels, filters)
	bias        *tensor.Tensor // (1, 1, 1, filters)
	initialized bool

	// Per-call state, overwritten by every Forward.
	input      *tensor.Tensor // padded input
	padH, padW int
}

// NewConv2D creates a convolution layer.
//
// The generator is threaded explicitly and drives the lazy Glorot-uniform
// parameter initialization on the first Forward call.
func NewConv2D(filters, kernelH, kernelW int, padding Padding, stride int, rng *rand.Rand) *Conv2D {
	if filters <= 0 {
		panic(fmt.Sprintf("nn.NewConv2D: filters must be positive, got %d", filters))
	}
	if kernelH <= 0 || kernelW <= 0 {
		panic(fmt.Sprintf("nn.NewConv2D: kernel dimensions must be positive, got (%d, %d)", kernelH, kernelW))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("nn.NewConv2D: stride must be positive, got %d", stride))
	}
	if padding != PaddingValid && padding != PaddingSame {
		panic(fmt.Sprintf("nn.NewConv2D: unknown padding mode %q", padding))
	}
	return &Conv2D{
		filters: filters,
		kernelH: kernelH,
		kernelW: kernelW,
		padding: padding,
		stride:  stride,
		rng:     rng,
	}
}

// outputSize computes the spatial output extent and pad amount for one axis.
// The output is always derived from the actual pad, so even-kernel 'same'
// cases (where the truncated symmetric pad falls one short) shrink slightly
// instead of reading past the padded input.
func (c *Conv2D) outputSize(in, kernel int) (out, pad int) {
	if c.padding == PaddingSame {
		pad = ((in-1)*c.stride + kernel - in) / 2
	}
	return (in+2*pad-kernel)/c.stride + 1, pad
}

// Forward computes the convolution of a (batch, h, w, channels) input.
//
// Output shape: (batch, out_h, out_w, filters) with
// out = (in + 2*pad - kernel)/stride + 1; at stride 1 with odd kernels,
// 'same' padding makes this equal the input extent.
func (c *Conv2D) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("Conv2D.Forward: expected 4D input (batch, h, w, c), got shape %v", shape))
	}
	samples, inH, inW, channels := shape[0], shape[1], shape[2], shape[3]

	if !c.initialized {
		filterShape := tensor.Shape{c.kernelH, c.kernelW, channels, c.filters}
		c.weights, c.bias = GlorotUniform(filterShape, c.rng)
		c.initialized = true
	} else if c.weights.Shape()[2] != channels {
		panic(fmt.Sprintf("Conv2D.Forward: layer was built for %d input channels, got %d",
			c.weights.Shape()[2], channels))
	}

	outH, padH := c.outputSize(inH, c.kernelH)
	outW, padW := c.outputSize(inW, c.kernelW)
	if outH <= 0 || outW <= 0 {
		panic(fmt.Sprintf("Conv2D.Forward: kernel (%d, %d) with stride %d does not fit input (%d, %d)",
			c.kernelH, c.kernelW, c.stride, inH, inW))
	}

	padded := input.Pad2D(padH, padW)
	c.input = padded
	c.padH, c.padW = padH, padW

	output := tensor.Zeros(tensor.Shape{samples, outH, outW, c.filters})

	inData := padded.Data()
	outData := output.Data()
	wData := c.weights.Data()
	bData := c.bias.Data()

	inStride := padded.Strides()
	outStride := output.Strides()
	wStride := c.weights.Strides()

	for i := 0; i < samples; i++ {
		sample := inData[i*inStride[0] : (i+1)*inStride[0]]
		outSample := outData[i*outStride[0] : (i+1)*outStride[0]]

		for h := 0; h < outH; h++ {
			vertStart := h * c.stride
			for w := 0; w < outW; w++ {
				horizStart := w * c.stride

				for f := 0; f < c.filters; f++ {
					// sum(window ⊙ filter_f) + bias_f
					sum := bData[f]
					for kh := 0; kh < c.kernelH; kh++ {
						rowOff := (vertStart + kh) * inStride[1]
						wRowOff := kh * wStride[0]
						for kw := 0; kw < c.kernelW; kw++ {
							colOff := rowOff + (horizStart+kw)*inStride[2]
							wColOff := wRowOff + kw*wStride[1]
							for ch := 0; ch < channels; ch++ {
								sum += sample[colOff+ch] * wData[wColOff+ch*wStride[2]+f]
							}
						}
					}
					outSample[h*outStride[1]+w*outStride[2]+f] = sum
				}
			}
		}
	}

	return output
}

// Backward computes the input gradient of the convolution and applies one
// gradient-descent update to the filters and bias.
//
// Gradients are accumulated over the whole batch into dW/db and applied
// once after the loop, so every sample's contribution is computed against
// the same parameters.
func (c *Conv2D) Backward(outputGrad *tensor.Tensor, learningRate float64) *tensor.Tensor {
	gradShape := outputGrad.Shape()
	if len(gradShape) != 4 {
		panic(fmt.Sprintf("Conv2D.Backward: expected 4D gradient, got shape %v", gradShape))
	}
	samples, outH, outW := gradShape[0], gradShape[1], gradShape[2]
	channels := c.weights.Shape()[2]

	dAPad := tensor.Zeros(c.input.Shape())
	dW := tensor.Zeros(c.weights.Shape())
	db := tensor.Zeros(c.bias.Shape())

	inData := c.input.Data()
	gradData := outputGrad.Data()
	wData := c.weights.Data()
	dAData := dAPad.Data()
	dWData := dW.Data()
	dbData := db.Data()

	inStride := c.input.Strides()
	gradStride := outputGrad.Strides()
	wStride := c.weights.Strides()

	for i := 0; i < samples; i++ {
		sample := inData[i*inStride[0] : (i+1)*inStride[0]]
		dASample := dAData[i*inStride[0] : (i+1)*inStride[0]]
		gradSample := gradData[i*gradStride[0] : (i+1)*gradStride[0]]

		for h := 0; h < outH; h++ {
			vertStart := h * c.stride
			for w := 0; w < outW; w++ {
				horizStart := w * c.stride

				for f := 0; f < c.filters; f++ {
					gradVal := gradSample[h*gradStride[1]+w*gradStride[2]+f]

					// dA_pad[window] += W[:,:,:,f] * dY[i,h,w,f]
					// dW[:,:,:,f]   += window * dY[i,h,w,f]
					for kh := 0; kh < c.kernelH; kh++ {
						rowOff := (vertStart + kh) * inStride[1]
						wRowOff := kh * wStride[0]
						for kw := 0; kw < c.kernelW; kw++ {
							colOff := rowOff + (horizStart+kw)*inStride[2]
							wColOff := wRowOff + kw*wStride[1]
							for ch := 0; ch < channels; ch++ {
								wIdx := wColOff + ch*wStride[2] + f
								dASample[colOff+ch] += wData[wIdx] * gradVal
								dWData[wIdx] += sample[colOff+ch] * gradVal
							}
						}
					}
					dbData[f] += gradVal
				}
			}
		}
	}

	c.weights.AddScaled(-learningRate, dW)
	c.bias.AddScaled(-learningRate, db)

	return dAPad.Crop2D(c.padH, c.padW)
}

// Weights returns the filter weights, or nil before the first Forward call.
func (c *Conv2D) Weights() *tensor.Tensor {
	return c.weights
}

// Bias returns the filter bias, or nil before the first Forward call.
func (c *Conv2D) Bias() *tensor.Tensor {
	return c.bias
}

// SetParameters replaces the filter weights and bias, marking the layer
// initialized. Intended for tests and deterministic setups.
func (c *Conv2D) SetParameters(weights, bias *tensor.Tensor) {
	wShape := weights.Shape()
	if len(wShape) != 4 || wShape[0] != c.kernelH || wShape[1] != c.kernelW || wShape[3] != c.filters {
		panic(fmt.Sprintf("Conv2D.SetParameters: weight shape %v does not match layer (kernel %dx%d, %d filters)",
			wShape, c.kernelH, c.kernelW, c.filters))
	}
	if !bias.Shape().Equal(tensor.Shape{1, 1, 1, c.filters}) {
		panic(fmt.Sprintf("Conv2D.SetParameters: bias shape %v, want (1, 1, 1, %d)", bias.Shape(), c.filters))
	}
	c.weights = weights
	c.bias = bias
	c.initialized = true
}
