package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/graft-ml/graft/internal/tensor"
)

// GlorotUniform initializes convolution parameters for a 4D filter shape
// (kernel_h, kernel_w, in_channels, filters).
//
// Weights are drawn from U(-limit, limit) with
// limit = sqrt(6 / (fan_in + fan_out)), where fan_in = kh*kw*in_channels and
// fan_out = kh*kw*filters. The bias is returned zero-filled with shape
// (1, 1, 1, filters).
//
// This initialization keeps activation variance roughly constant across
// layers (Glorot & Bengio, 2010).
func GlorotUniform(shape tensor.Shape, rng *rand.Rand) (*tensor.Tensor, *tensor.Tensor) {
	if len(shape) != 4 {
		panic(fmt.Sprintf("nn.GlorotUniform: expected 4D filter shape, got %v", shape))
	}

	kh, kw, inChannels, filters := shape[0], shape[1], shape[2], shape[3]
	fanIn := kh * kw * inChannels
	fanOut := kh * kw * filters
	limit := math.Sqrt(6.0 / float64(fanIn+fanOut))

	weights := tensor.Zeros(shape)
	data := weights.Data()
	for i := range data {
		data[i] = (rng.Float64()*2.0 - 1.0) * limit
	}

	bias := tensor.Zeros(tensor.Shape{1, 1, 1, filters})
	return weights, bias
}
