package nn

import (
	"fmt"
	"math"

	"github.com/graft-ml/graft/internal/tensor"
)

// Loss computes a scalar loss from true and predicted values.
type Loss func(yTrue, yPred *tensor.Tensor) float64

// LossGrad computes the gradient of a loss with respect to the predictions,
// matching the prediction tensor's shape.
type LossGrad func(yTrue, yPred *tensor.Tensor) *tensor.Tensor

func checkLossShapes(name string, yTrue, yPred *tensor.Tensor) {
	if !yTrue.Shape().Equal(yPred.Shape()) {
		panic(fmt.Sprintf("nn.%s: shape mismatch: targets %v vs predictions %v", name, yTrue.Shape(), yPred.Shape()))
	}
}

// MSE computes mean squared error: mean((yTrue - yPred)²).
func MSE(yTrue, yPred *tensor.Tensor) float64 {
	checkLossShapes("MSE", yTrue, yPred)
	diff := yTrue.Sub(yPred)
	return diff.Mul(diff).Sum() / float64(yTrue.NumElements())
}

// MSEGrad computes the gradient of MSE with respect to the predictions:
// 2 * (yPred - yTrue) / n.
func MSEGrad(yTrue, yPred *tensor.Tensor) *tensor.Tensor {
	checkLossShapes("MSEGrad", yTrue, yPred)
	return yPred.Sub(yTrue).Scale(2.0 / float64(yTrue.NumElements()))
}

// MAE computes mean absolute error: mean(|yTrue - yPred|).
func MAE(yTrue, yPred *tensor.Tensor) float64 {
	checkLossShapes("MAE", yTrue, yPred)
	return yTrue.Sub(yPred).Apply(math.Abs).Sum() / float64(yTrue.NumElements())
}

// MAEGrad computes the subgradient of MAE with respect to the predictions:
// sign(yPred - yTrue) / n. The subgradient at zero is taken as zero.
func MAEGrad(yTrue, yPred *tensor.Tensor) *tensor.Tensor {
	checkLossShapes("MAEGrad", yTrue, yPred)
	n := float64(yTrue.NumElements())
	return yPred.Sub(yTrue).Apply(func(v float64) float64 {
		switch {
		case v > 0:
			return 1 / n
		case v < 0:
			return -1 / n
		default:
			return 0
		}
	})
}
