package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Add performs element-wise addition with broadcasting.
func (t *Tensor) Add(other *Tensor) *Tensor {
	return t.elementwise(other, "add", func(a, b float64) float64 { return a + b })
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor) Sub(other *Tensor) *Tensor {
	return t.elementwise(other, "sub", func(a, b float64) float64 { return a - b })
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	return t.elementwise(other, "mul", func(a, b float64) float64 { return a * b })
}

// elementwise applies a binary op, broadcasting the smaller operand when the
// shapes differ. Equal shapes take the flat gonum fast path.
func (t *Tensor) elementwise(other *Tensor, name string, op func(a, b float64) float64) *Tensor {
	if t.shape.Equal(other.shape) {
		result := t.Clone()
		switch name {
		case "add":
			floats.Add(result.data, other.data)
		case "sub":
			floats.Sub(result.data, other.data)
		case "mul":
			floats.Mul(result.data, other.data)
		}
		return result
	}

	outShape, err := BroadcastShapes(t.shape, other.shape)
	if err != nil {
		panic(fmt.Sprintf("tensor.%s: %v", name, err))
	}

	result := Zeros(outShape)
	idx := make([]int, len(outShape))
	for i := range result.data {
		result.data[i] = op(t.data[broadcastOffset(t.shape, t.stride, idx)],
			other.data[broadcastOffset(other.shape, other.stride, idx)])
		// Advance the multi-dimensional index, rightmost dimension first.
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < outShape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return result
}

// broadcastOffset maps a broadcast-result index onto an operand's storage.
// Size-1 dimensions pin to index 0; missing leading dimensions are skipped.
func broadcastOffset(shape Shape, stride []int, idx []int) int {
	off := 0
	skip := len(idx) - len(shape)
	for d := range shape {
		i := idx[skip+d]
		if shape[d] == 1 {
			i = 0
		}
		off += i * stride[d]
	}
	return off
}

// Scale returns alpha * t.
func (t *Tensor) Scale(alpha float64) *Tensor {
	result := t.Clone()
	floats.Scale(alpha, result.data)
	return result
}

// AddScaled performs t += alpha * other in place. Shapes must match exactly.
func (t *Tensor) AddScaled(alpha float64, other *Tensor) {
	if !t.shape.Equal(other.shape) {
		panic(fmt.Sprintf("tensor.AddScaled: shape mismatch %v vs %v", t.shape, other.shape))
	}
	floats.AddScaled(t.data, alpha, other.data)
}

// Apply returns a new tensor with fn applied to every element.
func (t *Tensor) Apply(fn func(float64) float64) *Tensor {
	result := Zeros(t.shape)
	for i, v := range t.data {
		result.data[i] = fn(v)
	}
	return result
}

// Sum returns the sum of all elements.
func (t *Tensor) Sum() float64 {
	return floats.Sum(t.data)
}

// SumAxis reduces the tensor by summing along the given axis.
// With keepDims the reduced axis stays as size 1, otherwise it is removed.
func (t *Tensor) SumAxis(axis int, keepDims bool) *Tensor {
	if axis < 0 || axis >= len(t.shape) {
		panic(fmt.Sprintf("tensor.SumAxis: axis %d out of range for rank %d", axis, len(t.shape)))
	}

	reduced := t.shape.Clone()
	reduced[axis] = 1
	result := Zeros(reduced)

	idx := make([]int, len(t.shape))
	for _, v := range t.data {
		off := 0
		for d := range idx {
			i := idx[d]
			if d == axis {
				i = 0
			}
			off += i * result.stride[d]
		}
		result.data[off] += v

		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < t.shape[d] {
				break
			}
			idx[d] = 0
		}
	}

	if !keepDims {
		squeezed := make(Shape, 0, len(reduced)-1)
		for d, dim := range reduced {
			if d != axis {
				squeezed = append(squeezed, dim)
			}
		}
		return result.Reshape(squeezed...)
	}
	return result
}

// MatMul performs 2D matrix multiplication: (m, k) @ (k, n) → (m, n).
// The heavy lifting is delegated to gonum.
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	if len(t.shape) != 2 || len(other.shape) != 2 {
		panic(fmt.Sprintf("tensor.MatMul: expected 2D operands, got %v and %v", t.shape, other.shape))
	}
	m, k := t.shape[0], t.shape[1]
	k2, n := other.shape[0], other.shape[1]
	if k != k2 {
		panic(fmt.Sprintf("tensor.MatMul: inner dimensions do not match: %v @ %v", t.shape, other.shape))
	}

	result := Zeros(Shape{m, n})
	out := mat.NewDense(m, n, result.data)
	out.Mul(mat.NewDense(m, k, t.data), mat.NewDense(k2, n, other.data))
	return result
}

// Transpose returns the transpose of a 2D tensor as a new tensor.
func (t *Tensor) Transpose() *Tensor {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("tensor.Transpose: expected 2D tensor, got %v", t.shape))
	}
	r, c := t.shape[0], t.shape[1]
	result := Zeros(Shape{c, r})
	out := mat.NewDense(c, r, result.data)
	out.Copy(mat.NewDense(r, c, t.data).T())
	return result
}
