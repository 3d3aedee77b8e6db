package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fromSlice(t *testing.T, data []float64, shape Shape) *Tensor {
	t.Helper()
	x, err := FromSlice(data, shape)
	require.NoError(t, err)
	return x
}

func TestAdd_SameShape(t *testing.T) {
	a := fromSlice(t, []float64{1, 2, 3, 4}, Shape{2, 2})
	b := fromSlice(t, []float64{10, 20, 30, 40}, Shape{2, 2})

	c := a.Add(b)

	assert.Equal(t, []float64{11, 22, 33, 44}, c.Data())
	// Operands untouched.
	assert.Equal(t, []float64{1, 2, 3, 4}, a.Data())
}

func TestAdd_BroadcastBiasRow(t *testing.T) {
	// The Dense layer's bias case: (batch, out) + (1, out).
	x := fromSlice(t, []float64{1, 2, 3, 4, 5, 6}, Shape{3, 2})
	bias := fromSlice(t, []float64{10, 20}, Shape{1, 2})

	y := x.Add(bias)

	assert.True(t, y.Shape().Equal(Shape{3, 2}))
	assert.Equal(t, []float64{11, 22, 13, 24, 15, 26}, y.Data())
}

func TestSub(t *testing.T) {
	a := fromSlice(t, []float64{5, 5}, Shape{2})
	b := fromSlice(t, []float64{2, 3}, Shape{2})

	assert.Equal(t, []float64{3, 2}, a.Sub(b).Data())
}

func TestMul_Elementwise(t *testing.T) {
	a := fromSlice(t, []float64{1, 2, 3}, Shape{3})
	b := fromSlice(t, []float64{4, 5, 6}, Shape{3})

	assert.Equal(t, []float64{4, 10, 18}, a.Mul(b).Data())
}

func TestAdd_IncompatibleShapesPanics(t *testing.T) {
	a := Zeros(Shape{3, 4})
	b := Zeros(Shape{3, 5})

	assert.Panics(t, func() { a.Add(b) })
}

func TestScale(t *testing.T) {
	a := fromSlice(t, []float64{1, -2, 3}, Shape{3})

	assert.Equal(t, []float64{2, -4, 6}, a.Scale(2).Data())
	assert.Equal(t, []float64{1, -2, 3}, a.Data())
}

func TestAddScaled_InPlace(t *testing.T) {
	a := fromSlice(t, []float64{1, 1}, Shape{2})
	g := fromSlice(t, []float64{10, 20}, Shape{2})

	a.AddScaled(-0.1, g)

	assert.InDelta(t, 0.0, a.At(0), 1e-12)
	assert.InDelta(t, -1.0, a.At(1), 1e-12)

	assert.Panics(t, func() { a.AddScaled(1, Zeros(Shape{3})) })
}

func TestApply(t *testing.T) {
	a := fromSlice(t, []float64{1, 4, 9}, Shape{3})

	assert.Equal(t, []float64{1, 2, 3}, a.Apply(math.Sqrt).Data())
}

func TestSum(t *testing.T) {
	a := fromSlice(t, []float64{1, 2, 3, 4}, Shape{2, 2})
	assert.Equal(t, 10.0, a.Sum())
}

func TestSumAxis(t *testing.T) {
	a := fromSlice(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})

	cols := a.SumAxis(0, true)
	assert.True(t, cols.Shape().Equal(Shape{1, 3}))
	assert.Equal(t, []float64{5, 7, 9}, cols.Data())

	rows := a.SumAxis(1, false)
	assert.True(t, rows.Shape().Equal(Shape{2}))
	assert.Equal(t, []float64{6, 15}, rows.Data())

	assert.Panics(t, func() { a.SumAxis(2, true) })
}

func TestMatMul(t *testing.T) {
	// (2, 3) @ (3, 2) → (2, 2)
	a := fromSlice(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	b := fromSlice(t, []float64{7, 8, 9, 10, 11, 12}, Shape{3, 2})

	c := a.MatMul(b)

	assert.True(t, c.Shape().Equal(Shape{2, 2}))
	assert.InDelta(t, 58.0, c.At(0, 0), 1e-12)
	assert.InDelta(t, 64.0, c.At(0, 1), 1e-12)
	assert.InDelta(t, 139.0, c.At(1, 0), 1e-12)
	assert.InDelta(t, 154.0, c.At(1, 1), 1e-12)
}

func TestMatMul_InnerMismatchPanics(t *testing.T) {
	a := Zeros(Shape{2, 3})
	b := Zeros(Shape{4, 2})

	assert.Panics(t, func() { a.MatMul(b) })
	assert.Panics(t, func() { a.MatMul(Zeros(Shape{3})) })
}

func TestTranspose(t *testing.T) {
	a := fromSlice(t, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})

	at := a.Transpose()

	assert.True(t, at.Shape().Equal(Shape{3, 2}))
	assert.Equal(t, 2.0, at.At(1, 0))
	assert.Equal(t, 6.0, at.At(2, 1))
}

func TestMatMul_TransposeIdentity(t *testing.T) {
	// (A @ B)ᵀ == Bᵀ @ Aᵀ
	a := fromSlice(t, []float64{1, 2, 3, 4}, Shape{2, 2})
	b := fromSlice(t, []float64{5, 6, 7, 8}, Shape{2, 2})

	left := a.MatMul(b).Transpose()
	right := b.Transpose().MatMul(a.Transpose())

	for i := range left.Data() {
		assert.InDelta(t, right.Data()[i], left.Data()[i], 1e-12)
	}
}
