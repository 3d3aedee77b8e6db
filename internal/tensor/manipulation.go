package tensor

import "fmt"

// Reshape returns a tensor with the same backing data but a different shape.
// The new shape must have the same number of elements. The result shares
// storage with the receiver, making reshapes free.
func (t *Tensor) Reshape(dims ...int) *Tensor {
	newShape := Shape(dims)
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("tensor.Reshape: %v", err))
	}
	if newShape.NumElements() != t.shape.NumElements() {
		panic(fmt.Sprintf("tensor.Reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.shape, t.shape.NumElements(), newShape, newShape.NumElements()))
	}
	return &Tensor{
		data:   t.data,
		shape:  newShape.Clone(),
		stride: newShape.ComputeStrides(),
	}
}

// SliceRows returns a copy of rows [begin, end) along the first axis,
// keeping all remaining dimensions.
func (t *Tensor) SliceRows(begin, end int) *Tensor {
	if len(t.shape) == 0 {
		panic("tensor.SliceRows: cannot slice a scalar")
	}
	if begin < 0 || end > t.shape[0] || begin >= end {
		panic(fmt.Sprintf("tensor.SliceRows: invalid range [%d, %d) for axis of size %d", begin, end, t.shape[0]))
	}

	outShape := t.shape.Clone()
	outShape[0] = end - begin
	result := Zeros(outShape)

	rowSize := t.stride[0]
	copy(result.data, t.data[begin*rowSize:end*rowSize])
	return result
}

// Pad2D returns a copy of a 4D (batch, height, width, channels) tensor with
// padH rows of zeros added to both vertical edges and padW columns to both
// horizontal edges. Batch and channel axes are never padded.
func (t *Tensor) Pad2D(padH, padW int) *Tensor {
	if len(t.shape) != 4 {
		panic(fmt.Sprintf("tensor.Pad2D: expected 4D (batch, h, w, c) tensor, got %v", t.shape))
	}
	if padH < 0 || padW < 0 {
		panic(fmt.Sprintf("tensor.Pad2D: negative padding (%d, %d)", padH, padW))
	}
	if padH == 0 && padW == 0 {
		return t.Clone()
	}

	n, h, w, c := t.shape[0], t.shape[1], t.shape[2], t.shape[3]
	result := Zeros(Shape{n, h + 2*padH, w + 2*padW, c})

	rowLen := w * c
	for i := 0; i < n; i++ {
		srcPlane := t.data[i*t.stride[0]:]
		dstPlane := result.data[i*result.stride[0]:]
		for y := 0; y < h; y++ {
			src := srcPlane[y*t.stride[1] : y*t.stride[1]+rowLen]
			dstOff := (y+padH)*result.stride[1] + padW*result.stride[2]
			copy(dstPlane[dstOff:dstOff+rowLen], src)
		}
	}
	return result
}

// Crop2D removes padH/padW padding from the spatial axes of a 4D tensor,
// inverting Pad2D. Bounds are explicit ([pad, pad+dim)) so zero padding
// degenerates to a plain copy instead of an empty slice.
func (t *Tensor) Crop2D(padH, padW int) *Tensor {
	if len(t.shape) != 4 {
		panic(fmt.Sprintf("tensor.Crop2D: expected 4D (batch, h, w, c) tensor, got %v", t.shape))
	}
	n, ph, pw, c := t.shape[0], t.shape[1], t.shape[2], t.shape[3]
	h := ph - 2*padH
	w := pw - 2*padW
	if padH < 0 || padW < 0 || h <= 0 || w <= 0 {
		panic(fmt.Sprintf("tensor.Crop2D: padding (%d, %d) does not fit shape %v", padH, padW, t.shape))
	}
	if padH == 0 && padW == 0 {
		return t.Clone()
	}

	result := Zeros(Shape{n, h, w, c})
	rowLen := w * c
	for i := 0; i < n; i++ {
		srcPlane := t.data[i*t.stride[0]:]
		dstPlane := result.data[i*result.stride[0]:]
		for y := 0; y < h; y++ {
			srcOff := (y+padH)*t.stride[1] + padW*t.stride[2]
			copy(dstPlane[y*result.stride[1]:y*result.stride[1]+rowLen], srcPlane[srcOff:srcOff+rowLen])
		}
	}
	return result
}
