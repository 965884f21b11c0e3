package iou

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Ratios holds one IoU value per box pair, laid out with the leading shape of the input batches.
type Ratios struct {
	shape []int
	data  []float64
}

// Shape returns copy of leading shape. Empty shape means a single pair
func (r *Ratios) Shape() []int {
	return append([]int(nil), r.shape...)
}

// Len returns number of ratios
func (r *Ratios) Len() int {
	return len(r.data)
}

// Data returns copy of ratios in row-major order
func (r *Ratios) Data() []float64 {
	return append([]float64(nil), r.data...)
}

// At returns ratio at multi-dimensional index
func (r *Ratios) At(index ...int) (float64, error) {
	if len(index) != len(r.shape) {
		return 0, errors.Wrapf(ErrShapeMismatch, "index %v has %d dimensions, ratios have %d", index, len(index), len(r.shape))
	}
	offset := 0
	for i, idx := range index {
		if idx < 0 || idx >= r.shape[i] {
			return 0, errors.Wrapf(ErrShapeMismatch, "index %v is out of range for shape %v", index, r.shape)
		}
		offset = offset*r.shape[i] + idx
	}
	return r.data[offset], nil
}

// Mean returns average ratio. Zero for empty collection
func (r *Ratios) Mean() float64 {
	if len(r.data) == 0 {
		return 0
	}
	return floats.Sum(r.data) / float64(len(r.data))
}

// Vector returns ratios as flat gonum vector. Nil for empty collection
func (r *Ratios) Vector() *mat.VecDense {
	if len(r.data) == 0 {
		return nil
	}
	return mat.NewVecDense(len(r.data), r.Data())
}
