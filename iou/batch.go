package iou

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// boxSize is length of trailing box axis
const boxSize = 4

// BoxBatch is an ordered collection of boxes stored as a flat row-major buffer.
// Shape is (..., 4): leading dimensions are arbitrary (e.g. (N, 4) or per-cell (N, S, S, 4)).
type BoxBatch struct {
	shape []int
	data  []float64
}

// NewBoxBatch creates a batch from flat data and its shape. Data is copied, so caller may reuse the slice.
// When shape is omitted data is treated as (len(data)/4, 4).
func NewBoxBatch(data []float64, shape ...int) (*BoxBatch, error) {
	if len(shape) == 0 {
		shape = []int{len(data) / boxSize, boxSize}
	}
	err := validateShape(shape, len(data))
	if err != nil {
		return nil, err
	}
	batch := BoxBatch{
		shape: append([]int(nil), shape...),
		data:  append([]float64(nil), data...),
	}
	return &batch, nil
}

// NewBoxBatchFromFloat32 creates a batch from float32 detector output
func NewBoxBatchFromFloat32(data []float32, shape ...int) (*BoxBatch, error) {
	converted := make([]float64, len(data))
	for i, v := range data {
		converted[i] = float64(v)
	}
	return NewBoxBatch(converted, shape...)
}

// NewBoxBatchFromBoxes creates (N, 4) batch
func NewBoxBatchFromBoxes(boxes []Box) *BoxBatch {
	data := make([]float64, 0, len(boxes)*boxSize)
	for _, box := range boxes {
		data = append(data, box[:]...)
	}
	return &BoxBatch{
		shape: []int{len(boxes), boxSize},
		data:  data,
	}
}

// NewBoxBatchFromDense creates (N, 4) batch from matrix with one box per row
func NewBoxBatchFromDense(m mat.Matrix) (*BoxBatch, error) {
	rows, cols := m.Dims()
	if cols != boxSize {
		return nil, errors.Wrapf(ErrShapeMismatch, "matrix has %d columns, expected %d", cols, boxSize)
	}
	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data = append(data, m.At(i, j))
		}
	}
	return &BoxBatch{
		shape: []int{rows, cols},
		data:  data,
	}, nil
}

func validateShape(shape []int, size int) error {
	if len(shape) == 0 {
		return errors.Wrap(ErrShapeMismatch, "empty shape")
	}
	if shape[len(shape)-1] != boxSize {
		return errors.Wrapf(ErrShapeMismatch, "trailing dimension is %d, expected %d", shape[len(shape)-1], boxSize)
	}
	total := 1
	for _, dim := range shape {
		if dim < 0 {
			return errors.Wrapf(ErrShapeMismatch, "negative dimension in shape %v", shape)
		}
		if dim > 0 && total > math.MaxInt/dim {
			return errors.Wrapf(ErrShapeMismatch, "shape %v is too large", shape)
		}
		total *= dim
	}
	if total != size {
		return errors.Wrapf(ErrShapeMismatch, "shape %v needs %d values, got %d", shape, total, size)
	}
	return nil
}

// Shape returns copy of batch shape including trailing box axis
func (batch *BoxBatch) Shape() []int {
	return append([]int(nil), batch.shape...)
}

// LeadingShape returns shape without trailing box axis
func (batch *BoxBatch) LeadingShape() []int {
	if len(batch.shape) == 0 {
		return nil
	}
	return append([]int(nil), batch.shape[:len(batch.shape)-1]...)
}

// Len returns number of boxes
func (batch *BoxBatch) Len() int {
	return len(batch.data) / boxSize
}

// Box returns i-th box in row-major order
func (batch *BoxBatch) Box(i int) Box {
	var box Box
	copy(box[:], batch.data[i*boxSize:(i+1)*boxSize])
	return box
}

func (batch *BoxBatch) String() string {
	return fmt.Sprintf("BoxBatch%v", batch.shape)
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
