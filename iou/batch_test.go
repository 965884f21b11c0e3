package iou

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewBoxBatchShapes(t *testing.T) {
	testCases := []struct {
		desc  string
		data  []float64
		shape []int
		valid bool
	}{
		{desc: "implicit (N, 4)", data: make([]float64, 8), valid: true},
		{desc: "single box", data: make([]float64, 4), shape: []int{4}, valid: true},
		{desc: "grid batch", data: make([]float64, 2*3*3*4), shape: []int{2, 3, 3, 4}, valid: true},
		{desc: "empty batch", data: nil, shape: []int{0, 4}, valid: true},
		{desc: "trailing dimension is not 4", data: make([]float64, 6), shape: []int{2, 3}, valid: false},
		{desc: "data does not fill shape", data: make([]float64, 7), shape: []int{2, 4}, valid: false},
		{desc: "implicit shape with leftover values", data: make([]float64, 5), valid: false},
		{desc: "negative dimension", data: nil, shape: []int{-1, 4}, valid: false},
		{desc: "dimensions overflow to zero", data: nil, shape: []int{math.MaxInt/2 + 1, 4, 4}, valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			batch, err := NewBoxBatch(tc.data, tc.shape...)
			if !tc.valid {
				require.True(t, errors.Is(err, ErrShapeMismatch), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, len(tc.data)/4, batch.Len())
		})
	}
}

func TestBoxBatchDoesNotAliasInput(t *testing.T) {
	data := []float64{0, 0, 10, 10}
	batch, err := NewBoxBatch(data)
	require.NoError(t, err)
	data[0] = 100
	require.Equal(t, Box{0, 0, 10, 10}, batch.Box(0))

	shape := batch.Shape()
	shape[0] = 42
	require.Equal(t, []int{1, 4}, batch.Shape())
}

func TestNewBoxBatchFromDense(t *testing.T) {
	m := mat.NewDense(2, 4, []float64{
		0, 0, 10, 10,
		5, 5, 15, 15,
	})
	batch, err := NewBoxBatchFromDense(m)
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, batch.Shape())
	require.Equal(t, Box{5, 5, 15, 15}, batch.Box(1))

	_, err = NewBoxBatchFromDense(mat.NewDense(2, 3, nil))
	require.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestNewBoxBatchFromFloat32(t *testing.T) {
	batch, err := NewBoxBatchFromFloat32([]float32{0.5, 0.25, 1, 2}, 1, 4)
	require.NoError(t, err)
	require.Equal(t, Box{0.5, 0.25, 1, 2}, batch.Box(0))
}

func TestZeroValueBoxBatch(t *testing.T) {
	var batch BoxBatch
	require.Equal(t, 0, batch.Len())
	require.Nil(t, batch.LeadingShape())
	require.Empty(t, batch.Shape())
}
