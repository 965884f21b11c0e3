package iou

import (
	"github.com/pkg/errors"
)

// Compute calculates IoU for every pair of corresponding boxes in a and b.
// Both batches must have identical shape (..., 4); result keeps the leading dimensions.
// Format and shapes are validated before anything is computed; inputs are never modified.
func Compute(a, b *BoxBatch, format BoxFormat) (*Ratios, error) {
	if !format.Valid() {
		return nil, invalidFormat(format)
	}
	if a == nil || b == nil {
		return nil, errors.Wrap(ErrShapeMismatch, "nil batch")
	}
	err := validateShape(a.shape, len(a.data))
	if err != nil {
		return nil, err
	}
	err = validateShape(b.shape, len(b.data))
	if err != nil {
		return nil, err
	}
	if !sameShape(a.shape, b.shape) {
		return nil, errors.Wrapf(ErrShapeMismatch, "shapes %v and %v differ", a.shape, b.shape)
	}

	n := a.Len()
	ratios := Ratios{
		shape: a.LeadingShape(),
		data:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		// Each side is normalized from its own coordinates
		ratios.data[i] = IoUCorners(cornersOf(a.Box(i), format), cornersOf(b.Box(i), format))
	}
	return &ratios, nil
}

// IntersectionOverUnion is the same as Compute but takes textual format tag ("midpoint" or "corners").
func IntersectionOverUnion(preds, labels *BoxBatch, format string) (*Ratios, error) {
	boxFormat, err := ParseBoxFormat(format)
	if err != nil {
		return nil, err
	}
	return Compute(preds, labels, boxFormat)
}

// Loss returns mean of (1 - IoU) over all box pairs. Zero for empty batches.
func Loss(preds, labels *BoxBatch, format BoxFormat) (float64, error) {
	ratios, err := Compute(preds, labels, format)
	if err != nil {
		return 0, errors.Wrap(err, "Can't compute IoU loss")
	}
	if ratios.Len() == 0 {
		return 0, nil
	}
	return 1.0 - ratios.Mean(), nil
}
