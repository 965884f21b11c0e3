package iou

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidFormat is returned when box format is neither midpoint nor corners
	ErrInvalidFormat = errors.New("invalid box format")
	// ErrShapeMismatch is returned when box collections can't be paired elementwise
	ErrShapeMismatch = errors.New("shape mismatch")
)

func invalidFormat(format BoxFormat) error {
	return errors.Wrapf(ErrInvalidFormat, "format code %d", uint16(format))
}
