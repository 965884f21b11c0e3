package iou

import (
	"github.com/pkg/errors"
)

// BoxFormat is for box encoding type
type BoxFormat uint16

const (
	// FormatMidpoint is (center_x, center_y, width, height). It is the default
	FormatMidpoint BoxFormat = iota
	// FormatCorners is (x1, y1, x2, y2) - top-left and bottom-right corners
	FormatCorners
)

const (
	formatMidpointName = "midpoint"
	formatCornersName  = "corners"
)

// ParseBoxFormat maps textual tag to BoxFormat. Only exact "midpoint" and "corners" are accepted.
func ParseBoxFormat(name string) (BoxFormat, error) {
	switch name {
	case formatMidpointName:
		return FormatMidpoint, nil
	case formatCornersName:
		return FormatCorners, nil
	default:
		return 0, errors.Wrapf(ErrInvalidFormat, "unknown format %q", name)
	}
}

// Valid reports whether format is one of known encodings
func (format BoxFormat) Valid() bool {
	return format == FormatMidpoint || format == FormatCorners
}

func (format BoxFormat) String() string {
	switch format {
	case FormatMidpoint:
		return formatMidpointName
	case FormatCorners:
		return formatCornersName
	default:
		return "unknown"
	}
}
