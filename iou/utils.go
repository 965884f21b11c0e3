package iou

// Epsilon keeps denominator away from zero when both boxes are degenerate
const Epsilon = 1e-6

// IoUCorners calculates Intersection over Union between two boxes in corner representation.
func IoUCorners(a, b Corners) float64 {
	ix1 := maxFloat64(a.X1, b.X1)
	iy1 := maxFloat64(a.Y1, b.Y1)
	ix2 := minFloat64(a.X2, b.X2)
	iy2 := minFloat64(a.Y2, b.Y2)

	// No overlap on either axis means no intersection at all
	interArea := maxFloat64(ix2-ix1, 0) * maxFloat64(iy2-iy1, 0)

	return interArea / (a.Area() + b.Area() - interArea + Epsilon)
}

// IoU calculates Intersection over Union between two boxes encoded in the same format.
func IoU(a, b Box, format BoxFormat) (float64, error) {
	if !format.Valid() {
		return 0, invalidFormat(format)
	}
	return IoUCorners(cornersOf(a, format), cornersOf(b, format)), nil
}

// IoURect calculates Intersection over Union between two rectangles.
func IoURect(r1, r2 Rectangle) float64 {
	return IoUCorners(r1.Corners(), r2.Corners())
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
