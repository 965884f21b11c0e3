package iou

import (
	"image"
	"math"
)

// Box is four raw coordinates. Its meaning depends on BoxFormat:
// (cx, cy, w, h) for FormatMidpoint and (x1, y1, x2, y2) for FormatCorners.
type Box [4]float64

// Corners is a box normalized to its two opposite corners.
// No ordering between X1/X2 or Y1/Y2 is assumed.
type Corners struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// Corners converts box to corner representation according to format
func (box Box) Corners(format BoxFormat) (Corners, error) {
	if !format.Valid() {
		return Corners{}, invalidFormat(format)
	}
	return cornersOf(box, format), nil
}

// cornersOf converts box with already validated format
func cornersOf(box Box, format BoxFormat) Corners {
	if format == FormatCorners {
		return Corners{X1: box[0], Y1: box[1], X2: box[2], Y2: box[3]}
	}
	return midpointToCorners(box)
}

func midpointToCorners(box Box) Corners {
	halfW := box[2] / 2.0
	halfH := box[3] / 2.0
	return Corners{
		X1: box[0] - halfW,
		Y1: box[1] - halfH,
		X2: box[0] + halfW,
		Y2: box[1] + halfH,
	}
}

// Area returns absolute area, so unordered corners still give non-negative value
func (c Corners) Area() float64 {
	return math.Abs((c.X2 - c.X1) * (c.Y2 - c.Y1))
}

// Center returns middle point of the box
func (c Corners) Center() Point {
	return Point{
		X: (c.X1 + c.X2) / 2.0,
		Y: (c.Y1 + c.Y2) / 2.0,
	}
}

// Box returns corners encoded in the given format
func (c Corners) Box(format BoxFormat) (Box, error) {
	switch format {
	case FormatMidpoint:
		center := c.Center()
		return Box{center.X, center.Y, math.Abs(c.X2 - c.X1), math.Abs(c.Y2 - c.Y1)}, nil
	case FormatCorners:
		return Box{c.X1, c.Y1, c.X2, c.Y2}, nil
	default:
		return Box{}, invalidFormat(format)
	}
}

// Rectangle is a box described by its top-left corner and size
type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRect(x, y, width, height float64) Rectangle {
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

func NewRectFrom(rect image.Rectangle) Rectangle {
	return Rectangle{
		X:      float64(rect.Min.X),
		Y:      float64(rect.Min.Y),
		Width:  float64(rect.Dx()),
		Height: float64(rect.Dy()),
	}
}

// Corners returns top-left and bottom-right corners of rectangle
func (rect Rectangle) Corners() Corners {
	return Corners{
		X1: rect.X,
		Y1: rect.Y,
		X2: rect.X + rect.Width,
		Y2: rect.Y + rect.Height,
	}
}

// Midpoint returns rectangle encoded as (cx, cy, w, h)
func (rect Rectangle) Midpoint() Box {
	return Box{rect.X + rect.Width/2.0, rect.Y + rect.Height/2.0, rect.Width, rect.Height}
}

type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func NewPointFrom(point image.Point) Point {
	return Point{
		X: float64(point.X),
		Y: float64(point.Y),
	}
}
