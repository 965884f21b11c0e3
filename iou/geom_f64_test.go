package iou

import (
	"image"
	"math"
	"testing"
)

const (
	eps = 0.00001
)

func TestMidpointToCorners(t *testing.T) {
	box := Box{5, 5, 10, 10}
	corners, err := box.Corners(FormatMidpoint)
	if err != nil {
		t.Fatal(err)
	}
	correctAnswer := Corners{X1: 0, Y1: 0, X2: 10, Y2: 10}
	if corners != correctAnswer {
		t.Errorf("Wrong answer: %v, correct answer: %v", corners, correctAnswer)
	}
}

func TestCornersPassThrough(t *testing.T) {
	box := Box{10, 20, 1, 2}
	corners, err := box.Corners(FormatCorners)
	if err != nil {
		t.Fatal(err)
	}
	correctAnswer := Corners{X1: 10, Y1: 20, X2: 1, Y2: 2}
	if corners != correctAnswer {
		t.Errorf("Wrong answer: %v, correct answer: %v", corners, correctAnswer)
	}
}

func TestCornersInvalidFormat(t *testing.T) {
	_, err := Box{0, 0, 1, 1}.Corners(BoxFormat(42))
	if err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestCornersArea(t *testing.T) {
	ordered := Corners{X1: 0, Y1: 0, X2: 10, Y2: 5}
	unordered := Corners{X1: 10, Y1: 5, X2: 0, Y2: 0}
	if math.Abs(ordered.Area()-50) > eps {
		t.Errorf("Expected area 50, got %f", ordered.Area())
	}
	if math.Abs(unordered.Area()-50) > eps {
		t.Errorf("Expected area 50 for unordered corners, got %f", unordered.Area())
	}
}

func TestCornersBoxRoundTrip(t *testing.T) {
	corners := Corners{X1: 2, Y1: 4, X2: 12, Y2: 24}
	midpoint, err := corners.Box(FormatMidpoint)
	if err != nil {
		t.Fatal(err)
	}
	correctAnswer := Box{7, 14, 10, 20}
	if midpoint != correctAnswer {
		t.Errorf("Wrong answer: %v, correct answer: %v", midpoint, correctAnswer)
	}
	back, err := midpoint.Corners(FormatMidpoint)
	if err != nil {
		t.Fatal(err)
	}
	if back != corners {
		t.Errorf("Expected %v, got %v", corners, back)
	}
}

func TestRectangleConversions(t *testing.T) {
	rect := NewRectFrom(image.Rect(10, 20, 40, 60))
	if rect != NewRect(10, 20, 30, 40) {
		t.Errorf("Unexpected rectangle %v", rect)
	}
	if rect.Corners() != (Corners{X1: 10, Y1: 20, X2: 40, Y2: 60}) {
		t.Errorf("Unexpected corners %v", rect.Corners())
	}
	if rect.Midpoint() != (Box{25, 40, 30, 40}) {
		t.Errorf("Unexpected midpoint box %v", rect.Midpoint())
	}
	if NewPointFrom(image.Pt(3, 4)) != NewPoint(3, 4) {
		t.Error("Point conversion mismatch")
	}
}
