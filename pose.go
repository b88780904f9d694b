package main

import (
	"fmt"
	"math"
)

// Pose is a waypoint: position in metres and heading in radians.
// Heading is stored exactly as given, it is never normalised.
type Pose struct {
	X       float64
	Y       float64
	Heading float64
}

func NewPose(x, y, heading float64) Pose {
	return Pose{X: x, Y: y, Heading: heading}
}

func (p Pose) WithX(x float64) Pose {
	p.X = x
	return p
}

func (p Pose) WithY(y float64) Pose {
	p.Y = y
	return p
}

func (p Pose) WithHeading(heading float64) Pose {
	p.Heading = heading
	return p
}

// Field returns the value of one coordinate.
func (p Pose) Field(f Field) float64 {
	switch f {
	case FieldX:
		return p.X
	case FieldY:
		return p.Y
	default:
		return p.Heading
	}
}

// IsFinite reports whether all three coordinates are finite.
func (p Pose) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Heading)
}

func (p Pose) String() string {
	return fmt.Sprintf("(%g, %g, %g rad)", p.X, p.Y, p.Heading)
}

// DisplayValue rounds to three decimals for the table. Ties go to even.
func DisplayValue(v float64) float64 {
	return math.RoundToEven(v*displayScale) / displayScale
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
