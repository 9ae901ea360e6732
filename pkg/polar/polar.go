// Package polar converts polar coordinates to cartesian points and builds arc
// paths. Angles are in degrees, measured clockwise from 12 o'clock, which is
// the convention shared by gauge and radar layouts.
package polar

import (
	"fmt"
	"math"

	"github.com/matzehuels/chartgeo/pkg/geom"
)

// ToCartesian returns the point at radius and angleDeg around (cx, cy).
// Zero degrees points straight up; 90 degrees points right.
func ToCartesian(cx, cy, radius, angleDeg float64) geom.Point {
	rad := Radians(angleDeg - 90)
	return geom.Point{
		X: cx + radius*math.Cos(rad),
		Y: cy + radius*math.Sin(rad),
	}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// DescribeArc returns an elliptical-arc path from endDeg back to startDeg.
//
// The large-arc flag is set iff the sweep exceeds 180 degrees; the sweep flag
// is always 0, so renderers trace the arc counter-clockwise from the end point.
func DescribeArc(cx, cy, radius, startDeg, endDeg float64) geom.ArcPath {
	from := ToCartesian(cx, cy, radius, endDeg)
	to := ToCartesian(cx, cy, radius, startDeg)
	large := 0
	if endDeg-startDeg > 180 {
		large = 1
	}
	return geom.ArcPath{D: fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f",
		from.X, from.Y, radius, radius, large, to.X, to.Y)}
}
