// Package scale maps values between numeric domains and onto colors.
//
// All functions guard against zero-span domains: when domainMax equals
// domainMin the span is taken as 1, so degenerate input yields the low end of
// the range instead of NaN or Inf propagating into coordinates.
package scale

import "math"

// Span returns max-min, or 1 when the range is empty.
func Span(min, max float64) float64 {
	if s := max - min; s != 0 && !math.IsNaN(s) {
		return s
	}
	return 1
}

// Ratio returns the position of value within [min, max] as (value-min)/span.
// The result is not clamped. A zero-span domain maps every value to 0.
func Ratio(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (value - min) / Span(min, max)
}

// Linear maps value from [domainMin, domainMax] onto [rangeMin, rangeMax].
//
// The endpoints map exactly: Linear(domainMin, ...) == rangeMin and
// Linear(domainMax, ...) == rangeMax. Values outside the domain extrapolate.
func Linear(value, domainMin, domainMax, rangeMin, rangeMax float64) float64 {
	r := Ratio(value, domainMin, domainMax)
	switch r {
	case 0:
		return rangeMin
	case 1:
		return rangeMax
	}
	return rangeMin + r*(rangeMax-rangeMin)
}

// Clamp01 limits x to [0, 1]. NaN maps to 0.
func Clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
