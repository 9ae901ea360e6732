package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxDimension bounds canvas widths and heights accepted from callers.
const MaxDimension = 100_000

// ValidateFormat checks that name is one of the allowed output formats.
// Matching is case-sensitive; callers normalize first.
func ValidateFormat(name string, allowed []string) error {
	if name == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, name) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", name, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateDimension checks a canvas dimension. Zero means "use the default"
// and is accepted; negative, non-finite or oversized values are rejected.
func ValidateDimension(name string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	case v < 0:
		return New(ErrCodeInvalidInput, "%s cannot be negative", name)
	case v > MaxDimension:
		return New(ErrCodeInvalidInput, "%s too large (max %d)", name, MaxDimension)
	}
	return nil
}

// ValidateCount checks a count option such as a number of ticks or samples.
// Zero and negative values mean "use the default" and are accepted.
func ValidateCount(name string, v, limit int) error {
	if v > limit {
		return New(ErrCodeInvalidInput, "%s too large (max %d)", name, limit)
	}
	return nil
}

// ValidateColor checks that s is a "#rgb" or "#rrggbb" color.
func ValidateColor(s string) error {
	if _, err := colorful.Hex(s); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid color %q", s)
	}
	return nil
}

// ValidateName validates a label coming from user data (series, node and
// indicator names). It rejects control characters and overly long names,
// which would otherwise end up verbatim in SVG and DOT output.
func ValidateName(name string) error {
	const maxNameLength = 256
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}
	return nil
}
