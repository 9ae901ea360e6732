package scale

import (
	"fmt"

	"github.com/matzehuels/chartgeo/pkg/geom"
)

// Band is one of the three severity zones used by threshold coloring.
type Band int

const (
	BandLow Band = iota
	BandMid
	BandHigh
)

// Band boundaries as a fraction of the value range.
const (
	lowCutoff = 0.3
	midCutoff = 0.7
)

var bandColors = [...]geom.ColorRGB{
	BandLow:  geom.MustHex("#91cc75"),
	BandMid:  geom.MustHex("#fac858"),
	BandHigh: geom.MustHex("#ee6666"),
}

var bandNames = [...]string{BandLow: "low", BandMid: "mid", BandHigh: "high"}

// ThresholdColor classifies value within [min, max]: below 30% is BandLow,
// below 70% is BandMid, anything else BandHigh.
func ThresholdColor(value, min, max float64) Band {
	switch p := Ratio(value, min, max); {
	case p < lowCutoff:
		return BandLow
	case p < midCutoff:
		return BandMid
	default:
		return BandHigh
	}
}

// Color returns the default color of the band.
func (b Band) Color() geom.ColorRGB {
	if b < BandLow || b > BandHigh {
		return bandColors[BandLow]
	}
	return bandColors[b]
}

// String returns "low", "mid" or "high".
func (b Band) String() string {
	if b < BandLow || b > BandHigh {
		return "unknown"
	}
	return bandNames[b]
}

// MarshalText encodes the band by name.
func (b Band) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText decodes a band name written by MarshalText.
func (b *Band) UnmarshalText(text []byte) error {
	for i, name := range bandNames {
		if string(text) == name {
			*b = Band(i)
			return nil
		}
	}
	return fmt.Errorf("unknown band %q", text)
}
