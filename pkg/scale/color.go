package scale

import (
	"math"

	"github.com/matzehuels/chartgeo/pkg/geom"
)

// Gradient is a two-stop color ramp.
type Gradient struct {
	Name string
	Low  geom.ColorRGB
	High geom.ColorRGB
}

// Named gradients.
var (
	// BlueIntensity fades white into blue: R and G fall from 255 to 0, B stays 255.
	BlueIntensity = Gradient{
		Name: "blue",
		Low:  geom.ColorRGB{R: 255, G: 255, B: 255},
		High: geom.ColorRGB{R: 0, G: 0, B: 255},
	}

	// RedBlue runs from blue to red: R rises 0..255, B falls 255..0, G stays 0.
	RedBlue = Gradient{
		Name: "red-blue",
		Low:  geom.ColorRGB{R: 0, G: 0, B: 255},
		High: geom.ColorRGB{R: 255, G: 0, B: 0},
	}
)

// GradientByName returns the named gradient, falling back to BlueIntensity.
func GradientByName(name string) Gradient {
	if name == RedBlue.Name {
		return RedBlue
	}
	return BlueIntensity
}

// At returns the gradient color at ratio.
func (g Gradient) At(ratio float64) geom.ColorRGB {
	return ColorGradient(ratio, g.Low, g.High)
}

// ColorGradient interpolates each channel linearly between low and high.
// The ratio is clamped to [0, 1] first.
func ColorGradient(ratio float64, low, high geom.ColorRGB) geom.ColorRGB {
	t := Clamp01(ratio)
	return geom.ColorRGB{
		R: lerp8(low.R, high.R, t),
		G: lerp8(low.G, high.G, t),
		B: lerp8(low.B, high.B, t),
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
