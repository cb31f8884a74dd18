package clut

import(
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/hdr-clut/pkg/emath"
)

// A Grade is the set of slider values used to build a custom table.
type Grade struct {
	Contrast    float64 `yaml:"contrast"`    // 1.0 is neutral, range [0.5, 2.0]
	Saturation  float64 `yaml:"saturation"`  // 1.0 is neutral, range [0.0, 2.0]
	Temperature float64 `yaml:"temperature"` // 0.0 is neutral, -1 cool .. +1 warm
	Tint        float64 `yaml:"tint"`        // 0.0 is neutral, -1 green .. +1 magenta
}

// How far a full slider pushes the red/blue or green channel
const tempTintScale = 0.1

func NeutralGrade() Grade {
	return Grade{Contrast: 1.0, Saturation: 1.0}
}

func (g Grade)IsNeutral() bool {
	return g == NeutralGrade()
}

func (g Grade)String() string {
	return fmt.Sprintf("contrast %.2f, saturation %.2f, temperature %+.2f, tint %+.2f",
		g.Contrast, g.Saturation, g.Temperature, g.Tint)
}

// Validate checks the sliders are inside the ranges the panel allowed.
func (g Grade)Validate() error {
	switch {
	case g.Contrast < 0.5 || g.Contrast > 2.0:
		return fmt.Errorf("contrast %.2f outside [0.5, 2.0]", g.Contrast)
	case g.Saturation < 0.0 || g.Saturation > 2.0:
		return fmt.Errorf("saturation %.2f outside [0.0, 2.0]", g.Saturation)
	case g.Temperature < -1.0 || g.Temperature > 1.0:
		return fmt.Errorf("temperature %.2f outside [-1.0, 1.0]", g.Temperature)
	case g.Tint < -1.0 || g.Tint > 1.0:
		return fmt.Errorf("tint %.2f outside [-1.0, 1.0]", g.Tint)
	}
	return nil
}

// Apply grades a single color: contrast about mid-grey, then the
// temperature/tint shift, then saturation. The result is clamped to [0,1].
func (g Grade)Apply(in emath.Vec3) emath.Vec3 {
	v := in
	for i := 0; i < 3; i++ {
		v[i] = emath.Clamp01((v[i]-0.5)*g.Contrast + 0.5)
	}

	v[0] += g.Temperature * tempTintScale
	v[2] -= g.Temperature * tempTintScale
	v[1] -= g.Tint * tempTintScale

	c := colorful.Color{R: v[0], G: v[1], B: v[2]}.Clamped()
	if g.Saturation != 1.0 {
		h, s, l := c.Hsl()
		c = colorful.Hsl(h, emath.Clamp01(s*g.Saturation), l)
	}

	return emath.Vec3{emath.Clamp01(c.R), emath.Clamp01(c.G), emath.Clamp01(c.B)}
}

// ApplyGrade returns a graded copy of the table; the input is untouched.
func ApplyGrade(c CLUT, g Grade) CLUT {
	out := c.Clone()
	out.Map(g.Apply)
	return out
}

// Map runs f over every entry, in place.
func (c *CLUT)Map(f func(emath.Vec3) emath.Vec3) {
	for i := 0; 3*i+2 < len(c.Data); i++ {
		rgb := c.At(i)
		v := f(emath.Vec3{float64(rgb[0]), float64(rgb[1]), float64(rgb[2])})
		c.Set(i, [3]float32{float32(v[0]), float32(v[1]), float32(v[2])})
	}
}
