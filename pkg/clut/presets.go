package clut

import(
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/hdr-clut/pkg/emath"
)

const(
	DefaultSize1D = 256
	DefaultSize3D = 32
)

// The classic sepia matrix
var sepiaMatrix = emath.Mat3{
	0.393, 0.769, 0.189,
	0.349, 0.686, 0.168,
	0.272, 0.534, 0.131,
}

// PresetName gives the library key for a preset, e.g. "Sepia (3D)"
func PresetName(base string, is3D bool) string {
	if is3D {
		return base + " (3D)"
	}
	return base + " (1D)"
}

// Build1D fills a 1D table by evaluating f at each input level in [0,1].
func Build1D(name string, size int, f func(x float64) emath.Vec3) CLUT {
	c := CLUT{Name: name, Size: size, Data: make([]float32, size*3)}
	for i := 0; i < size; i++ {
		v := f(level(i, size))
		c.Set(i, [3]float32{float32(v[0]), float32(v[1]), float32(v[2])})
	}
	return c
}

// Build3D fills a 3D table by evaluating f at each lattice point.
func Build3D(name string, size int, f func(rgb emath.Vec3) emath.Vec3) CLUT {
	c := CLUT{Name: name, Size: size, Is3D: true, Data: make([]float32, size*size*size*3)}
	for b := 0; b < size; b++ {
		for g := 0; g < size; g++ {
			for r := 0; r < size; r++ {
				v := f(emath.Vec3{level(r, size), level(g, size), level(b, size)})
				c.Set(c.Index3D(r, g, b), [3]float32{float32(v[0]), float32(v[1]), float32(v[2])})
			}
		}
	}
	return c
}

func level(i, size int) float64 {
	if size < 2 {
		return 0
	}
	return float64(i) / float64(size-1)
}

func sCurve(x float64) float64 {
	if x < 0.5 {
		return 0.5 * math.Pow(2*x, 1.6)
	}
	return 1.0 - 0.5*math.Pow(2-2*x, 1.6)
}

func clampVec(v emath.Vec3) emath.Vec3 {
	v.FloorAt(0.0)
	v.CeilingAt(1.0)
	return v
}

// 1D presets

func Neutral1D(size int) CLUT {
	return Build1D(PresetName("Neutral", false), size, func(x float64) emath.Vec3 {
		return emath.Vec3{x, x, x}
	})
}

func Warm1D(size int) CLUT {
	return Build1D(PresetName("Warm", false), size, func(x float64) emath.Vec3 {
		return emath.Vec3{math.Pow(x, 0.85), x, math.Pow(x, 1.2)}
	})
}

func Cool1D(size int) CLUT {
	return Build1D(PresetName("Cool", false), size, func(x float64) emath.Vec3 {
		return emath.Vec3{math.Pow(x, 1.2), x, math.Pow(x, 0.85)}
	})
}

func HighContrast1D(size int) CLUT {
	return Build1D(PresetName("High Contrast", false), size, func(x float64) emath.Vec3 {
		s := sCurve(x)
		return emath.Vec3{s, s, s}
	})
}

// SepiaTone1D can't mix channels, so it approximates sepia with per-channel curves
func SepiaTone1D(size int) CLUT {
	return Build1D(PresetName("Sepia Tone", false), size, func(x float64) emath.Vec3 {
		return emath.Vec3{math.Pow(x, 0.8), 0.95 * math.Pow(x, 0.95), 0.8 * math.Pow(x, 1.2)}
	})
}

// 3D presets

func Neutral3D(size int) CLUT {
	return Build3D(PresetName("Neutral", true), size, func(rgb emath.Vec3) emath.Vec3 {
		return rgb
	})
}

func Warm3D(size int) CLUT {
	g := Grade{Contrast: 1.0, Saturation: 1.1, Temperature: 0.6}
	return Build3D(PresetName("Warm", true), size, g.Apply)
}

func Cool3D(size int) CLUT {
	g := Grade{Contrast: 1.0, Saturation: 1.0, Temperature: -0.6}
	return Build3D(PresetName("Cool", true), size, g.Apply)
}

func HighContrast3D(size int) CLUT {
	return Build3D(PresetName("High Contrast", true), size, func(rgb emath.Vec3) emath.Vec3 {
		return emath.Vec3{sCurve(rgb[0]), sCurve(rgb[1]), sCurve(rgb[2])}
	})
}

func Sepia3D(size int) CLUT {
	return Build3D(PresetName("Sepia", true), size, func(rgb emath.Vec3) emath.Vec3 {
		return clampVec(sepiaMatrix.Apply(rgb))
	})
}

func Desaturated3D(size int) CLUT {
	m := emath.SaturationMatrix(0.3)
	return Build3D(PresetName("Desaturated", true), size, func(rgb emath.Vec3) emath.Vec3 {
		return clampVec(m.Apply(rgb))
	})
}

// Vintage3D: faded blacks, muted saturation, pulled towards a warm paper tone
func Vintage3D(size int) CLUT {
	paper := colorful.Color{R: 1.0, G: 0.9, B: 0.7}
	return Build3D(PresetName("Vintage", true), size, func(rgb emath.Vec3) emath.Vec3 {
		c := colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}
		h, s, l := c.Hsl()
		c = colorful.Hsl(h, s*0.6, 0.08+0.84*l).BlendLab(paper, 0.12).Clamped()
		return emath.Vec3{c.R, c.G, c.B}
	})
}

var(
	presets1D = []func(int) CLUT{Neutral1D, Warm1D, Cool1D, HighContrast1D, SepiaTone1D}
	presets3D = []func(int) CLUT{Neutral3D, Warm3D, Cool3D, HighContrast3D, Sepia3D, Desaturated3D, Vintage3D}
)

func CreatePreset1DCLUTs(lib Library) { AddPresets1D(lib, DefaultSize1D) }
func CreatePreset3DCLUTs(lib Library) { AddPresets3D(lib, DefaultSize3D) }

// AddPresets1D fills lib with every 1D preset, at the given size
func AddPresets1D(lib Library, size int) {
	for _, f := range presets1D {
		lib.Put(f(size))
	}
}

func AddPresets3D(lib Library, size int) {
	for _, f := range presets3D {
		lib.Put(f(size))
	}
}
