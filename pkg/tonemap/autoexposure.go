package tonemap

import(
	"github.com/codahale/hdrhistogram"
	"github.com/mdouchement/hdr"

	"github.com/abworrall/hdr-clut/pkg/emath"
)

const(
	// The exposure slider range
	MinExposure = 0.1
	MaxExposure = 5.0

	DefaultKey = 0.18 // middle grey

	// Luminances are recorded in the histogram as integer multiples of this
	lumQuantum = 1e-4
	lumMax     = 1e6
)

// Meter records the luminance of every pixel into a histogram. The
// histogram keeps 3 significant figures across the whole range, which
// is plenty for picking an exposure.
func Meter(img hdr.Image) *hdrhistogram.Histogram {
	highest := int64(lumMax / lumQuantum)
	h := hdrhistogram.New(1, highest, 3)
	b := img.Bounds()

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.HDRAt(x, y).HDRRGBA()
			lum := emath.Vec3{r, g, bl}.Luma()
			v := int64(lum / lumQuantum)
			if v < 1 {
				v = 1
			} else if v > highest {
				v = highest
			}
			h.RecordValue(v)
		}
	}

	return h
}

// LuminanceAtPercentile reads a luminance back out of a meter histogram
func LuminanceAtPercentile(h *hdrhistogram.Histogram, pct float64) float64 {
	return float64(h.ValueAtQuantile(pct)) * lumQuantum
}

// AutoExposure picks the exposure that maps the scene's median
// luminance onto key, clamped to the slider range.
func AutoExposure(img hdr.Image, key float64) float64 {
	h := Meter(img)
	if h.TotalCount() == 0 {
		return 1.0
	}
	median := LuminanceAtPercentile(h, 50)
	return emath.Clamp(key/median, MinExposure, MaxExposure)
}
