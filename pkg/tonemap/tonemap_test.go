package tonemap

import(
	"image"
	"testing"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/hdr-clut/pkg/emath"
)

func gradient(f func(x, y int) hdrcolor.RGB) *hdr.RGB {
	img := hdr.NewRGB(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, f(x, y))
		}
	}
	return img
}

func uniform(v float64) *hdr.RGB {
	return gradient(func(x, y int) hdrcolor.RGB { return hdrcolor.RGB{R: v, G: v, B: v} })
}

func TestReinhardPixel(t *testing.T) {
	assert.Equal(t, emath.Vec3{0, 0.5, 0.8}, ReinhardPixel(emath.Vec3{0, 1, 4}))
	assert.Equal(t, emath.Vec3{0, 0, 0}, ReinhardPixel(emath.Vec3{-1, 0, 0}))
}

func TestACESPixel(t *testing.T) {
	v := ACESPixel(emath.Vec3{0, 0.18, 100})
	assert.Equal(t, 0.0, v[0])
	assert.InDelta(t, 0.267, v[1], 0.01)
	assert.Equal(t, 1.0, v[2])

	// Monotonic
	prev := 0.0
	for x := 0.0; x < 10; x += 0.1 {
		y := acesApprox(x)
		assert.GreaterOrEqual(t, y, prev)
		prev = y
	}
}

func TestLookup(t *testing.T) {
	for _, name := range List() {
		assert.True(t, IsKnown(name), name)
	}
	assert.True(t, IsPixelOperator(Reinhard))
	assert.True(t, IsPixelOperator(ACES))
	assert.False(t, IsPixelOperator("durand"))
	assert.False(t, IsKnown("nope"))

	_, err := Setup("nope", uniform(1))
	assert.Error(t, err)
}

func TestImageOperators(t *testing.T) {
	in := gradient(func(x, y int) hdrcolor.RGB {
		v := float64(x+1) / 4
		return hdrcolor.RGB{R: v, G: v * 0.8, B: v * 0.5}
	})

	for _, name := range ImageOperators {
		img, err := ApplyImageOperator(name, in)
		require.NoError(t, err, name)
		assert.Equal(t, in.Bounds().Size(), img.Bounds().Size(), name)
	}
}

func TestAutoExposure(t *testing.T) {
	assert.InDelta(t, 0.5, AutoExposure(uniform(0.36), DefaultKey), 0.005)
	assert.Equal(t, MinExposure, AutoExposure(uniform(100), DefaultKey))
	assert.Equal(t, MaxExposure, AutoExposure(uniform(0.001), DefaultKey))
	assert.Equal(t, MaxExposure, AutoExposure(uniform(0), DefaultKey), "black frames don't divide by zero")
}

func TestMeter(t *testing.T) {
	h := Meter(uniform(2.0))
	assert.Equal(t, int64(16*8), h.TotalCount())
	assert.InDelta(t, 2.0, LuminanceAtPercentile(h, 99), 0.01)
}

func TestEV(t *testing.T) {
	assert.Equal(t, 1.0, EV(2))
	assert.Equal(t, -1.0, EV(0.5))
}
