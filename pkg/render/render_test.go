package render

import(
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/hdr-clut/pkg/clut"
	"github.com/abworrall/hdr-clut/pkg/emath"
)

func rampBuffer(w, h int) *Framebuffer {
	fb := NewFramebuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := 4 * float64(x) / float64(w)
			fb.SetRGB(x, y, emath.Vec3{v, v * 0.5, float64(y) / float64(h)})
		}
	}
	return fb
}

type fixture struct {
	be   *Software
	pass Pass
}

func newFixture(t *testing.T, lut clut.CLUT) fixture {
	t.Helper()
	be := NewSoftware()
	buf, err := be.CreateBuffer(rampBuffer(32, 16))
	require.NoError(t, err)
	tex, err := be.CreateTexture(lut.Pack())
	require.NoError(t, err)

	p := Pass{HDRBuffer: buf, Exposure: 1, Tonemapper: "reinhard", ApplyCLUT: true, CLUTStrength: 1}
	if lut.Is3D {
		p.LUT3D, p.Use3D = tex, true
	} else {
		p.LUT1D = tex
	}
	return fixture{be: be, pass: p}
}

func maxDiff(a, b image.Image) uint32 {
	var m uint32
	bnd := a.Bounds()
	for y := bnd.Min.Y; y < bnd.Max.Y; y++ {
		for x := bnd.Min.X; x < bnd.Max.X; x++ {
			r1, g1, b1, _ := a.At(x, y).RGBA()
			r2, g2, b2, _ := b.At(x, y).RGBA()
			for _, d := range []int64{int64(r1) - int64(r2), int64(g1) - int64(g2), int64(b1) - int64(b2)} {
				if d < 0 { d = -d }
				if uint32(d) > m { m = uint32(d) }
			}
		}
	}
	return m
}

func TestResources(t *testing.T) {
	be := NewSoftware()

	_, err := be.CreateTexture(clut.TextureData{Width: 2, Height: 1, Depth: 1, Pix: make([]float32, 4)})
	assert.Error(t, err, "short pixel data")
	_, err = be.CreateTexture(clut.TextureData{})
	assert.Error(t, err)
	_, err = be.CreateBuffer(nil)
	assert.Error(t, err)

	h1, err := be.CreateTexture(clut.Neutral1D(4).Pack())
	require.NoError(t, err)
	h2, err := be.CreateBuffer(NewFramebuffer(2, 2))
	require.NoError(t, err)
	assert.NotEqual(t, Handle(0), h1)
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, 2, be.NumResources())

	require.NoError(t, be.Destroy(h1))
	assert.Error(t, be.Destroy(h1), "double destroy")
	require.NoError(t, be.Destroy(h2))
	assert.Equal(t, 0, be.NumResources())
}

func TestSubmitMissingResources(t *testing.T) {
	f := newFixture(t, clut.Neutral1D(16))

	p := f.pass
	p.HDRBuffer = 99
	_, err := f.be.Submit(p)
	assert.Error(t, err)

	p = f.pass
	p.Use3D = true // no 3D texture was made
	_, err = f.be.Submit(p)
	assert.Error(t, err)

	p.ApplyCLUT = false
	_, err = f.be.Submit(p)
	assert.NoError(t, err, "the LUT isn't needed when it isn't applied")
}

func TestSubmitReinhard(t *testing.T) {
	be := NewSoftware()
	fb := NewFramebuffer(1, 1)
	fb.SetRGB(0, 0, emath.Vec3{1, 0, 3})
	buf, err := be.CreateBuffer(fb)
	require.NoError(t, err)

	img, err := be.Submit(Pass{HDRBuffer: buf, Exposure: 1, Tonemapper: "reinhard"})
	require.NoError(t, err)

	// 1 -> 0.5 -> sRGB, 3 -> 0.75 -> sRGB
	c := img.At(0, 0).(color.RGBA64)
	assert.InDelta(t, emath.GammaExpand_F64(0.5), float64(c.R)/0xFFFF, 1e-4)
	assert.Equal(t, uint16(0), c.G)
	assert.InDelta(t, emath.GammaExpand_F64(0.75), float64(c.B)/0xFFFF, 1e-4)

	img, err = be.Submit(Pass{HDRBuffer: buf, Exposure: 3, Tonemapper: "reinhard"})
	require.NoError(t, err)
	c = img.At(0, 0).(color.RGBA64)
	assert.InDelta(t, emath.GammaExpand_F64(0.75), float64(c.R)/0xFFFF, 1e-4, "exposure scales before the curve")
}

func TestNeutralCLUTIsIdentity(t *testing.T) {
	for _, lut := range []clut.CLUT{clut.Neutral1D(256), clut.Neutral3D(17)} {
		f := newFixture(t, lut)
		graded, err := f.be.Submit(f.pass)
		require.NoError(t, err)

		p := f.pass
		p.ApplyCLUT = false
		plain, err := f.be.Submit(p)
		require.NoError(t, err)

		assert.LessOrEqual(t, maxDiff(plain, graded), uint32(2), lut.Name)
	}
}

func TestStrength(t *testing.T) {
	f := newFixture(t, clut.Sepia3D(8))

	p := f.pass
	p.CLUTStrength = 0
	none, err := f.be.Submit(p)
	require.NoError(t, err)

	p.ApplyCLUT = false
	plain, err := f.be.Submit(p)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), maxDiff(plain, none))

	full, err := f.be.Submit(f.pass)
	require.NoError(t, err)
	assert.Greater(t, maxDiff(plain, full), uint32(1000))
}

func TestImageOperatorPass(t *testing.T) {
	f := newFixture(t, clut.Neutral1D(32))
	p := f.pass
	p.Tonemapper = "drago03"
	img, err := f.be.Submit(p)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 16), img.Bounds())

	p.Tonemapper = "nope"
	_, err = f.be.Submit(p)
	assert.Error(t, err)
}

func TestOverlays(t *testing.T) {
	be := NewSoftware()
	buf, err := be.CreateBuffer(rampBuffer(200, 120))
	require.NoError(t, err)
	tex, err := be.CreateTexture(clut.Warm3D(8).Pack())
	require.NoError(t, err)

	p := Pass{HDRBuffer: buf, LUT3D: tex, Use3D: true, Exposure: 1, Tonemapper: "aces",
		ApplyCLUT: true, CLUTStrength: 0.7, SplitScreen: true, SplitPosition: 0.5,
		ShowCLUT: true, Label: "Warm (3D)"}
	img, err := be.Submit(p)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 120), img.Bounds())

	// The divider is white, top to bottom
	r, g, b, _ := img.At(100, 5).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})
}

func TestPass(t *testing.T) {
	p := Pass{LUT1D: 1, LUT3D: 2}
	assert.Equal(t, Handle(1), p.LUTHandle())
	p.Use3D = true
	assert.Equal(t, Handle(2), p.LUTHandle())
	assert.Contains(t, p.String(), "tonemapper")
}

func TestFramebuffer(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	fb.SetRGB(3, 1, emath.Vec3{2, 3, 4})
	fb.SetRGB(9, 9, emath.Vec3{1, 1, 1}) // ignored

	assert.Equal(t, emath.Vec3{2, 3, 4}, fb.RGBAt(3, 1))
	assert.Equal(t, emath.Vec3{}, fb.RGBAt(-1, 0))
	r, _, _, _ := fb.HDRAt(3, 1).HDRRGBA()
	assert.Equal(t, 2.0, r)
	assert.Equal(t, 8, fb.Size())
	assert.Equal(t, emath.Vec3{4, 6, 8}, fb.Scaled(2).RGBAt(3, 1))
	assert.Equal(t, emath.Vec3{2, 3, 4}, fb.RGBAt(3, 1), "Scaled copies")

	white := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range white.Pix {
		white.Pix[i] = 0xff
	}
	assert.Equal(t, emath.Vec3{1, 1, 1}, FramebufferFromImage(white).RGBAt(1, 1))
}

func TestHDRRoundTrip(t *testing.T) {
	fb := rampBuffer(16, 4)
	path := filepath.Join(t.TempDir(), "ramp.hdr")
	require.NoError(t, fb.WriteToHDR(path))

	back, err := LoadHDR(path)
	require.NoError(t, err)
	require.Equal(t, fb.Bounds(), back.Bounds())
	for i := 0; i < len(fb.Pix); i += 3 {
		// RGBE shares one exponent per pixel, with 8 bits of mantissa each
		tol := math.Max(fb.Pix[i], math.Max(fb.Pix[i+1], fb.Pix[i+2]))/128 + 1e-3
		for j := i; j < i+3; j++ {
			assert.InDelta(t, fb.Pix[j], back.Pix[j], tol)
		}
	}

	_, err = LoadHDR(filepath.Join(t.TempDir(), "nope.hdr"))
	assert.Error(t, err)
}

func TestWriteImage(t *testing.T) {
	img := image.NewRGBA64(image.Rect(0, 0, 4, 4))
	dir := t.TempDir()
	assert.NoError(t, WriteImage(img, filepath.Join(dir, "out.png")))
	assert.NoError(t, WriteImage(img, filepath.Join(dir, "out.tif")))
	assert.Error(t, WriteImage(img, filepath.Join(dir, "out.gif")))
}
