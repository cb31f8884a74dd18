package render

import(
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/hdr-clut/pkg/clut"
	"github.com/abworrall/hdr-clut/pkg/emath"
)

const(
	previewHeightFrac = 0.08 // CLUT strip height, as a fraction of the frame height
	previewMargin     = 8.0
)

// Overlay draws the on-screen extras (split divider, CLUT preview) over a finished frame
type Overlay struct {
	dc *gg.Context
}

func NewOverlay(img image.Image) *Overlay {
	return &Overlay{dc: gg.NewContextForImage(img)}
}

func (ov *Overlay)Image() image.Image { return ov.dc.Image() }

func (ov *Overlay)DrawSplit(x int) {
	h := float64(ov.dc.Height())
	ov.dc.SetRGB(1, 1, 1)
	ov.dc.SetLineWidth(2)
	ov.dc.DrawLine(float64(x), 0, float64(x), h)
	ov.dc.Stroke()
}

// DrawCLUTPreview draws a strip along the bottom of the frame showing
// what the table does: the top half is a grey ramp pushed through it,
// the bottom half a hue sweep.
func (ov *Overlay)DrawCLUTPreview(lut clut.TextureData, label string) {
	w := float64(ov.dc.Width())
	h := float64(ov.dc.Height())
	stripH := math.Max(8, math.Round(h*previewHeightFrac))
	stripW := w - 2*previewMargin
	x0 := previewMargin
	y0 := h - stripH - previewMargin
	if stripW < 2 {
		return
	}

	n := int(stripW)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)

		grey := lut.Sample(emath.Vec3{t, t, t})
		ov.dc.SetRGB(emath.Clamp01(grey[0]), emath.Clamp01(grey[1]), emath.Clamp01(grey[2]))
		ov.dc.DrawRectangle(x0+float64(i), y0, 1, stripH/2)
		ov.dc.Fill()

		hue := colorful.Hsv(360.0*t, 1.0, 1.0)
		c := lut.Sample(emath.Vec3{hue.R, hue.G, hue.B})
		ov.dc.SetRGB(emath.Clamp01(c[0]), emath.Clamp01(c[1]), emath.Clamp01(c[2]))
		ov.dc.DrawRectangle(x0+float64(i), y0+stripH/2, 1, stripH/2)
		ov.dc.Fill()
	}

	ov.dc.SetRGB(1, 1, 1)
	ov.dc.SetLineWidth(1)
	ov.dc.DrawRectangle(x0, y0, stripW, stripH)
	ov.dc.Stroke()

	if label != "" {
		ov.dc.DrawString(label, x0, y0-4)
	}
}
