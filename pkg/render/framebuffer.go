package render

import(
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/hdr-clut/pkg/emath"
)

// Framebuffer is the HDR offscreen render target: linear float RGB,
// unclamped. Implements the image.Image and hdr.Image interfaces, so
// the tmo operators and the RGBE codec can consume it directly.
type Framebuffer struct {
	Rect image.Rectangle
	Pix  []float64 // RGB triples, row-major
}

func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{
		Rect: image.Rect(0, 0, w, h),
		Pix:  make([]float64, w*h*3),
	}
}

// Implement image.Image
func (fb *Framebuffer)ColorModel() color.Model       { return hdrcolor.RGBModel }
func (fb *Framebuffer)Bounds() image.Rectangle       { return fb.Rect }
func (fb *Framebuffer)At(x, y int) color.Color       { return fb.HDRAt(x, y) }

// Implement hdr.Image
func (fb *Framebuffer)HDRAt(x, y int) hdrcolor.Color {
	v := fb.RGBAt(x, y)
	return hdrcolor.RGB{R: v[0], G: v[1], B: v[2]}
}
func (fb *Framebuffer)Size() int                     { return fb.Rect.Dx() * fb.Rect.Dy() }

func (fb *Framebuffer)offset(x, y int) int {
	return 3 * ((y-fb.Rect.Min.Y)*fb.Rect.Dx() + (x - fb.Rect.Min.X))
}

func (fb *Framebuffer)RGBAt(x, y int) emath.Vec3 {
	if !(image.Point{x, y}.In(fb.Rect)) {
		return emath.Vec3{}
	}
	i := fb.offset(x, y)
	return emath.Vec3{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]}
}

func (fb *Framebuffer)SetRGB(x, y int, v emath.Vec3) {
	if !(image.Point{x, y}.In(fb.Rect)) {
		return
	}
	i := fb.offset(x, y)
	fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2] = v[0], v[1], v[2]
}

func (fb *Framebuffer)Clear(v emath.Vec3) {
	for i := 0; i+2 < len(fb.Pix); i += 3 {
		fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2] = v[0], v[1], v[2]
	}
}

// Scaled returns a copy with every channel multiplied by k (the exposure)
func (fb *Framebuffer)Scaled(k float64) *Framebuffer {
	fb2 := &Framebuffer{Rect: fb.Rect, Pix: make([]float64, len(fb.Pix))}
	for i, v := range fb.Pix {
		fb2.Pix[i] = v * k
	}
	return fb2
}

func (fb *Framebuffer)String() string {
	max := 0.0
	for _, v := range fb.Pix {
		if v > max { max = v }
	}
	return fmt.Sprintf("Framebuffer[%dx%d, max %.3f]", fb.Rect.Dx(), fb.Rect.Dy(), max)
}

// FramebufferFromImage copies any image into a framebuffer. HDR images
// keep their float values; ordinary images are treated as sRGB and
// linearized.
func FramebufferFromImage(img image.Image) *Framebuffer {
	b := img.Bounds()
	fb := NewFramebuffer(b.Dx(), b.Dy())
	hdrImg, isHDR := img.(hdr.Image)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var v emath.Vec3
			if isHDR {
				r, g, bl, _ := hdrImg.HDRAt(x, y).HDRRGBA()
				v = emath.Vec3{r, g, bl}
			} else {
				r, g, bl, _ := img.At(x, y).RGBA()
				v = emath.Vec3{
					emath.GammaCompress_F64(float64(r) / float64(0xFFFF)),
					emath.GammaCompress_F64(float64(g) / float64(0xFFFF)),
					emath.GammaCompress_F64(float64(bl) / float64(0xFFFF)),
				}
			}
			fb.SetRGB(x-b.Min.X, y-b.Min.Y, v)
		}
	}
	return fb
}

// WriteToHDR outputs a Radiance RGBE image. You can load this into photoshop or other HDR tools.
func (fb *Framebuffer)WriteToHDR(filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("Framebuffer.WriteToHDR, open+w '%s': %w", filename, err)
	} else {
		defer writer.Close()
		err := rgbe.Encode(writer, fb)
		if err != nil {
			log.Printf("Framebuffer.WriteToHDR, encoding RGBE file: %v\n", err)
		}
		return err
	}
}

// LoadHDR reads a Radiance RGBE image into a framebuffer
func LoadHDR(filename string) (*Framebuffer, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r hdr '%s': %w", filename, err)
	}
	defer reader.Close()

	img, err := rgbe.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("rgbe decoding '%s': %w", filename, err)
	}
	return FramebufferFromImage(img), nil
}
