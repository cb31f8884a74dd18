package render

import(
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/abworrall/hdr-clut/pkg/clut"
	"github.com/abworrall/hdr-clut/pkg/emath"
	"github.com/abworrall/hdr-clut/pkg/tonemap"
)

// Software is a Backend that runs the post-process pass on the CPU.
// Texture sampling mimics GPU linear filtering with clamp-to-edge.
// Not safe for concurrent use; like a GL context, it belongs to one
// render loop.
type Software struct {
	textures  map[Handle]clut.TextureData
	buffers   map[Handle]*Framebuffer
	next      Handle
	Verbosity int
}

func NewSoftware() *Software {
	return &Software{
		textures: map[Handle]clut.TextureData{},
		buffers:  map[Handle]*Framebuffer{},
	}
}

func (s *Software)newHandle() Handle {
	s.next++
	return s.next
}

// NumResources is how many textures and buffers are live, for leak checks
func (s *Software)NumResources() int { return len(s.textures) + len(s.buffers) }

func (s *Software)CreateTexture(td clut.TextureData) (Handle, error) {
	if td.Width < 1 || td.Height < 1 || td.Depth < 1 {
		return 0, fmt.Errorf("CreateTexture: bad dims %dx%dx%d", td.Width, td.Height, td.Depth)
	}
	if want := td.Width * td.Height * td.Depth * 4; len(td.Pix) != want {
		return 0, fmt.Errorf("CreateTexture: %dx%dx%d wants %d floats, got %d", td.Width, td.Height, td.Depth, want, len(td.Pix))
	}
	h := s.newHandle()
	s.textures[h] = td // we own the slice from here on
	return h, nil
}

func (s *Software)CreateBuffer(fb *Framebuffer) (Handle, error) {
	if fb == nil || fb.Size() == 0 {
		return 0, fmt.Errorf("CreateBuffer: empty framebuffer")
	}
	h := s.newHandle()
	s.buffers[h] = fb
	return h, nil
}

func (s *Software)Destroy(h Handle) error {
	if _, ok := s.textures[h]; ok {
		delete(s.textures, h)
		return nil
	}
	if _, ok := s.buffers[h]; ok {
		delete(s.buffers, h)
		return nil
	}
	return fmt.Errorf("Destroy: no resource %d", h)
}

// Submit runs the post-process pass, producing the LDR output frame:
//   hdr * exposure -> tonemap -> sRGB encode -> CLUT -> mix by strength
func (s *Software)Submit(p Pass) (image.Image, error) {
	fb, ok := s.buffers[p.HDRBuffer]
	if !ok {
		return nil, fmt.Errorf("Submit: no HDR buffer %d", p.HDRBuffer)
	}

	var lut clut.TextureData
	if p.ApplyCLUT {
		if lut, ok = s.textures[p.LUTHandle()]; !ok {
			return nil, fmt.Errorf("Submit: no LUT texture %d", p.LUTHandle())
		}
	}

	if s.Verbosity > 0 {
		log.Printf("Submit: %s over %s", p, fb)
	}

	ldr, err := toneMap(fb, p.Exposure, p.Tonemapper)
	if err != nil {
		return nil, err
	}

	b := fb.Bounds()
	out := image.NewRGBA64(b)
	splitX := b.Min.X + int(emath.Clamp01(p.SplitPosition) * float64(b.Dx()))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := ldr(x, y)
			if p.ApplyCLUT && !(p.SplitScreen && x < splitX) {
				graded := lut.Sample(v)
				k := emath.Clamp01(p.CLUTStrength)
				for i := 0; i < 3; i++ {
					v[i] = emath.Lerp(v[i], graded[i], k)
				}
			}
			out.SetRGBA64(x, y, toRGBA64(v))
		}
	}

	if !p.SplitScreen && !(p.ShowCLUT && p.ApplyCLUT) {
		return out, nil
	}

	ov := NewOverlay(out)
	if p.SplitScreen {
		ov.DrawSplit(splitX)
	}
	if p.ShowCLUT && p.ApplyCLUT {
		ov.DrawCLUTPreview(lut, p.Label)
	}
	return ov.Image(), nil
}

// toneMap returns a lookup for display-encoded LDR values in [0,1]
func toneMap(fb *Framebuffer, exposure float64, name string) (func(x, y int) emath.Vec3, error) {
	if op, ok := tonemap.GetPixelOperator(name); ok {
		return func(x, y int) emath.Vec3 {
			v := fb.RGBAt(x, y)
			v = op(emath.Vec3{v[0] * exposure, v[1] * exposure, v[2] * exposure})
			v.FloorAt(0.0)
			v.CeilingAt(1.0)
			return emath.GammaExpand_sRGB(v)
		}, nil
	}

	img, err := tonemap.ApplyImageOperator(name, fb.Scaled(exposure))
	if err != nil {
		return nil, err
	}
	ib := img.Bounds()
	fbb := fb.Bounds()
	return func(x, y int) emath.Vec3 {
		r, g, b, _ := img.At(x-fbb.Min.X+ib.Min.X, y-fbb.Min.Y+ib.Min.Y).RGBA()
		return emath.Vec3{float64(r) / float64(0xFFFF), float64(g) / float64(0xFFFF), float64(b) / float64(0xFFFF)}
	}, nil
}

// Final clip into the 16-bit output range
func toRGBA64(v emath.Vec3) color.RGBA64 {
	v.FloorAt(0.0)
	v.CeilingAt(1.0)
	return color.RGBA64{
		uint16(v[0]*float64(0xFFFF) + 0.5),
		uint16(v[1]*float64(0xFFFF) + 0.5),
		uint16(v[2]*float64(0xFFFF) + 0.5),
		0xffff,
	}
}
