package render

import(
	"fmt"
	"image"

	"github.com/abworrall/hdr-clut/pkg/clut"
)

// A Handle names a resource owned by a Backend. Zero is never a valid handle.
type Handle uint32

// Backend is the small set of things the viewer needs from a renderer.
// The CLUT packing and the frame logic sit above it and don't care how
// textures and buffers are actually stored.
type Backend interface {
	CreateTexture(td clut.TextureData) (Handle, error)
	CreateBuffer(fb *Framebuffer) (Handle, error)
	Submit(p Pass) (image.Image, error)
	Destroy(h Handle) error
}

// A Pass holds the post-process uniforms: which HDR buffer and LUT
// textures to read, and how to map them to the output.
type Pass struct {
	HDRBuffer     Handle
	LUT1D         Handle
	LUT3D         Handle

	Exposure      float64
	Tonemapper    string
	ApplyCLUT     bool
	Use3D         bool
	CLUTStrength  float64 // 0 is ungraded, 1 is fully graded
	SplitScreen   bool
	SplitPosition float64 // fraction of the width; left of it stays ungraded
	ShowCLUT      bool
	Label         string  // drawn next to the CLUT preview
}

func (p Pass)String() string {
	s := fmt.Sprintf("Pass[exposure %.2f, tonemapper %s", p.Exposure, p.Tonemapper)
	if p.ApplyCLUT {
		dims := "1D"
		if p.Use3D { dims = "3D" }
		s += fmt.Sprintf(", %s clut @%.2f", dims, p.CLUTStrength)
	}
	if p.SplitScreen {
		s += fmt.Sprintf(", split @%.2f", p.SplitPosition)
	}
	return s + "]"
}

// LUTHandle is the texture the pass samples, given Use3D
func (p Pass)LUTHandle() Handle {
	if p.Use3D {
		return p.LUT3D
	}
	return p.LUT1D
}
