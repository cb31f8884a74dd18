package clut

// TextureData is a CLUT packed for upload as an RGBA float texture. A
// 1D table becomes Width=Size, Height=Depth=1; a 3D table becomes a
// Size^3 volume. Pix is row-major RGBA, in the same entry order as the
// CLUT data.
type TextureData struct {
	Width, Height, Depth int
	Pix                  []float32
}

func (td TextureData)Is3D() bool { return td.Depth > 1 }

// Pack picks Pack1D or Pack3D based on the table's type
func (c CLUT)Pack() TextureData {
	if c.Is3D {
		return c.Pack3D()
	}
	return c.Pack1D()
}

func (c CLUT)Pack1D() TextureData {
	return TextureData{
		Width:  c.Size,
		Height: 1,
		Depth:  1,
		Pix:    addAlpha(c.Data, c.Size),
	}
}

func (c CLUT)Pack3D() TextureData {
	return TextureData{
		Width:  c.Size,
		Height: c.Size,
		Depth:  c.Size,
		Pix:    addAlpha(c.Data, c.Size*c.Size*c.Size),
	}
}

// addAlpha copies n RGB triples into RGBA quads with alpha=1. If the
// source is short, the missing entries stay black.
func addAlpha(rgb []float32, n int) []float32 {
	if n < 0 {
		n = 0
	}
	rgba := make([]float32, n*4)
	for i := 0; i < n && 3*i+2 < len(rgb); i++ {
		rgba[4*i+0] = rgb[3*i+0]
		rgba[4*i+1] = rgb[3*i+1]
		rgba[4*i+2] = rgb[3*i+2]
		rgba[4*i+3] = 1.0
	}
	return rgba
}
