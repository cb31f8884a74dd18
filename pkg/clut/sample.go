package clut

import(
	"github.com/abworrall/hdr-clut/pkg/emath"
)

// Sample maps an input color through the packed table, the way a GPU
// sampler with linear filtering and clamp-to-edge would. Input channels
// are expected in [0,1]; anything outside is clamped to the edge
// entries. 1D textures are applied per channel (red curve on red, etc).
func (td TextureData)Sample(in emath.Vec3) emath.Vec3 {
	if td.Width < 1 || len(td.Pix) < td.Width*td.Height*td.Depth*4 {
		return in
	}
	if td.Is3D() {
		return td.sample3D(in)
	}
	return emath.Vec3{
		td.sample1D(in[0], 0),
		td.sample1D(in[1], 1),
		td.sample1D(in[2], 2),
	}
}

// latticePos maps [0,1] onto texel coords [0,size-1], returning the
// lower index and the fraction towards the next one.
func latticePos(f float64, size int) (int, float64) {
	if size < 2 {
		return 0, 0
	}
	pos := emath.Clamp01(f) * float64(size-1)
	i := int(pos)
	if i >= size-1 {
		return size - 2, 1.0
	}
	return i, pos - float64(i)
}

func (td TextureData)texel(i, channel int) float64 {
	return float64(td.Pix[4*i+channel])
}

func (td TextureData)sample1D(f float64, channel int) float64 {
	if td.Width == 1 {
		return td.texel(0, channel)
	}
	i, t := latticePos(f, td.Width)
	return emath.Lerp(td.texel(i, channel), td.texel(i+1, channel), t)
}

func (td TextureData)sample3D(in emath.Vec3) emath.Vec3 {
	n := td.Width
	if n == 1 {
		return emath.Vec3{td.texel(0, 0), td.texel(0, 1), td.texel(0, 2)}
	}
	r, tr := latticePos(in[0], n)
	g, tg := latticePos(in[1], n)
	b, tb := latticePos(in[2], n)

	out := emath.Vec3{}
	for ch := 0; ch < 3; ch++ {
		v := func(dr, dg, db int) float64 {
			return td.texel((r+dr) + (g+dg)*n + (b+db)*n*n, ch)
		}
		c00 := emath.Lerp(v(0, 0, 0), v(1, 0, 0), tr)
		c10 := emath.Lerp(v(0, 1, 0), v(1, 1, 0), tr)
		c01 := emath.Lerp(v(0, 0, 1), v(1, 0, 1), tr)
		c11 := emath.Lerp(v(0, 1, 1), v(1, 1, 1), tr)
		out[ch] = emath.Lerp(emath.Lerp(c00, c10, tg), emath.Lerp(c01, c11, tg), tb)
	}
	return out
}
