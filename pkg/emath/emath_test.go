package emath

import(
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertMatEqual(t *testing.T, want, got Mat3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "element %d", i)
	}
}

func TestSaturationMatrix(t *testing.T) {
	assertMatEqual(t, Identity3(), SaturationMatrix(1))
	assertMatEqual(t, SaturationMatrix(0.3), SaturationMatrix(0.5).Mult(SaturationMatrix(0.6)))

	grey := SaturationMatrix(0).Apply(Vec3{1, 0, 0})
	assert.InDelta(t, Rec709[0], grey[0], 1e-12)
	assert.InDelta(t, grey[0], grey[1], 1e-12)
	assert.InDelta(t, grey[0], grey[2], 1e-12)

	// Luma is preserved at any saturation
	v := Vec3{0.2, 0.5, 0.9}
	assert.InDelta(t, v.Luma(), SaturationMatrix(1.7).Apply(v).Luma(), 1e-12)
}

func TestIdentity(t *testing.T) {
	m := SaturationMatrix(0.4)
	assertMatEqual(t, m, Identity3().Mult(m))
	assertMatEqual(t, m, m.Mult(Identity3()))
	assert.Equal(t, Vec3{1, 2, 3}, Identity3().Apply(Vec3{1, 2, 3}))
}

func TestGamma(t *testing.T) {
	for _, f := range []float64{0, 0.001, 0.01, 0.18, 0.5, 1} {
		assert.InDelta(t, f, GammaCompress_F64(GammaExpand_F64(f)), 1e-9)
	}
	assert.InDelta(t, 0.7354, GammaExpand_F64(0.5), 1e-4)
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-2))
	assert.Equal(t, 1.0, Clamp01(2))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, 3.0, Lerp(2, 4, 0.5))

	v := Vec3{-1, 0.5, 2}
	v.FloorAt(0)
	v.CeilingAt(1)
	assert.Equal(t, Vec3{0, 0.5, 1}, v)
}
