package clut

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Deviation compares two tables of the same shape, returning the
// largest and the mean absolute per-channel difference. Comparing a
// table against the neutral one of its size tells you how strong a
// grade it is.
func Deviation(a, b CLUT) (maxAbs, meanAbs float64, err error) {
	if a.Is3D != b.Is3D || a.Size != b.Size || len(a.Data) != len(b.Data) {
		return 0, 0, fmt.Errorf("can't compare %s with %s", a, b)
	}
	if len(a.Data) == 0 {
		return 0, 0, nil
	}

	av, bv := toFloat64s(a.Data), toFloat64s(b.Data)
	maxAbs = floats.Distance(av, bv, math.Inf(1))
	meanAbs = floats.Distance(av, bv, 1) / float64(len(av))

	return maxAbs, meanAbs, nil
}

// NeutralFor returns the identity table with the same shape as c
func NeutralFor(c CLUT) CLUT {
	if c.Is3D {
		return Neutral3D(c.Size)
	}
	return Neutral1D(c.Size)
}

func toFloat64s(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, f := range in {
		out[i] = float64(f)
	}
	return out
}
