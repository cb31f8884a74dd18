package tonemap

// Tone mapping operators: compress HDR values into the displayable
// [0,1] range. There are two families:
//  - pixel operators (reinhard, aces), which map each pixel on its own,
//    the way a post-process fragment shader does.
//  - image operators from mdouchement/hdr/tmo, which look at the whole image.

import(
	"fmt"
	"image"
	"log"
	"math"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/tmo"

	"github.com/abworrall/hdr-clut/pkg/emath"
)

const(
	Reinhard = "reinhard"
	ACES     = "aces"
)

var(
	PixelOperators = []string{Reinhard, ACES}
	ImageOperators = []string{"drago03", "durand", "icam06", "linear", "reinhard05"}
)

// A PixelOperator maps one exposure-scaled linear HDR color into [0,1], still linear
type PixelOperator func(emath.Vec3) emath.Vec3

func List() []string {
	return append(append([]string{}, PixelOperators...), ImageOperators...)
}

func ListString() string {
	return fmt.Sprintf("%v", List())
}

func IsPixelOperator(name string) bool {
	_, ok := GetPixelOperator(name)
	return ok
}

func IsKnown(name string) bool {
	for _, n := range List() {
		if n == name {
			return true
		}
	}
	return false
}

func GetPixelOperator(name string) (PixelOperator, bool) {
	switch name {
	case Reinhard: return ReinhardPixel, true
	case ACES:     return ACESPixel, true
	}
	return nil, false
}

// ReinhardPixel is the simple global Reinhard curve, c/(1+c)
func ReinhardPixel(v emath.Vec3) emath.Vec3 {
	v.FloorAt(0.0)
	return emath.Vec3{v[0] / (1 + v[0]), v[1] / (1 + v[1]), v[2] / (1 + v[2])}
}

// ACESPixel is the Narkowicz 2015 fit of the ACES filmic curve
func ACESPixel(v emath.Vec3) emath.Vec3 {
	return emath.Vec3{acesApprox(v[0]), acesApprox(v[1]), acesApprox(v[2])}
}

func acesApprox(x float64) float64 {
	const(
		a = 2.51
		b = 0.03
		c = 2.43
		d = 0.59
		e = 0.14
	)
	if x < 0 { x = 0 }
	return emath.Clamp01((x * (a*x + b)) / (x*(c*x+d) + e))
}

// Setup builds one of the whole-image operators, with its parameters
// tweaked for the small bright scenes we render. The operators output
// display-ready (gamma encoded) LDR images.
func Setup(name string, img hdr.Image) (tmo.ToneMappingOperator, error) {
	switch name {
	case "drago03":
		op := tmo.NewDefaultDrago03(img)
		op.Bias = 0.85
		return op, nil

	case "durand":
		return tmo.NewDefaultDurand(img), nil

	case "icam06":
		op := tmo.NewDefaultICam06(img)
		op.Contrast    = 0.7
		op.MaxClipping = 0.999
		return op, nil

	case "linear":
		return tmo.NewLinear(img), nil

	case "reinhard05":
		op := tmo.NewDefaultReinhard05(img)
		op.Chromatic = 0.0
		op.Light     = 0.5
		return op, nil
	}

	return nil, fmt.Errorf("ToneMapper %q not recognized, wanted one of %v", name, ImageOperators)
}

// ApplyImageOperator runs a whole-image operator
func ApplyImageOperator(name string, img hdr.Image) (image.Image, error) {
	op, err := Setup(name, img)
	if err != nil {
		return nil, err
	}
	log.Printf("Tonemapping: %s", name)
	return op.Perform(), nil
}

// EV converts an exposure multiplier into stops
func EV(exposure float64) float64 {
	return math.Log2(exposure)
}
