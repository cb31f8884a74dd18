package scene

// A tiny ray caster for the one object the viewer shows. It writes
// linear, unclamped radiance into an HDR framebuffer; bright lights
// and specular highlights go well past 1.0, which is the point.

import(
	"fmt"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/abworrall/hdr-clut/pkg/emath"
	"github.com/abworrall/hdr-clut/pkg/render"
)

const(
	Cube   = "cube"
	Sphere = "sphere"
	Plane  = "plane"

	fovDegrees = 45.0
	shininess  = 32.0
	specular   = 0.5
)

var Shapes = []string{Cube, Sphere, Plane}

type Config struct {
	Shape          string     `yaml:"shape"`
	Rotation       [3]float32 `yaml:"rotation"`       // radians about X, Y, Z
	Camera         [3]float32 `yaml:"camera"`         // looks down -Z
	LightPos       [3]float32 `yaml:"lightpos"`
	LightColor     [3]float32 `yaml:"lightcolor"`
	LightIntensity float32    `yaml:"lightintensity"`
	Ambient        float32    `yaml:"ambient"`
	Background     [3]float32 `yaml:"background"`
}

func NewConfig() Config {
	return Config{
		Shape:          Cube,
		Camera:         [3]float32{0, 0, 3},
		LightPos:       [3]float32{3, 3, 3},
		LightColor:     [3]float32{1, 1, 1},
		LightIntensity: 1.0,
		Ambient:        0.1,
		Background:     [3]float32{0.05, 0.05, 0.05},
	}
}

func (c Config)Validate() error {
	for _, s := range Shapes {
		if c.Shape == s {
			return nil
		}
	}
	return fmt.Errorf("no scene shape named '%s', wanted one of %v", c.Shape, Shapes)
}

// Model is the object's rotation, composed Y * X * Z
func (c Config)Model() mgl32.Mat3 {
	return mgl32.Rotate3DY(c.Rotation[1]).Mul3(mgl32.Rotate3DX(c.Rotation[0])).Mul3(mgl32.Rotate3DZ(c.Rotation[2]))
}

// OrbitLight puts the light on a circle of the given radius in the XZ
// plane, keeping its height.
func (c *Config)OrbitLight(angle, radius float32) {
	c.LightPos[0] = radius * float32(math.Cos(float64(angle)))
	c.LightPos[2] = radius * float32(math.Sin(float64(angle)))
}

// A hit is in world space
type hit struct {
	t      float32
	pos    mgl32.Vec3
	normal mgl32.Vec3
	albedo mgl32.Vec3
}

// Render draws the scene into a new w x h framebuffer
func Render(cfg Config, w, h int) (*render.Framebuffer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("bad framebuffer size %dx%d", w, h)
	}

	fb := render.NewFramebuffer(w, h)
	bg := emath.Vec3{float64(cfg.Background[0]), float64(cfg.Background[1]), float64(cfg.Background[2])}

	model := cfg.Model()
	inv := model.Transpose() // rotations are orthonormal
	cam := mgl32.Vec3(cfg.Camera)
	aspect := float32(w) / float32(h)
	tanHalf := float32(math.Tan(float64(mgl32.DegToRad(fovDegrees)) / 2))

	intersect := intersectors[cfg.Shape]
	nHit := 0

	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			ndcX := (2*(float32(px)+0.5)/float32(w) - 1) * aspect * tanHalf
			ndcY := (1 - 2*(float32(py)+0.5)/float32(h)) * tanHalf
			dir := mgl32.Vec3{ndcX, ndcY, -1}.Normalize()

			// Intersect in object space, then bring the hit back out
			o := inv.Mul3x1(cam)
			d := inv.Mul3x1(dir)
			ht, ok := intersect(o, d)
			if !ok {
				fb.SetRGB(px, py, bg)
				continue
			}
			nHit++
			ht.pos = cam.Add(dir.Mul(ht.t))
			ht.normal = model.Mul3x1(ht.normal).Normalize()
			if ht.normal.Dot(dir) > 0 {
				ht.normal = ht.normal.Mul(-1) // two-sided
			}

			fb.SetRGB(px, py, shade(cfg, ht, cam))
		}
	}

	log.Printf("Scene: rendered %s at %dx%d, %d pixels hit", cfg.Shape, w, h, nHit)
	return fb, nil
}

// shade is Blinn-Phong, with the light scaled by intensity and no clamping
func shade(cfg Config, ht hit, cam mgl32.Vec3) emath.Vec3 {
	lightCol := mgl32.Vec3(cfg.LightColor).Mul(cfg.LightIntensity)
	l := mgl32.Vec3(cfg.LightPos).Sub(ht.pos).Normalize()
	v := cam.Sub(ht.pos).Normalize()
	hv := l.Add(v).Normalize()

	diff := float32(math.Max(float64(ht.normal.Dot(l)), 0))
	spec := specular * float32(math.Pow(math.Max(float64(ht.normal.Dot(hv)), 0), shininess))
	if diff == 0 {
		spec = 0
	}

	out := emath.Vec3{}
	for i := 0; i < 3; i++ {
		lit := ht.albedo[i]*(cfg.Ambient + diff*lightCol[i]) + spec*lightCol[i]
		out[i] = float64(lit)
	}
	return out
}
