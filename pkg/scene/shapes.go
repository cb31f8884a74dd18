package scene

import(
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// An intersector finds the nearest hit in front of the ray (object
// space); the normal and albedo it returns are also object space.
type intersector func(o, d mgl32.Vec3) (hit, bool)

var intersectors = map[string]intersector{
	Cube:   intersectCube,
	Sphere: intersectSphere,
	Plane:  intersectPlane,
}

const(
	cubeHalf  = 0.5
	planeHalf = 2.0
	epsilon   = 1e-5
)

// Per-face colors: -X, +X, -Y, +Y, -Z, +Z
var cubeFaceColors = [6]mgl32.Vec3{
	{0.1, 0.1, 0.75},
	{0.775, 0.725, 0.1},
	{0.75, 0.1, 0.75},
	{0.35, 0.35, 0.35},
	{0.575, 0.25, 0.1},
	{0.1, 0.575, 0.25},
}

// Slab test against the axis aligned cube
func intersectCube(o, d mgl32.Vec3) (hit, bool) {
	tNear := float32(math.Inf(-1))
	tFar := float32(math.Inf(1))
	nearAxis, nearSign := -1, float32(0)

	for axis := 0; axis < 3; axis++ {
		if float32(math.Abs(float64(d[axis]))) < epsilon {
			if o[axis] < -cubeHalf || o[axis] > cubeHalf {
				return hit{}, false
			}
			continue
		}
		t1 := (-cubeHalf - o[axis]) / d[axis]
		t2 := (cubeHalf - o[axis]) / d[axis]
		sign := float32(-1) // entering through the -face
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tNear {
			tNear, nearAxis, nearSign = t1, axis, sign
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar || tFar < epsilon {
			return hit{}, false
		}
	}

	if nearAxis < 0 || tNear < epsilon {
		return hit{}, false // inside the cube, or parallel to everything
	}

	n := mgl32.Vec3{}
	n[nearAxis] = nearSign
	face := 2 * nearAxis
	if nearSign > 0 {
		face++
	}
	return hit{t: tNear, normal: n, albedo: cubeFaceColors[face]}, true
}

// Unit sphere; albedo varies with position, like per-vertex colors would
func intersectSphere(o, d mgl32.Vec3) (hit, bool) {
	b := o.Dot(d)
	c := o.Dot(o) - 1
	disc := b*b - c
	if disc < 0 {
		return hit{}, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := -b - sq
	if t < epsilon {
		t = -b + sq
		if t < epsilon {
			return hit{}, false
		}
	}

	p := o.Add(d.Mul(t))
	albedo := mgl32.Vec3{
		abs32(p[0])*0.5 + 0.5,
		abs32(p[1])*0.5 + 0.5,
		abs32(p[2])*0.5 + 0.5,
	}
	return hit{t: t, normal: p.Normalize(), albedo: albedo}, true
}

// A square in the y=0 plane
func intersectPlane(o, d mgl32.Vec3) (hit, bool) {
	if abs32(d[1]) < epsilon {
		return hit{}, false
	}
	t := -o[1] / d[1]
	if t < epsilon {
		return hit{}, false
	}
	p := o.Add(d.Mul(t))
	if abs32(p[0]) > planeHalf || abs32(p[2]) > planeHalf {
		return hit{}, false
	}
	return hit{t: t, normal: mgl32.Vec3{0, 1, 0}, albedo: mgl32.Vec3{0.8, 0.8, 0.8}}, true
}

func abs32(f float32) float32 {
	return float32(math.Abs(float64(f)))
}
