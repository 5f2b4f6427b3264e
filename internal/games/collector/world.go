package collector

import "math"

// Vec3 is a world-space point. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Camera is the player's eye: a position and a heading around the Y axis.
// Heading 0 looks along +Z.
type Camera struct {
	Pos     Vec3
	Heading float64 // radians
}

// Forward is the unit ground-plane vector the camera faces.
func (c Camera) Forward() (x, z float64) {
	return math.Sin(c.Heading), math.Cos(c.Heading)
}

// Viewport maps camera space onto a character grid. Cells are about twice
// as tall as they are wide, so vertical offsets are halved.
type Viewport struct {
	Width, Height int
	Near          float64
}

// focal gives a 90 degree horizontal field of view.
func (vp Viewport) focal() float64 {
	return float64(vp.Width) / 2
}

// Project returns the screen cell of p and its depth. ok is false when p is
// behind the near plane or off screen.
func (vp Viewport) Project(cam Camera, p Vec3) (x, y int, depth float64, ok bool) {
	rel := p.Sub(cam.Pos)
	fx, fz := cam.Forward()

	depth = rel.X*fx + rel.Z*fz
	side := rel.X*fz - rel.Z*fx
	if depth < vp.Near {
		return 0, 0, depth, false
	}

	f := vp.focal()
	sx := float64(vp.Width)/2 + side*f/depth
	sy := float64(vp.Height)/2 - rel.Y*f*0.5/depth
	x, y = int(math.Floor(sx)), int(math.Floor(sy))
	if x < 0 || x >= vp.Width || y < 0 || y >= vp.Height {
		return x, y, depth, false
	}
	return x, y, depth, true
}

// groundDist is the distance between two points ignoring height.
func groundDist(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}
