package world

import "math"

// Vec3 is a world-space position or extent.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) DistanceTo(o Vec3) float64 {
	d := v.Sub(o)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec3
	Max Vec3
}

// BoxAround returns the box of the given size centered on c.
func BoxAround(c, size Vec3) Box {
	h := size.Scale(0.5)
	return Box{Min: c.Sub(h), Max: c.Add(h)}
}

// Intersects reports whether b and o overlap. Boxes that only touch on a face
// count as overlapping.
func (b Box) Intersects(o Box) bool {
	if o.Max.X < b.Min.X || o.Min.X > b.Max.X {
		return false
	}
	if o.Max.Y < b.Min.Y || o.Min.Y > b.Max.Y {
		return false
	}
	if o.Max.Z < b.Min.Z || o.Min.Z > b.Max.Z {
		return false
	}
	return true
}
