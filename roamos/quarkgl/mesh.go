package quarkgl

var unitBoxVertices = []Vertex{
	{Pos: V3(-0.5, -0.5, -0.5)},
	{Pos: V3(0.5, -0.5, -0.5)},
	{Pos: V3(-0.5, 0.5, -0.5)},
	{Pos: V3(0.5, 0.5, -0.5)},
	{Pos: V3(-0.5, -0.5, 0.5)},
	{Pos: V3(0.5, -0.5, 0.5)},
	{Pos: V3(-0.5, 0.5, 0.5)},
	{Pos: V3(0.5, 0.5, 0.5)},
}

var unitBoxIndices = []uint16{
	4, 5, 7, 4, 7, 6, // +z
	1, 0, 2, 1, 2, 3, // -z
	5, 1, 3, 5, 3, 7, // +x
	0, 4, 6, 0, 6, 2, // -x
	6, 7, 3, 6, 3, 2, // +y
	0, 1, 5, 0, 5, 4, // -y
}

// BoxMesh returns an axis-aligned box of the given size centered at pos.
// The vertex and index slices are shared between all boxes.
func BoxMesh(pos, size Vec3, color Color) Mesh {
	return Mesh{
		Vertices:  unitBoxVertices,
		Indices:   unitBoxIndices,
		Transform: Mat4Place(pos, size),
		Material:  Material{BaseColor: color},
	}
}

// PlaneMesh returns a horizontal width×depth plane at height y, split into
// segments×segments cells. It faces up, or down when down is set.
func PlaneMesh(y, width, depth Scalar, segments int, down bool, color Color) Mesh {
	if segments < 1 {
		segments = 1
	}
	n := segments + 1
	verts := make([]Vertex, 0, n*n)
	for j := 0; j < n; j++ {
		z := Scalar(j)/Scalar(segments) - 0.5
		for i := 0; i < n; i++ {
			x := Scalar(i)/Scalar(segments) - 0.5
			verts = append(verts, Vertex{Pos: V3(x, 0, z)})
		}
	}

	idx := make([]uint16, 0, segments*segments*6)
	for j := 0; j < segments; j++ {
		for i := 0; i < segments; i++ {
			a := uint16(j*n + i)
			b := a + 1
			c := a + uint16(n)
			d := c + 1
			if down {
				idx = append(idx, a, b, c, b, d, c)
			} else {
				idx = append(idx, a, c, b, b, c, d)
			}
		}
	}

	return Mesh{
		Vertices:  verts,
		Indices:   idx,
		Transform: Mat4Place(V3(0, y, 0), V3(width, 1, depth)),
		Material:  Material{BaseColor: color},
	}
}
