package quarkgl

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	depthBuf []float32
	stats    Stats
}

// Stats counts the work done by the last Render call.
type Stats struct {
	Triangles int // submitted
	Culled    int // back-facing
	Clipped   int // entirely behind the near plane or outside the frustum
	Drawn     int // rasterized, after near-plane splitting
}

// NewRenderer creates a renderer with a depth buffer sized for w×h. The buffer
// grows on demand when the target is larger.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderSolidFlat,
		ClearColor: RGB(0, 0, 0),
	}
	r.EnableDepth(enableDepth, w, h)
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

// Stats returns the counters of the last Render call.
func (r *Renderer) Stats() Stats { return r.stats }

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on || w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 2
	}
}

// Render clears the target and draws every enabled mesh of the scene.
func (r *Renderer) Render(t Target, s *Scene) {
	if t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)
	r.stats = Stats{}

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	vp := Mat4Mul(s.Camera.Projection(Scalar(w)/Scalar(h)), s.Camera.View())
	s.eachMesh(func(m *Mesh) {
		r.renderMesh(t, w, h, vp, m, s.Light)
	})
}

// screenVert is a vertex after the perspective divide, in pixels plus NDC depth.
type screenVert struct {
	x, y float32
	z    float32
}

func (r *Renderer) renderMesh(t Target, w, h int, vp Mat4, m *Mesh, light Light) {
	model := m.Transform
	mvp := Mat4Mul(vp, model)

	var clip [3]Vec4
	var world [3]Vec3
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ok := true
		for k := 0; k < 3; k++ {
			vi := int(m.Indices[i+k])
			if vi >= len(m.Vertices) {
				ok = false
				break
			}
			p := m.Vertices[vi].Pos.Point()
			clip[k] = Mat4MulV4(mvp, p)
			wp := Mat4MulV4(model, p)
			world[k] = V3(wp.X, wp.Y, wp.Z)
		}
		if !ok {
			continue
		}
		r.stats.Triangles++

		if outsideFrustum(clip) {
			r.stats.Clipped++
			continue
		}

		var poly [4]Vec4
		n := clipNear(clip, &poly)
		if n < 3 {
			r.stats.Clipped++
			continue
		}

		var sv [4]screenVert
		for k := 0; k < n; k++ {
			sv[k] = toScreen(poly[k], w, h)
		}

		// Screen y grows downwards, so counter-clockwise in NDC is negative here.
		front := signedArea(sv[0], sv[1], sv[2]) < 0
		if !front && !m.Material.DoubleSided {
			r.stats.Culled++
			continue
		}

		c := m.Material.BaseColor
		if light.Mode == LightAmbientDirectional {
			nrm := Normalize(Cross(world[1].Sub(world[0]), world[2].Sub(world[0])))
			if !front {
				nrm = nrm.Mul(-1)
			}
			c = c.MulScalar(lightIntensity(light, nrm))
		}

		for k := 1; k+1 < n; k++ {
			r.stats.Drawn++
			if r.Mode == RenderWireframe {
				r.drawLine(t, sv[0], sv[k], c)
				r.drawLine(t, sv[k], sv[k+1], c)
				r.drawLine(t, sv[k+1], sv[0], c)
				continue
			}
			r.fillTriangle(t, w, h, sv[0], sv[k], sv[k+1], c)
		}
	}
}

// outsideFrustum reports whether all three vertices lie beyond the same side
// plane or the far plane.
func outsideFrustum(p [3]Vec4) bool {
	out := func(f func(Vec4) bool) bool { return f(p[0]) && f(p[1]) && f(p[2]) }
	return out(func(v Vec4) bool { return v.X > v.W }) ||
		out(func(v Vec4) bool { return v.X < -v.W }) ||
		out(func(v Vec4) bool { return v.Y > v.W }) ||
		out(func(v Vec4) bool { return v.Y < -v.W }) ||
		out(func(v Vec4) bool { return v.Z > v.W })
}

// clipNear clips a triangle against the near plane (z >= -w) and writes the
// resulting convex polygon into out. It returns the vertex count: 0, 3 or 4.
func clipNear(in [3]Vec4, out *[4]Vec4) int {
	dist := func(v Vec4) Scalar { return v.Z + v.W }
	n := 0
	for i := 0; i < 3; i++ {
		a := in[i]
		b := in[(i+1)%3]
		da, db := dist(a), dist(b)
		if da >= 0 {
			out[n] = a
			n++
		}
		if (da >= 0) != (db >= 0) {
			out[n] = a.lerp(b, da/(da-db))
			n++
		}
	}
	return n
}

func toScreen(p Vec4, w, h int) screenVert {
	inv := 1 / p.W
	return screenVert{
		x: (p.X*inv*0.5 + 0.5) * float32(w-1),
		y: (1 - (p.Y*inv*0.5 + 0.5)) * float32(h-1),
		z: p.Z * inv,
	}
}

func signedArea(a, b, c screenVert) float32 {
	return (b.x-a.x)*(c.y-a.y) - (c.x-a.x)*(b.y-a.y)
}

func lightIntensity(l Light, n Vec3) Scalar {
	amb := Clamp01(l.Ambient)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	d := Dot(n, ld.Mul(-1))
	if d < 0 {
		d = 0
	}
	return Clamp01(amb + d*Clamp01(l.DirAmount))
}

func (r *Renderer) depthTest(w, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	if z >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = z
	return true
}

// drawLine walks a Bresenham line. Near-plane vertices can project far off
// screen, so the walk is capped at a few screen perimeters.
func (r *Renderer) drawLine(t Target, a, b screenVert, c Color) {
	x0, y0 := round(a.x), round(a.y)
	x1, y1 := round(b.x), round(b.y)
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	w, h := t.Size()
	limit := 4 * (w + h)

	err := dx + dy
	for steps := 0; steps <= limit; steps++ {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillTriangle rasterizes with edge functions over the clamped bounding box.
// Pixels are sampled at integer coordinates.
func (r *Renderer) fillTriangle(t Target, w, h int, a, b, c screenVert, col Color) {
	area := signedArea(a, b, c)
	if area == 0 {
		return
	}
	if area < 0 {
		b, c = c, b
		area = -area
	}

	minX := clampInt(floorInt(min3f(a.x, b.x, c.x)), 0, w-1)
	maxX := clampInt(floorInt(max3f(a.x, b.x, c.x))+1, 0, w-1)
	minY := clampInt(floorInt(min3f(a.y, b.y, c.y)), 0, h-1)
	maxY := clampInt(floorInt(max3f(a.y, b.y, c.y))+1, 0, h-1)

	inv := 1 / area
	for y := minY; y <= maxY; y++ {
		py := float32(y)
		for x := minX; x <= maxX; x++ {
			px := float32(x)
			w0 := edge(b, c, px, py)
			w1 := edge(c, a, px, py)
			w2 := edge(a, b, px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := (w0*a.z + w1*b.z + w2*c.z) * inv
			if z < -1 || !r.depthTest(w, x, y, z) {
				continue
			}
			t.SetPixel(x, y, col)
		}
	}
}

func edge(a, b screenVert, x, y float32) float32 {
	return (b.x-a.x)*(y-a.y) - (b.y-a.y)*(x-a.x)
}

func round(v float32) int {
	return floorInt(v + 0.5)
}

func floorInt(v float32) int {
	i := int(v)
	if float32(i) > v {
		i--
	}
	return i
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min3f(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3f(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
