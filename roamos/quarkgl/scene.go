package quarkgl

// Material is a minimal surface description.
type Material struct {
	BaseColor Color
	// DoubleSided disables back-face culling; back faces are lit with the
	// flipped normal.
	DoubleSided bool
}

// LightMode defines minimal lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// Light is one ambient term plus one directional light.
type Light struct {
	Mode      LightMode
	Ambient   Scalar // 0..1
	Dir       Vec3   // direction the light travels, towards the scene
	DirAmount Scalar // 0..1
}

// Camera is a perspective camera.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad Scalar
	Near    Scalar
	Far     Scalar
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect Scalar) Mat4 {
	fov := c.FOVYRad
	if fov == 0 {
		fov = 1
	}
	return Mat4Perspective(fov, aspect, c.Near, c.Far)
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos Vec3
}

// Mesh is an indexed triangle mesh with an object transform. Front faces wind
// counter-clockwise when seen from outside.
type Mesh struct {
	Enabled bool

	Vertices []Vertex
	Indices  []uint16 // triangle list

	Transform Mat4
	Material  Material
}

// MeshID identifies a mesh slot in a Scene.
type MeshID int

// NoMesh is returned when a scene is full.
const NoMesh MeshID = -1

// Scene is a fixed-capacity collection of meshes plus a camera and light.
type Scene struct {
	Camera Camera
	Light  Light

	meshes []Mesh
	alive  []bool
	count  int
}

// CreateScene allocates a scene with a fixed mesh capacity.
func CreateScene(maxMeshes int) *Scene {
	if maxMeshes < 0 {
		maxMeshes = 0
	}
	return &Scene{
		Camera: Camera{
			Position: V3(0, 0, 3),
			Up:       V3(0, 1, 0),
			FOVYRad:  1,
			Near:     0.1,
			Far:      1000,
		},
		Light: Light{
			Mode:      LightAmbientDirectional,
			Ambient:   0.5,
			Dir:       V3(0, -1, 0),
			DirAmount: 0.5,
		},
		meshes: make([]Mesh, maxMeshes),
		alive:  make([]bool, maxMeshes),
	}
}

// Len returns the number of live meshes.
func (s *Scene) Len() int { return s.count }

// AddMesh adds a mesh to the scene and returns its id, or NoMesh if full.
func (s *Scene) AddMesh(m Mesh) MeshID {
	for i := range s.meshes {
		if s.alive[i] {
			continue
		}
		if m.Transform == (Mat4{}) {
			m.Transform = Mat4Identity()
		}
		if m.Material.BaseColor == (Color{}) {
			m.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
		}
		m.Enabled = true
		s.meshes[i] = m
		s.alive[i] = true
		s.count++
		return MeshID(i)
	}
	return NoMesh
}

// RemoveMesh removes a mesh by id. Unknown ids are ignored.
func (s *Scene) RemoveMesh(id MeshID) {
	if !s.valid(id) {
		return
	}
	s.alive[id] = false
	s.meshes[id] = Mesh{}
	s.count--
}

// UpdateMeshTransform updates a mesh transform by id.
func (s *Scene) UpdateMeshTransform(id MeshID, m Mat4) {
	if s.valid(id) {
		s.meshes[id].Transform = m
	}
}

func (s *Scene) valid(id MeshID) bool {
	return id >= 0 && int(id) < len(s.meshes) && s.alive[id]
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for i := range s.meshes {
		if s.alive[i] && s.meshes[i].Enabled {
			fn(&s.meshes[i])
		}
	}
}
