package explore

import (
	"strings"

	"roam/roamos/quarkgl"
	"roam/roamos/world"
)

var (
	colorFloor    = quarkgl.Hex(0x666666)
	colorObstacle = quarkgl.Hex(0x0000ff)
	colorTask     = quarkgl.Hex(0x00ff00)
	colorPlayer   = quarkgl.Hex(0xff0000)
)

// planeSegments splits floor and roof so near-plane clipping stays local.
const planeSegments = 10

func toVec(v world.Vec3) quarkgl.Vec3 {
	return quarkgl.V3(quarkgl.Scalar(v.X), quarkgl.Scalar(v.Y), quarkgl.Scalar(v.Z))
}

// buildScene creates the floor, the roof, one box per obstacle and task, and
// the player avatar.
func (t *Task) buildScene() {
	tu := t.cfg.Tuning

	t.r = quarkgl.NewRenderer(t.fb.Width(), t.fb.Height(), true)
	t.r.ClearColor = quarkgl.RGB(0, 0, 0)
	if strings.EqualFold(tu.Render.Mode, quarkgl.RenderWireframe.String()) {
		t.r.Mode = quarkgl.RenderWireframe
	}

	obstacles := t.sess.Obstacles()
	tasks := t.sess.Tasks()
	t.s = quarkgl.CreateScene(3 + len(obstacles) + len(tasks))
	t.s.Camera.FOVYRad = quarkgl.Scalar(tu.Look.FOVYRad())
	t.s.Camera.Near = quarkgl.Scalar(tu.Look.Near)
	t.s.Camera.Far = quarkgl.Scalar(tu.Look.Far)

	size := quarkgl.Scalar(tu.Room.FloorSize)
	t.s.AddMesh(quarkgl.PlaneMesh(0, size, size, planeSegments, false, colorFloor))
	roof := quarkgl.PlaneMesh(quarkgl.Scalar(tu.Room.RoofHeight), size, size, planeSegments, true, colorFloor)
	roof.Material.DoubleSided = true
	t.s.AddMesh(roof)

	for _, o := range obstacles {
		t.s.AddMesh(quarkgl.BoxMesh(toVec(o.Pos), toVec(o.Size), colorObstacle))
	}
	for _, w := range tasks {
		t.meshes[w.ID] = t.s.AddMesh(quarkgl.BoxMesh(toVec(w.Pos), toVec(w.Size), colorTask))
	}
	p := t.sess.Params()
	t.player = t.s.AddMesh(quarkgl.BoxMesh(toVec(t.sess.Player()), toVec(p.PlayerSize), colorPlayer))

	eye := t.sess.Eye()
	t.look.Apply(&t.s.Camera, toVec(eye))
}
