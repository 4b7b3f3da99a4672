// Package explore is the first-person room task: it feeds keyboard and
// pointer input into a world.Session, keeps the quarkgl scene in sync with it
// and draws the frame and HUD once per tick.
package explore

import (
	"roam/hal"
	logclient "roam/roamos/client/logger"
	soundclient "roam/roamos/client/sound"
	"roam/roamos/fbtext"
	"roam/roamos/kernel"
	"roam/roamos/locale"
	"roam/roamos/proto"
	"roam/roamos/quarkgl"
	"roam/roamos/tuning"
	"roam/roamos/world"
)

// Config wires the task to its services.
type Config struct {
	Tuning tuning.Tuning
	Text   *locale.Catalog

	LogCap   kernel.Capability
	SoundCap kernel.Capability

	// Obstacles and Tasks fix the layout. When both are nil the session
	// places them from the tuning seed.
	Obstacles []world.Obstacle
	Tasks     []world.Task
}

type completion struct {
	task      world.Task
	score     int
	remaining int
}

type Task struct {
	disp hal.Display
	in   hal.Input
	cfg  Config

	fb  hal.Framebuffer
	kbd hal.Keyboard
	ptr hal.Pointer

	sess *world.Session
	look *quarkgl.LookController

	r      *quarkgl.Renderer
	s      *quarkgl.Scene
	meshes map[world.TaskID]quarkgl.MeshID
	player quarkgl.MeshID
	hud    *fbtext.Writer

	ready     bool
	wasBumped bool
	bumpAt    world.Vec3
	done      []completion
}

func New(disp hal.Display, in hal.Input, cfg Config) *Task {
	if cfg.Text == nil {
		cfg.Text = locale.MustLoad(cfg.Tuning.Locale)
	}
	t := &Task{
		disp:   disp,
		in:     in,
		cfg:    cfg,
		look:   quarkgl.NewLookController(),
		meshes: make(map[world.TaskID]quarkgl.MeshID),
		player: quarkgl.NoMesh,
	}
	if cfg.Obstacles != nil || cfg.Tasks != nil {
		t.sess = world.NewSessionWith(cfg.Tuning.WorldParams(), t, cfg.Obstacles, cfg.Tasks)
	} else {
		t.sess = world.NewSession(cfg.Tuning.WorldParams(), t)
	}
	if s := cfg.Tuning.Look.Sensitivity; s > 0 {
		t.look.Sensitivity = quarkgl.Scalar(s)
	}
	return t
}

// Session exposes the game state.
func (t *Task) Session() *world.Session { return t.sess }

// Look exposes the camera controller.
func (t *Task) Look() *quarkgl.LookController { return t.look }

// Scene exposes the scene graph.
func (t *Task) Scene() *quarkgl.Scene { return t.s }

func (t *Task) Step(ctx *kernel.Context) {
	if !t.ready && !t.init() {
		ctx.BlockOnTick()
		return
	}

	t.drainInput()
	f := t.sess.Step()
	if f.Collided {
		logclient.Logf(ctx, t.cfg.LogCap, "collision: %s (%.2f, %.2f)", t.text(locale.Collision), t.bumpAt.X, t.bumpAt.Z)
		// Pushing into an obstacle collides every frame; bump only on the first.
		if !t.wasBumped {
			soundclient.Play(ctx, t.cfg.SoundCap, proto.CueBump)
		}
	}
	t.wasBumped = f.Collided
	t.flush(ctx)

	t.look.Apply(&t.s.Camera, toVec(t.sess.Eye()))
	t.s.UpdateMeshTransform(t.player, quarkgl.Mat4Place(toVec(t.sess.Player()), toVec(t.sess.Params().PlayerSize)))

	t.render()
	ctx.BlockOnTick()
}

func (t *Task) init() bool {
	if t.disp == nil {
		return false
	}
	t.fb = t.disp.Framebuffer()
	if t.fb == nil || t.fb.Format() != hal.PixelFormatRGB565 {
		return false
	}
	if t.in != nil {
		t.kbd = t.in.Keyboard()
		t.ptr = t.in.Pointer()
	}
	t.buildScene()
	t.hud = fbtext.NewWriter(t.fb)
	t.ready = true
	return true
}

// Collided implements world.Observer.
func (t *Task) Collided(at world.Vec3) { t.bumpAt = at }

// TaskCompleted implements world.Observer.
func (t *Task) TaskCompleted(w world.Task, score, remaining int) {
	t.done = append(t.done, completion{task: w, score: score, remaining: remaining})
}

// flush applies the completions queued since the last frame.
func (t *Task) flush(ctx *kernel.Context) {
	for _, c := range t.done {
		if id, ok := t.meshes[c.task.ID]; ok {
			t.s.RemoveMesh(id)
			delete(t.meshes, c.task.ID)
		}
		logclient.Logf(ctx, t.cfg.LogCap, "task %d: %s score=%d remaining=%d", c.task.ID, t.text(locale.TaskCompleted), c.score, c.remaining)
		cue := proto.CueTaskDone
		if c.remaining == 0 {
			cue = proto.CueAllDone
		}
		soundclient.Play(ctx, t.cfg.SoundCap, cue)
	}
	t.done = t.done[:0]
}

func (t *Task) drainInput() {
	if t.ptr != nil {
	pointer:
		for {
			select {
			case ev := <-t.ptr.Events():
				t.handlePointer(ev)
			default:
				break pointer
			}
		}
	}
	if t.kbd != nil {
		for {
			select {
			case ev := <-t.kbd.Events():
				t.handleKey(ev)
			default:
				return
			}
		}
	}
}

func (t *Task) handlePointer(ev hal.PointerEvent) {
	switch ev.Kind {
	case hal.PointerClick:
		if !t.look.Locked() {
			t.ptr.RequestLock()
		}
	case hal.PointerLocked:
		t.look.Lock()
	case hal.PointerUnlocked:
		t.look.Unlock()
	case hal.PointerMove:
		t.look.Look(quarkgl.Scalar(ev.DX), quarkgl.Scalar(ev.DY))
	}
}

func (t *Task) handleKey(ev hal.KeyEvent) {
	if ev.Code == hal.KeyTab {
		if ev.Press && t.r != nil {
			if t.r.Mode == quarkgl.RenderWireframe {
				t.r.Mode = quarkgl.RenderSolidFlat
			} else {
				t.r.Mode = quarkgl.RenderWireframe
			}
		}
		return
	}
	k := keyFor(ev.Code)
	if k == world.KeyNone {
		return
	}
	if ev.Press {
		t.sess.Press(k)
	} else {
		t.sess.Release(k)
	}
}

func keyFor(c hal.KeyCode) world.Key {
	switch c {
	case hal.KeyW, hal.KeyUp:
		return world.KeyForward
	case hal.KeyS, hal.KeyDown:
		return world.KeyBackward
	case hal.KeyA, hal.KeyLeft:
		return world.KeyLeft
	case hal.KeyD, hal.KeyRight:
		return world.KeyRight
	case hal.KeyE:
		return world.KeyInteract
	default:
		return world.KeyNone
	}
}

func (t *Task) text(id string, vars ...any) string {
	return locale.ASCII(t.cfg.Text.Get(id, vars...))
}
