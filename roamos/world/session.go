package world

// Params fixes the room layout and movement constants for a session.
type Params struct {
	SpawnExtent float64 // objects are placed with x, z in [-SpawnExtent, SpawnExtent)

	PlayerStart Vec3
	PlayerSize  Vec3
	Speed       float64 // world units per frame
	EyeHeight   float64

	ObstacleCount int
	ObstacleSize  Vec3
	ObstacleY     float64

	TaskCount      int
	TaskSize       Vec3
	TaskY          float64
	InteractRadius float64

	Seed uint32
}

// DefaultParams matches the stock room: ten obstacles, ten tasks, a 40×40
// placement square, and a one-unit interaction radius.
func DefaultParams() Params {
	return Params{
		SpawnExtent:    20,
		PlayerStart:    V3(0, 0.5, 0),
		PlayerSize:     V3(0.5, 1, 0.5),
		Speed:          0.05,
		EyeHeight:      1.5,
		ObstacleCount:  10,
		ObstacleSize:   V3(1, 2, 1),
		ObstacleY:      1,
		TaskCount:      10,
		TaskSize:       V3(0.5, 0.5, 0.5),
		TaskY:          0.25,
		InteractRadius: 1,
	}
}

// TaskID identifies a collectible task for the lifetime of a session.
type TaskID uint16

// Obstacle is a static box the player cannot enter.
type Obstacle struct {
	Pos  Vec3
	Size Vec3
}

func (o Obstacle) Box() Box { return BoxAround(o.Pos, o.Size) }

// Task is a collectible completed by proximity interaction.
type Task struct {
	ID   TaskID
	Pos  Vec3
	Size Vec3
}

func (t Task) Box() Box { return BoxAround(t.Pos, t.Size) }

// Observer receives session side effects. Calls happen synchronously on the
// goroutine that drives the session.
type Observer interface {
	Collided(at Vec3)
	TaskCompleted(t Task, score, remaining int)
}

// Frame summarizes one Step.
type Frame struct {
	Moved    bool
	Collided bool
	Near     *Task
}

// Session owns all mutable game state: the player, the static obstacles, the
// remaining tasks and the score.
type Session struct {
	p   Params
	obs Observer

	player    Vec3
	input     Input
	obstacles []Obstacle
	tasks     []Task
	near      int // index into tasks, -1 when nothing is in range
	score     int
}

// NewSession builds a session and places obstacles and tasks. Placement is
// deterministic for a given Params.Seed.
func NewSession(p Params, obs Observer) *Session {
	s := &Session{
		p:      p,
		obs:    obs,
		player: p.PlayerStart,
		near:   -1,
	}

	rng := newPlacer(p.Seed)
	s.obstacles = make([]Obstacle, 0, p.ObstacleCount)
	for i := 0; i < p.ObstacleCount; i++ {
		x, z := rng.pointXZ(p.SpawnExtent)
		s.obstacles = append(s.obstacles, Obstacle{Pos: V3(x, p.ObstacleY, z), Size: p.ObstacleSize})
	}
	s.tasks = make([]Task, 0, p.TaskCount)
	for i := 0; i < p.TaskCount; i++ {
		x, z := rng.pointXZ(p.SpawnExtent)
		s.tasks = append(s.tasks, Task{ID: TaskID(i + 1), Pos: V3(x, p.TaskY, z), Size: p.TaskSize})
	}
	return s
}

// NewSessionWith builds a session around an explicit layout.
func NewSessionWith(p Params, obs Observer, obstacles []Obstacle, tasks []Task) *Session {
	s := &Session{
		p:         p,
		obs:       obs,
		player:    p.PlayerStart,
		near:      -1,
		obstacles: append([]Obstacle(nil), obstacles...),
		tasks:     append([]Task(nil), tasks...),
	}
	return s
}

func (s *Session) Params() Params        { return s.p }
func (s *Session) Player() Vec3          { return s.player }
func (s *Session) PlayerBox() Box        { return BoxAround(s.player, s.p.PlayerSize) }
func (s *Session) Input() Input          { return s.input }
func (s *Session) Score() int            { return s.score }
func (s *Session) Remaining() int        { return len(s.tasks) }
func (s *Session) Obstacles() []Obstacle { return s.obstacles }
func (s *Session) Tasks() []Task         { return s.tasks }

// Eye returns the camera position: the player position raised by the eye height.
func (s *Session) Eye() Vec3 {
	return s.player.Add(V3(0, s.p.EyeHeight, 0))
}

// Near returns the task selected by the last proximity scan.
func (s *Session) Near() (Task, bool) {
	if s.near < 0 || s.near >= len(s.tasks) {
		return Task{}, false
	}
	return s.tasks[s.near], true
}

// Press handles a key-down. Movement keys latch their flag; the interact key
// completes the nearby task immediately. It reports whether a task was completed.
func (s *Session) Press(k Key) bool {
	if k == KeyInteract {
		_, ok := s.Interact()
		return ok
	}
	s.input.set(k, true)
	return false
}

// Release handles a key-up. Interact has no release semantics.
func (s *Session) Release(k Key) {
	s.input.set(k, false)
}

// Step advances one frame: move, reject the move on any obstacle overlap,
// then rescan task proximity.
func (s *Session) Step() Frame {
	var f Frame

	start := s.player
	if s.input.Any() {
		s.player = start.Add(s.input.delta(s.p.Speed))
		if s.collides() {
			s.player = start
			f.Collided = true
			if s.obs != nil {
				s.obs.Collided(start)
			}
		}
		f.Moved = s.player != start
	}

	s.scanProximity()
	if t, ok := s.Near(); ok {
		f.Near = &t
	}
	return f
}

// Interact completes the nearby task, if any. A call with nothing in range is
// a no-op.
func (s *Session) Interact() (Task, bool) {
	t, ok := s.Near()
	if !ok {
		return Task{}, false
	}
	s.tasks = append(s.tasks[:s.near], s.tasks[s.near+1:]...)
	s.near = -1
	s.score++
	if s.obs != nil {
		s.obs.TaskCompleted(t, s.score, len(s.tasks))
	}
	return t, true
}

func (s *Session) collides() bool {
	pb := s.PlayerBox()
	for _, o := range s.obstacles {
		if pb.Intersects(o.Box()) {
			return true
		}
	}
	return false
}

// scanProximity keeps the first task in slice order that lies strictly inside
// the interaction radius, not the closest one.
func (s *Session) scanProximity() {
	s.near = -1
	for i, t := range s.tasks {
		if s.player.DistanceTo(t.Pos) < s.p.InteractRadius {
			s.near = i
			return
		}
	}
}
