package world

import (
	"math"
	"testing"
)

type recorder struct {
	collisions int
	completed  []Task
	scores     []int
	remaining  []int
}

func (r *recorder) Collided(Vec3) { r.collisions++ }

func (r *recorder) TaskCompleted(t Task, score, remaining int) {
	r.completed = append(r.completed, t)
	r.scores = append(r.scores, score)
	r.remaining = append(r.remaining, remaining)
}

func emptyRoom(obstacles []Obstacle, tasks []Task) (*Session, *recorder) {
	rec := &recorder{}
	return NewSessionWith(DefaultParams(), rec, obstacles, tasks), rec
}

func TestStepWithoutInputKeepsPosition(t *testing.T) {
	s := NewSession(DefaultParams(), nil)
	start := s.Player()
	for i := 0; i < 120; i++ {
		f := s.Step()
		if f.Moved || f.Collided {
			t.Fatalf("frame %d: unexpected frame %+v", i, f)
		}
	}
	if got := s.Player(); got != start {
		t.Fatalf("player moved without input: %v -> %v", start, got)
	}
}

func TestOpposingKeysCancel(t *testing.T) {
	s, _ := emptyRoom(nil, nil)
	s.Press(KeyForward)
	s.Press(KeyBackward)
	s.Press(KeyLeft)
	s.Press(KeyRight)
	f := s.Step()
	if f.Moved {
		t.Fatalf("expected no net movement, got %v", s.Player())
	}
}

func TestMovementAxes(t *testing.T) {
	cases := []struct {
		key  Key
		want Vec3
	}{
		{KeyForward, V3(0, 0.5, -0.05)},
		{KeyBackward, V3(0, 0.5, 0.05)},
		{KeyLeft, V3(-0.05, 0.5, 0)},
		{KeyRight, V3(0.05, 0.5, 0)},
	}
	for _, tc := range cases {
		s, _ := emptyRoom(nil, nil)
		s.Press(tc.key)
		s.Step()
		if got := s.Player(); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.key, got, tc.want)
		}
		s.Release(tc.key)
		s.Step()
		if got := s.Player(); got != tc.want {
			t.Fatalf("%s: moved after release: %v", tc.key, got)
		}
	}
}

func TestCollisionRevertsFromOverlappingStart(t *testing.T) {
	s, rec := emptyRoom([]Obstacle{{Pos: V3(0, 1, 0), Size: V3(1, 2, 1)}}, nil)
	s.Press(KeyForward)
	f := s.Step()
	if !f.Collided {
		t.Fatal("expected collision")
	}
	if got := s.Player(); got != V3(0, 0.5, 0) {
		t.Fatalf("expected revert to (0,0.5,0), got %v", got)
	}
	if rec.collisions != 1 {
		t.Fatalf("expected one collision notice, got %d", rec.collisions)
	}
}

func TestCollisionRevertsWholeDiagonalMove(t *testing.T) {
	p := DefaultParams()
	p.PlayerStart = V3(0, 0.5, 1.2)
	s := NewSessionWith(p, nil, []Obstacle{{Pos: V3(0, 1, 0), Size: V3(1, 2, 1)}}, nil)

	s.Press(KeyForward)
	s.Press(KeyRight)

	var hit bool
	for i := 0; i < 200; i++ {
		before := s.Player()
		f := s.Step()
		if f.Collided {
			if got := s.Player(); got != before {
				t.Fatalf("collision frame moved player: %v -> %v", before, got)
			}
			hit = true
			break
		}
	}
	if !hit {
		t.Fatal("expected the player to run into the obstacle")
	}

	// Without wall sliding the player stays pinned while both keys are held.
	pinned := s.Player()
	for i := 0; i < 10; i++ {
		s.Step()
	}
	if got := s.Player(); got != pinned {
		t.Fatalf("expected player pinned at %v, got %v", pinned, got)
	}
}

func TestInteractCompletesNearbyTask(t *testing.T) {
	target := Task{ID: 7, Pos: V3(2, 0.25, 2), Size: V3(0.5, 0.5, 0.5)}
	other := Task{ID: 8, Pos: V3(-15, 0.25, -15), Size: V3(0.5, 0.5, 0.5)}
	s, rec := emptyRoom(nil, []Task{other, target})

	s.Press(KeyRight)
	s.Press(KeyBackward)
	var near *Task
	for i := 0; i < 100 && near == nil; i++ {
		near = s.Step().Near
	}
	if near == nil || near.ID != target.ID {
		t.Fatalf("expected task %d in range, got %+v", target.ID, near)
	}
	if d := s.Player().DistanceTo(target.Pos); d >= 1 {
		t.Fatalf("near task reported at distance %v", d)
	}
	s.Release(KeyRight)
	s.Release(KeyBackward)

	before := s.Remaining()
	if !s.Press(KeyInteract) {
		t.Fatal("expected interact to complete the task")
	}
	if s.Score() != 1 {
		t.Fatalf("expected score 1, got %d", s.Score())
	}
	if s.Remaining() != before-1 {
		t.Fatalf("expected remaining %d, got %d", before-1, s.Remaining())
	}
	for _, tk := range s.Tasks() {
		if tk.ID == target.ID {
			t.Fatal("completed task still present")
		}
	}
	if _, ok := s.Near(); ok {
		t.Fatal("expected nearby reference cleared")
	}
	if len(rec.completed) != 1 || rec.completed[0].ID != target.ID || rec.scores[0] != 1 || rec.remaining[0] != 1 {
		t.Fatalf("unexpected observer calls: %+v", rec)
	}
}

func TestInteractOutOfRangeIsNoop(t *testing.T) {
	tasks := []Task{
		{ID: 1, Pos: V3(1, 0.5, 0)}, // exactly on the radius, not inside it
		{ID: 2, Pos: V3(5, 0.25, 5)},
	}
	s, rec := emptyRoom(nil, tasks)
	s.Step()

	for i := 0; i < 2; i++ {
		if s.Press(KeyInteract) {
			t.Fatalf("interact %d: unexpected completion", i)
		}
		if _, ok := s.Interact(); ok {
			t.Fatalf("interact %d: unexpected completion", i)
		}
	}
	if s.Score() != 0 || s.Remaining() != 2 || len(rec.completed) != 0 {
		t.Fatalf("state changed: score=%d remaining=%d", s.Score(), s.Remaining())
	}
}

func TestProximityPicksFirstInOrderNotClosest(t *testing.T) {
	tasks := []Task{
		{ID: 1, Pos: V3(0.8, 0.5, 0)},
		{ID: 2, Pos: V3(0.1, 0.5, 0)},
	}
	s, _ := emptyRoom(nil, tasks)
	f := s.Step()
	if f.Near == nil || f.Near.ID != 1 {
		t.Fatalf("expected first task in order, got %+v", f.Near)
	}
}

func TestProximityRecomputedEachFrame(t *testing.T) {
	s, _ := emptyRoom(nil, []Task{{ID: 1, Pos: V3(0, 0.5, -0.9)}})
	if f := s.Step(); f.Near == nil {
		t.Fatal("expected task in range")
	}
	s.Press(KeyBackward)
	for i := 0; i < 3; i++ {
		s.Step()
	}
	if _, ok := s.Near(); ok {
		t.Fatal("expected task out of range after moving away")
	}
}

func TestScoreAndRemainingMonotonic(t *testing.T) {
	p := DefaultParams()
	p.Seed = 42
	p.SpawnExtent = 2
	p.ObstacleCount = 0
	p.TaskCount = 6
	s := NewSession(p, nil)

	keys := []Key{KeyForward, KeyRight, KeyBackward, KeyLeft}
	prevRemaining, prevScore := s.Remaining(), s.Score()
	completed := 0
	for frame := 0; frame < 4000; frame++ {
		k := keys[(frame/37)%len(keys)]
		s.Press(k)
		s.Step()
		s.Release(k)
		if s.Press(KeyInteract) {
			completed++
		}
		if s.Remaining() > prevRemaining || s.Score() < prevScore {
			t.Fatalf("frame %d: non-monotonic state", frame)
		}
		if prevRemaining-s.Remaining() > 1 {
			t.Fatalf("frame %d: removed more than one task", frame)
		}
		prevRemaining, prevScore = s.Remaining(), s.Score()
	}
	if s.Score() != completed {
		t.Fatalf("score %d != completed %d", s.Score(), completed)
	}
	if s.Score()+s.Remaining() != p.TaskCount {
		t.Fatalf("score+remaining = %d, want %d", s.Score()+s.Remaining(), p.TaskCount)
	}
}

func TestNewSessionPlacement(t *testing.T) {
	p := DefaultParams()
	p.Seed = 7
	a := NewSession(p, nil)
	b := NewSession(p, nil)

	if len(a.Obstacles()) != 10 || len(a.Tasks()) != 10 {
		t.Fatalf("unexpected counts: %d obstacles, %d tasks", len(a.Obstacles()), len(a.Tasks()))
	}
	for i, o := range a.Obstacles() {
		if o != b.Obstacles()[i] {
			t.Fatalf("obstacle %d differs for same seed", i)
		}
		if o.Pos.Y != 1 || math.Abs(o.Pos.X) > 20 || math.Abs(o.Pos.Z) > 20 {
			t.Fatalf("obstacle %d out of bounds: %v", i, o.Pos)
		}
	}
	seen := map[TaskID]bool{}
	for _, tk := range a.Tasks() {
		if seen[tk.ID] {
			t.Fatalf("duplicate task id %d", tk.ID)
		}
		seen[tk.ID] = true
		if tk.Pos.Y != 0.25 || tk.Pos.X < -20 || tk.Pos.X >= 20 || tk.Pos.Z < -20 || tk.Pos.Z >= 20 {
			t.Fatalf("task %d out of bounds: %v", tk.ID, tk.Pos)
		}
	}

	p.Seed = 8
	c := NewSession(p, nil)
	if c.Obstacles()[0] == a.Obstacles()[0] {
		t.Fatal("expected a different layout for a different seed")
	}
}

func TestEyeFollowsPlayer(t *testing.T) {
	s, _ := emptyRoom(nil, nil)
	s.Press(KeyLeft)
	s.Step()
	eye := s.Eye()
	if eye.X != s.Player().X || eye.Z != s.Player().Z || eye.Y != s.Player().Y+1.5 {
		t.Fatalf("unexpected eye %v for player %v", eye, s.Player())
	}
}

func TestBoxIntersectsTouching(t *testing.T) {
	a := BoxAround(V3(0, 0, 0), V3(1, 1, 1))
	b := BoxAround(V3(1, 0, 0), V3(1, 1, 1))
	if !a.Intersects(b) {
		t.Fatal("touching boxes should intersect")
	}
	c := BoxAround(V3(1.01, 0, 0), V3(1, 1, 1))
	if a.Intersects(c) {
		t.Fatal("separated boxes should not intersect")
	}
}
