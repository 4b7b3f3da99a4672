package quarkgl

import "math"

// DefaultLookSensitivity is radians per pointer count.
const DefaultLookSensitivity = 0.002

// LookController turns pointer motion into a first-person view direction.
//
// Yaw 0 looks down -Z; positive yaw turns left. Pitch is clamped just short of
// straight up and straight down. Motion is only applied while the controller
// is locked, mirroring a captured pointer.
type LookController struct {
	Yaw   Scalar
	Pitch Scalar

	Sensitivity Scalar
	MaxPitch    Scalar

	locked bool
}

// NewLookController returns a controller with the default sensitivity and a
// pitch limit just inside ±π/2.
func NewLookController() *LookController {
	return &LookController{
		Sensitivity: DefaultLookSensitivity,
		MaxPitch:    math.Pi/2 - 0.001,
	}
}

func (c *LookController) Locked() bool { return c.locked }

// Lock engages the controller. It reports whether the state changed.
func (c *LookController) Lock() bool {
	if c.locked {
		return false
	}
	c.locked = true
	return true
}

// Unlock releases the controller. It reports whether the state changed.
func (c *LookController) Unlock() bool {
	if !c.locked {
		return false
	}
	c.locked = false
	return true
}

// Look applies a pointer delta. Moving right turns right, moving down looks
// down. Deltas are ignored while unlocked.
func (c *LookController) Look(dx, dy Scalar) {
	if !c.locked {
		return
	}
	s := c.Sensitivity
	if s == 0 {
		s = DefaultLookSensitivity
	}
	c.Yaw -= dx * s
	c.Pitch -= dy * s

	limit := c.MaxPitch
	if limit <= 0 || limit > math.Pi/2 {
		limit = math.Pi/2 - 0.001
	}
	if c.Pitch > limit {
		c.Pitch = limit
	}
	if c.Pitch < -limit {
		c.Pitch = -limit
	}
	c.Yaw = Scalar(math.Remainder(float64(c.Yaw), 2*math.Pi))
}

// Forward returns the unit view direction.
func (c *LookController) Forward() Vec3 {
	sy, cy := math.Sincos(float64(c.Yaw))
	sp, cp := math.Sincos(float64(c.Pitch))
	return V3(Scalar(-sy*cp), Scalar(sp), Scalar(-cy*cp))
}

// Apply places the camera at eye looking along Forward.
func (c *LookController) Apply(cam *Camera, eye Vec3) {
	cam.Position = eye
	cam.Target = eye.Add(c.Forward())
	cam.Up = V3(0, 1, 0)
}
