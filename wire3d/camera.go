package wire3d

import "math"

const (
	// MaxPitch bounds Camera.Pitch in degrees on both sides.
	MaxPitch = 89.0

	DefaultFOV         = 90.0
	DefaultAspectRatio = 9.0 / 16.0
	DefaultNear        = 0.1
	DefaultFar         = 100.0
	DefaultMoveSpeed   = 0.1
	DefaultRotateSpeed = 5.0
)

// OffScreen is returned by Project for points at or behind the camera plane. It lies
// outside NDC so viewport clipping discards it.
var OffScreen = Vec2{X: 10, Y: 10}

// Camera is a first-person camera. Angles are in degrees.
//
// Yaw is unbounded. Pitch is kept in [-MaxPitch, MaxPitch] by every mutation that
// goes through this package.
type Camera struct {
	Position Vec3

	Yaw   float64
	Pitch float64

	FOV         float64
	AspectRatio float64

	Near float64
	Far  float64

	MoveSpeed   float64
	RotateSpeed float64
}

// DefaultCamera returns the startup camera: one unit behind the origin, looking
// down +Z.
func DefaultCamera() Camera {
	return Camera{
		Position:    V3(0, 0, -1),
		FOV:         DefaultFOV,
		AspectRatio: DefaultAspectRatio,
		Near:        DefaultNear,
		Far:         DefaultFar,
		MoveSpeed:   DefaultMoveSpeed,
		RotateSpeed: DefaultRotateSpeed,
	}
}

// SetPitch stores p clamped to [-MaxPitch, MaxPitch].
func (c *Camera) SetPitch(p float64) { c.Pitch = clamp(p, -MaxPitch, MaxPitch) }

// Forward is the unit view direction derived from yaw and pitch.
func (c Camera) Forward() Vec3 {
	sy, cy := math.Sincos(radians(c.Yaw))
	sp, cp := math.Sincos(radians(c.Pitch))
	return Vec3{X: cp * sy, Y: sp, Z: cp * cy}
}

// Right ignores pitch so strafing stays level.
func (c Camera) Right() Vec3 {
	sy, cy := math.Sincos(radians(c.Yaw))
	return Vec3{X: cy, Y: 0, Z: -sy}
}

// ForwardMovement is Forward projected onto the horizontal plane.
func (c Camera) ForwardMovement() Vec3 {
	sy, cy := math.Sincos(radians(c.Yaw))
	return Vec3{X: sy, Y: 0, Z: cy}
}

// WorldToView moves p into camera space: translate by -Position, rotate by -Yaw
// about Y, then by -Pitch about X. The order is fixed.
//
// Both rotations are measured in the same sense as Forward, so Position+Forward()
// lands on (0, 0, 1).
func (c Camera) WorldToView(p Vec3) Vec3 {
	p = p.Sub(c.Position)

	sy, cy := math.Sincos(-radians(c.Yaw))
	p = Vec3{
		X: p.X*cy + p.Z*sy,
		Y: p.Y,
		Z: p.Z*cy - p.X*sy,
	}

	sp, cp := math.Sincos(-radians(c.Pitch))
	return Vec3{
		X: p.X,
		Y: p.Y*cp + p.Z*sp,
		Z: p.Z*cp - p.Y*sp,
	}
}

// Basis returns the orthonormal camera basis in world space.
func (c Camera) Basis() (right, up, forward Vec3) {
	forward = c.Forward().Normalize()
	right = c.Right().Normalize()
	up = forward.Cross(right).Normalize()
	return right, up, forward
}

// CameraToWorld rotates a camera-local direction into world space. It does not
// translate.
func (c Camera) CameraToWorld(d Vec3) Vec3 {
	right, up, forward := c.Basis()
	return right.Scale(d.X).Add(up.Scale(d.Y)).Add(forward.Scale(d.Z))
}

func (c Camera) focalScale() float64 {
	return math.Tan(radians(c.FOV) / 2)
}

// Project applies the perspective divide to a view-space point and returns device
// coordinates. Points in the field of view land in [-1, 1] on both axes.
func (c Camera) Project(view Vec3) Vec2 {
	if view.Z <= 0 {
		return OffScreen
	}
	scale := c.focalScale()
	return Vec2{
		X: view.X / (scale * view.Z) * c.AspectRatio,
		Y: view.Y / (scale * view.Z),
	}
}

// ProjectWorld is WorldToView followed by Project.
func (c Camera) ProjectWorld(p Vec3) Vec2 {
	return c.Project(c.WorldToView(p))
}
