package wire3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec3Near(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x: want %v got %v", want, got)
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y: want %v got %v", want, got)
	assert.InDelta(t, want.Z, got.Z, 1e-9, "z: want %v got %v", want, got)
}

func TestCameraVectorsAtRest(t *testing.T) {
	c := DefaultCamera()
	assertVec3Near(t, V3(0, 0, 1), c.Forward())
	assertVec3Near(t, V3(1, 0, 0), c.Right())
	assertVec3Near(t, V3(0, 0, 1), c.ForwardMovement())
}

func TestCameraMovementIgnoresPitch(t *testing.T) {
	c := DefaultCamera()
	c.Yaw = 30
	c.SetPitch(60)

	assert.Equal(t, 0.0, c.Right().Y)
	assert.Equal(t, 0.0, c.ForwardMovement().Y)
	assert.InDelta(t, 1, c.ForwardMovement().Length(), 1e-12)
	assert.Greater(t, c.Forward().Y, 0.8)
}

func TestCameraYaw90(t *testing.T) {
	c := DefaultCamera()
	c.Yaw = 90
	assertVec3Near(t, V3(1, 0, 0), c.Forward())
	assertVec3Near(t, V3(0, 0, -1), c.Right())
}

func TestSetPitchClamps(t *testing.T) {
	c := DefaultCamera()
	c.SetPitch(120)
	assert.Equal(t, MaxPitch, c.Pitch)
	c.SetPitch(-1000)
	assert.Equal(t, -MaxPitch, c.Pitch)
	c.SetPitch(12.5)
	assert.Equal(t, 12.5, c.Pitch)
}

func TestWorldToViewForwardLandsOnAxis(t *testing.T) {
	for _, yaw := range []float64{0, 45, 90, -135, 400} {
		for _, pitch := range []float64{-80, -30, 0, 15, 89} {
			c := DefaultCamera()
			c.Position = V3(2, -1, 5)
			c.Yaw = yaw
			c.SetPitch(pitch)

			got := c.WorldToView(c.Position.Add(c.Forward()))
			assertVec3Near(t, V3(0, 0, 1), got)

			right, up, _ := c.Basis()
			assertVec3Near(t, V3(1, 0, 0), c.WorldToView(c.Position.Add(right)))
			assertVec3Near(t, V3(0, 1, 0), c.WorldToView(c.Position.Add(up)))
		}
	}
}

func TestWorldToViewTranslateOnly(t *testing.T) {
	c := DefaultCamera()
	assert.Equal(t, V3(1, 2, 4), c.WorldToView(V3(1, 2, 3)))
}

func TestCameraToWorldBasisIsOrthonormal(t *testing.T) {
	c := DefaultCamera()
	c.Yaw = 33
	c.SetPitch(-21)
	right, up, forward := c.Basis()

	assert.InDelta(t, 1, right.Length(), 1e-12)
	assert.InDelta(t, 1, up.Length(), 1e-12)
	assert.InDelta(t, 1, forward.Length(), 1e-12)
	assert.InDelta(t, 0, right.Dot(up), 1e-12)
	assert.InDelta(t, 0, right.Dot(forward), 1e-12)
	assert.InDelta(t, 0, up.Dot(forward), 1e-12)

	assertVec3Near(t, forward, c.CameraToWorld(V3(0, 0, 1)))
	assertVec3Near(t, up, c.CameraToWorld(V3(0, 1, 0)))
}

func TestProjectScalesInverselyWithDepth(t *testing.T) {
	c := DefaultCamera()
	for _, p := range []Vec3{V3(1, 0.5, 2), V3(-0.3, 0.7, 0.25), V3(0, -2, 10)} {
		near := c.Project(p)
		far := c.Project(V3(p.X, p.Y, p.Z*2))

		require.False(t, math.IsInf(near.X, 0) || math.IsNaN(near.X))
		require.False(t, math.IsInf(near.Y, 0) || math.IsNaN(near.Y))
		assert.InDelta(t, near.X/2, far.X, 1e-12)
		assert.InDelta(t, near.Y/2, far.Y, 1e-12)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	c := DefaultCamera()
	assert.Equal(t, OffScreen, c.Project(V3(0, 0, 0)))
	assert.Equal(t, OffScreen, c.Project(V3(1, 1, -3)))
}

func TestProjectFieldOfViewEdge(t *testing.T) {
	c := DefaultCamera()
	c.AspectRatio = 1
	// At fov 90 the frustum edge is x == z.
	p := c.Project(V3(3, -3, 3))
	assert.InDelta(t, 1, p.X, 1e-12)
	assert.InDelta(t, -1, p.Y, 1e-12)
}

func TestProjectEndToEnd(t *testing.T) {
	c := DefaultCamera()
	c.AspectRatio = 16.0 / 9.0

	assert.Equal(t, V2(0, 0), c.ProjectWorld(V3(0, 0, 1)))
	assert.Equal(t, OffScreen, c.ProjectWorld(V3(0, 0, -2)))
}
