// Package wire3d is the geometry core of wirecam: a first-person camera, perspective
// projection and two clipping stages that turn 3D wireframe shapes into 2D segments.
//
// Pipeline (fixed):
//
//	World → View (translate, yaw, pitch) → Near/Far clip → Project → Viewport clip.
//
// Everything is plain float64 arithmetic. Degenerate inputs are handled by policy,
// not by errors: zero-length vectors normalize to zero, points behind the camera
// project to OffScreen and segments outside the view are dropped silently.
//
// The package holds no global state and is not safe for concurrent mutation of a
// Camera; callers own the camera and mutate it between frames.
package wire3d
