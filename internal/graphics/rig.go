package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"scene-walker/internal/config"
)

// orbitZoomStep is the distance one wheel notch moves the orbit camera.
const orbitZoomStep = 2

// Rig is the camera plus the control scheme driving it. In pointer-lock mode the hidden
// cursor's motion turns the view and MoveForward/MoveRight walk on the XZ plane; in orbit
// mode dragging with the left button circles the target and the wheel zooms.
type Rig struct {
	Camera rl.Camera3D

	mode        string
	sensitivity float32
	locked      bool
	// forward and right distances queued by the integrator for this frame
	walk rl.Vector3
}

// NewRig places the camera per cfg.
func NewRig(cfg config.CameraConfig) *Rig {
	r := &Rig{mode: cfg.Mode, sensitivity: cfg.Sensitivity}
	r.Camera.Position = vec(cfg.Position)
	r.Camera.Target = vec(cfg.Target)
	r.Camera.Up = rl.NewVector3(0, 1, 0)
	r.Camera.Fovy = cfg.Fovy
	r.Camera.Projection = rl.CameraPerspective
	return r
}

// PointerLock reports whether the rig uses the pointer-lock scheme.
func (r *Rig) PointerLock() bool {
	return r.mode == config.CameraPointerLock
}

// Lock hides and captures the cursor. It is a no-op in orbit mode.
func (r *Rig) Lock() {
	if !r.PointerLock() || r.locked {
		return
	}
	rl.DisableCursor()
	r.locked = true
}

// Unlock releases the cursor.
func (r *Rig) Unlock() {
	if !r.locked {
		return
	}
	rl.EnableCursor()
	r.locked = false
}

// Locked reports whether the cursor is captured.
func (r *Rig) Locked() bool {
	return r.locked
}

// MoveForward queues a walk along the view direction projected on the ground.
func (r *Rig) MoveForward(d float32) { r.walk.X += d }

// MoveRight queues a strafe.
func (r *Rig) MoveRight(d float32) { r.walk.Y += d }

// Update applies queued movement and this frame's mouse input.
func (r *Rig) Update() {
	if !r.PointerLock() {
		r.updateOrbit()
		return
	}
	var look rl.Vector3
	if r.locked {
		d := rl.GetMouseDelta()
		look = rl.NewVector3(d.X*r.sensitivity, d.Y*r.sensitivity, 0)
	}
	rl.UpdateCameraPro(&r.Camera, r.walk, look, 0)
	r.walk = rl.Vector3{}
}

func (r *Rig) updateOrbit() {
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		rl.CameraYaw(&r.Camera, -d.X*r.sensitivity*rl.Deg2rad, true)
		rl.CameraPitch(&r.Camera, -d.Y*r.sensitivity*rl.Deg2rad, true, true, false)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		rl.CameraMoveToTarget(&r.Camera, -wheel*orbitZoomStep)
	}
	r.walk = rl.Vector3{}
}

// Position returns the eye position.
func (r *Rig) Position() mgl32.Vec3 {
	p := r.Camera.Position
	return mgl32.Vec3{p.X, p.Y, p.Z}
}

// Target returns the look-at point; the screen center ray runs from Position through it.
func (r *Rig) Target() mgl32.Vec3 {
	t := r.Camera.Target
	return mgl32.Vec3{t.X, t.Y, t.Z}
}

// Teleport moves the eye to p, keeping the view direction.
func (r *Rig) Teleport(p mgl32.Vec3) {
	look := r.Target().Sub(r.Position())
	r.Camera.Position = rl.NewVector3(p[0], p[1], p[2])
	t := p.Add(look)
	r.Camera.Target = rl.NewVector3(t[0], t[1], t[2])
}

func vec(v [3]float32) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}
