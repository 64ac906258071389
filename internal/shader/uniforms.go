// Package shader holds the GLSL programs the scene draws with, the per-frame uniform values
// they read and a file watcher for live editing. Nothing here touches the GPU; the graphics
// package compiles sources and pushes Uniforms each frame.
package shader

import "github.com/go-gl/mathgl/mgl32"

// Uniforms is the value set shared by the pattern programs.
type Uniforms struct {
	// Time is seconds since the render loop's clock started.
	Time float32
	// Resolution is the drawable size in pixels.
	Resolution mgl32.Vec2

	resync bool
	dirty  bool
}

// NewUniforms starts at the given drawable size. With resync false the resolution stays at
// the startup size for the whole session.
func NewUniforms(width, height int32, resync bool) *Uniforms {
	return &Uniforms{
		Time:       0,
		Resolution: mgl32.Vec2{float32(width), float32(height)},
		resync:     resync,
		dirty:      true,
	}
}

// SetTime stores the elapsed time.
func (u *Uniforms) SetTime(seconds float32) {
	u.Time = seconds
}

// Resize records a new drawable size. It reports whether the resolution changed; a false
// return with a different size means resync is disabled.
func (u *Uniforms) Resize(width, height int32) bool {
	if !u.resync {
		return false
	}
	next := mgl32.Vec2{float32(width), float32(height)}
	if next == u.Resolution {
		return false
	}
	u.Resolution = next
	u.dirty = true
	return true
}

// Resyncs reports whether Resize updates the resolution.
func (u *Uniforms) Resyncs() bool {
	return u.resync
}

// TakeResolution returns the resolution and true once after each change, so the caller
// uploads it only when needed. Time changes every frame and is not tracked.
func (u *Uniforms) TakeResolution() (mgl32.Vec2, bool) {
	if !u.dirty {
		return u.Resolution, false
	}
	u.dirty = false
	return u.Resolution, true
}

// MarkDirty forces the next TakeResolution to report the resolution, e.g. after a program
// is recompiled and has lost its uniform values.
func (u *Uniforms) MarkDirty() {
	u.dirty = true
}
