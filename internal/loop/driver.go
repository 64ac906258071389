// Package loop runs the per-frame cycle: wait for the host's next frame, poll, update the
// time uniforms, integrate movement and render. It replaces a self-rescheduling callback with
// an explicit loop that teardown can stop.
package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// State is the driver's lifecycle position.
type State int32

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// ErrAlreadyStarted is returned by a second Run call.
var ErrAlreadyStarted = errors.New("loop: driver already started")

// FrameSource blocks until the host is ready for the next frame. It returns false once the
// host is gone (window closed).
type FrameSource interface {
	NextFrame() bool
}

// FrameFunc adapts a function to FrameSource.
type FrameFunc func() bool

// NextFrame calls f.
func (f FrameFunc) NextFrame() bool { return f() }

// TimeSource reports time elapsed since it was started. It must be monotonic.
type TimeSource interface {
	Elapsed() time.Duration
}

type monoClock struct{ start time.Time }

func (c monoClock) Elapsed() time.Duration { return time.Since(c.start) }

// NewClock returns a TimeSource started now.
func NewClock() TimeSource {
	return monoClock{start: time.Now()}
}

// Frame describes one iteration.
type Frame struct {
	Index uint64
	// Time is seconds since the clock started; it feeds the shader time uniform.
	Time float32
	// Delta is seconds since the previous frame, 0 on the first.
	Delta float32
}

// Hooks are the per-frame stages, called in field order. Nil stages are skipped.
type Hooks struct {
	// Poll drains host input, asset completions and reload notices.
	Poll func(Frame)
	// Uniforms pushes Frame.Time into the shader uniforms.
	Uniforms func(Frame)
	// Integrate advances locomotion and moves the camera rig.
	Integrate func(Frame)
	// Render draws the frame.
	Render func(Frame)
}

// Driver owns the loop state.
type Driver struct {
	frames FrameSource
	clock  TimeSource
	hooks  Hooks

	state atomic.Int32
	stop  atomic.Bool
	count atomic.Uint64
}

// NewDriver returns an idle driver. A nil clock uses NewClock at construction.
func NewDriver(frames FrameSource, clock TimeSource, hooks Hooks) *Driver {
	if clock == nil {
		clock = NewClock()
	}
	return &Driver{frames: frames, clock: clock, hooks: hooks}
}

// State reports the lifecycle position.
func (d *Driver) State() State {
	return State(d.state.Load())
}

// Frames reports how many iterations have completed.
func (d *Driver) Frames() uint64 {
	return d.count.Load()
}

// Stop asks the loop to exit before its next frame. Safe from any goroutine, and before Run.
func (d *Driver) Stop() {
	d.stop.Store(true)
}

// Run loops until ctx is cancelled, Stop is called or the frame source ends. It blocks the
// calling goroutine, which must be the one the host's graphics context belongs to.
func (d *Driver) Run(ctx context.Context) error {
	if !d.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return ErrAlreadyStarted
	}
	defer d.state.Store(int32(Stopped))

	var prev float32
	for {
		if d.stop.Load() || ctx.Err() != nil {
			return nil
		}
		if !d.frames.NextFrame() {
			return nil
		}
		// cancellation can arrive while NextFrame blocks
		if d.stop.Load() || ctx.Err() != nil {
			return nil
		}

		now := float32(d.clock.Elapsed().Seconds())
		f := Frame{Index: d.count.Load(), Time: now}
		if f.Index > 0 {
			f.Delta = now - prev
		}
		prev = now

		call(d.hooks.Poll, f)
		call(d.hooks.Uniforms, f)
		call(d.hooks.Integrate, f)
		call(d.hooks.Render, f)
		d.count.Add(1)
	}
}

func call(fn func(Frame), f Frame) {
	if fn != nil {
		fn(f)
	}
}
