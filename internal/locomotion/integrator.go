package locomotion

import (
	"github.com/chewxy/math32"

	"scene-walker/internal/input"
)

// Defaults used when Params fields are zero.
const (
	DefaultIncrement = 0.05
	DefaultCap       = 1.0
	DefaultSprintCap = 2.0
)

// Params tunes the ramp. The increment is applied once per Step call, so the resulting
// speed depends on frame rate.
type Params struct {
	Increment float32
	Cap       float32
	SprintCap float32
	// SprintEnabled lets the sprint flag raise the forward cap to SprintCap.
	SprintEnabled bool
}

func (p Params) withDefaults() Params {
	if p.Increment <= 0 {
		p.Increment = DefaultIncrement
	}
	if p.Cap <= 0 {
		p.Cap = DefaultCap
	}
	if p.SprintCap < p.Cap {
		p.SprintCap = math32.Max(DefaultSprintCap, p.Cap)
	}
	return p
}

// Mover is the camera rig the velocity is applied to.
type Mover interface {
	MoveForward(distance float32)
	MoveRight(distance float32)
}

// Integrator converts held input into velocity once per frame.
type Integrator struct {
	params Params
}

// NewIntegrator returns an integrator; zero Params fields take the package defaults.
func NewIntegrator(p Params) *Integrator {
	return &Integrator{params: p.withDefaults()}
}

// Params returns the effective parameters.
func (in *Integrator) Params() Params {
	return in.params
}

func (in *Integrator) forwardCap(s input.State) float32 {
	if s.Sprint && in.params.SprintEnabled {
		return in.params.SprintCap
	}
	return in.params.Cap
}

// ramp raises a by one increment, stopping at limit. A value already at or above limit is
// left alone, so a lower-capped direction never pulls a sprint back down.
func (in *Integrator) ramp(a, limit float32) float32 {
	if a >= limit {
		return a
	}
	return math32.Min(a+in.params.Increment, limit)
}

// Step zeroes the velocity and rebuilds it from s, updating k's acceleration.
func (in *Integrator) Step(s input.State, k *Kinematics) {
	k.Velocity[0], k.Velocity[1], k.Velocity[2] = 0, 0, 0
	if k.mode == PerAxis {
		in.stepPerAxis(s, k)
		return
	}

	// Every held direction ramps the one shared scalar, in a fixed order; the axes then all
	// report the final value, so diagonals are not normalized.
	a := k.Acceleration
	if s.Forward {
		a = in.ramp(a, in.forwardCap(s))
	}
	if s.Backward {
		a = in.ramp(a, in.params.Cap)
	}
	if s.Left {
		a = in.ramp(a, in.params.Cap)
	}
	if s.Right {
		a = in.ramp(a, in.params.Cap)
	}
	k.Acceleration = a

	if s.Forward {
		k.Velocity[0] = a
	}
	if s.Backward {
		k.Velocity[0] = -a
	}
	if s.Left {
		k.Velocity[2] = -a
	}
	if s.Right {
		k.Velocity[2] = a
	}
}

func (in *Integrator) stepPerAxis(s input.State, k *Kinematics) {
	if s.Forward || s.Backward {
		limit := in.params.Cap
		if s.Forward && !s.Backward {
			limit = in.forwardCap(s)
		}
		k.Acceleration = in.ramp(k.Acceleration, limit)
		k.Velocity[0] = k.Acceleration * axis(s.Forward, s.Backward)
	}
	if s.Left || s.Right {
		k.Lateral = in.ramp(k.Lateral, in.params.Cap)
		k.Velocity[2] = k.Lateral * axis(s.Right, s.Left)
	}
}

func axis(pos, neg bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

// Apply moves m by k's velocity times scale (1 for per-frame stepping).
func Apply(m Mover, k *Kinematics, scale float32) {
	if k.Velocity[0] != 0 {
		m.MoveForward(k.Velocity[0] * scale)
	}
	if k.Velocity[2] != 0 {
		m.MoveRight(k.Velocity[2] * scale)
	}
}

// FrameScale returns the distance multiplier for a frame of dt seconds. referenceFPS <= 0
// keeps the fixed per-frame step.
func FrameScale(dt, referenceFPS float32) float32 {
	if referenceFPS <= 0 || dt <= 0 {
		return 1
	}
	return dt * referenceFPS
}
