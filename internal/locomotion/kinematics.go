package locomotion

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"scene-walker/internal/input"
)

// Mode selects how the acceleration scalar is shared between axes.
type Mode int

const (
	// Shared keeps one scalar for every direction. Each held direction ramps it, and any
	// key release zeroes it. This matches how the walking demos have always felt.
	Shared Mode = iota
	// PerAxis keeps one scalar for forward/backward and one for strafing; a release only
	// zeroes the axis it belongs to.
	PerAxis
)

// ParseMode maps the config spelling ("shared", "per-axis") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "shared", "":
		return Shared, nil
	case "per-axis":
		return PerAxis, nil
	}
	return Shared, fmt.Errorf("locomotion: unknown acceleration mode %q", s)
}

func (m Mode) String() string {
	if m == PerAxis {
		return "per-axis"
	}
	return "shared"
}

// Kinematics is the per-session motion state. Velocity.X is the longitudinal (forward)
// component and Velocity.Z the lateral (right) one; Y is unused by walking.
type Kinematics struct {
	Velocity mgl32.Vec3
	// Acceleration is the shared scalar, or the longitudinal one in PerAxis mode.
	Acceleration float32
	// Lateral is the strafe scalar in PerAxis mode; always zero in Shared mode.
	Lateral float32

	mode Mode
}

// NewKinematics returns a resting state using mode.
func NewKinematics(mode Mode) *Kinematics {
	return &Kinematics{mode: mode}
}

// Mode reports the acceleration mode.
func (k *Kinematics) Mode() Mode {
	return k.mode
}

// SetMode switches modes and brings the body to rest.
func (k *Kinematics) SetMode(m Mode) {
	k.mode = m
	k.Reset()
}

// Reset zeroes velocity and both scalars.
func (k *Kinematics) Reset() {
	k.Velocity = mgl32.Vec3{}
	k.Acceleration = 0
	k.Lateral = 0
}

// Release implements input.Releaser.
func (k *Kinematics) Release(f input.Flag) {
	if k.mode == Shared {
		k.Acceleration = 0
		return
	}
	switch f {
	case input.Left, input.Right:
		k.Lateral = 0
	default:
		k.Acceleration = 0
	}
}

// Speed is the length of the current velocity.
func (k *Kinematics) Speed() float32 {
	return k.Velocity.Len()
}
