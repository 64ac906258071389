package locomotion

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-walker/internal/input"
)

const tol = 1e-5

type moverRecorder struct {
	forward, right float32
	calls          int
}

func (m *moverRecorder) MoveForward(d float32) { m.forward += d; m.calls++ }
func (m *moverRecorder) MoveRight(d float32)   { m.right += d; m.calls++ }

func newSprinting() *Integrator {
	return NewIntegrator(Params{SprintEnabled: true})
}

func TestDefaults(t *testing.T) {
	p := NewIntegrator(Params{}).Params()
	assert.Equal(t, float32(0.05), p.Increment)
	assert.Equal(t, float32(1.0), p.Cap)
	assert.Equal(t, float32(2.0), p.SprintCap)
}

func TestNoFlagsZeroVelocity(t *testing.T) {
	in := newSprinting()
	k := NewKinematics(Shared)
	k.Velocity = mgl32.Vec3{3, 4, 5}
	k.Acceleration = 0.5

	for i := 0; i < 10; i++ {
		in.Step(input.State{}, k)
		assert.Equal(t, mgl32.Vec3{}, k.Velocity)
	}
}

func TestForwardRamp(t *testing.T) {
	in := newSprinting()
	k := NewKinematics(Shared)
	s := input.State{Forward: true}

	for step := 1; step < 20; step++ {
		in.Step(s, k)
		assert.InDelta(t, float32(step)*0.05, k.Velocity.X(), tol, "step %d", step)
		assert.Zero(t, k.Velocity.Z())
	}
	for i := 0; i < 30; i++ {
		in.Step(s, k)
	}
	assert.Equal(t, float32(1.0), k.Velocity.X())
	assert.Equal(t, float32(1.0), k.Acceleration)
}

func TestSprintSaturatesAtTwo(t *testing.T) {
	in := newSprinting()
	k := NewKinematics(Shared)
	s := input.State{Forward: true, Sprint: true}

	for i := 0; i < 100; i++ {
		in.Step(s, k)
		require.LessOrEqual(t, k.Acceleration, float32(2.0))
	}
	assert.Equal(t, float32(2.0), k.Velocity.X())
}

func TestSprintIgnoredWhenDisabled(t *testing.T) {
	in := NewIntegrator(Params{})
	k := NewKinematics(Shared)
	for i := 0; i < 100; i++ {
		in.Step(input.State{Forward: true, Sprint: true}, k)
	}
	assert.Equal(t, float32(1.0), k.Velocity.X())
}

func TestBackwardIgnoresSprint(t *testing.T) {
	in := newSprinting()
	k := NewKinematics(Shared)
	for i := 0; i < 100; i++ {
		in.Step(input.State{Backward: true, Sprint: true}, k)
	}
	assert.Equal(t, float32(-1.0), k.Velocity.X())
}

func TestStrafe(t *testing.T) {
	in := newSprinting()

	left := NewKinematics(Shared)
	right := NewKinematics(Shared)
	for i := 0; i < 3; i++ {
		in.Step(input.State{Left: true}, left)
		in.Step(input.State{Right: true}, right)
	}
	assert.InDelta(t, -0.15, left.Velocity.Z(), tol)
	assert.InDelta(t, 0.15, right.Velocity.Z(), tol)
	assert.Zero(t, left.Velocity.X())
}

func TestSharedScalarDiagonal(t *testing.T) {
	in := newSprinting()
	k := NewKinematics(Shared)
	s := input.State{Forward: true, Right: true}

	in.Step(s, k)
	// both held directions ramp the same scalar in one frame
	assert.InDelta(t, 0.1, k.Acceleration, tol)
	assert.InDelta(t, 0.1, k.Velocity.X(), tol)
	assert.InDelta(t, 0.1, k.Velocity.Z(), tol)

	for i := 0; i < 50; i++ {
		in.Step(s, k)
	}
	assert.Equal(t, k.Velocity.X(), k.Velocity.Z())
	assert.Equal(t, float32(1.0), k.Velocity.X())
}

func TestSprintSurvivesExtraDirection(t *testing.T) {
	tests := []struct {
		name  string
		extra input.State
		wantX float32
		wantZ float32
	}{
		{"strafe right", input.State{Forward: true, Sprint: true, Right: true}, 2.0, 2.0},
		{"strafe left", input.State{Forward: true, Sprint: true, Left: true}, 2.0, -2.0},
		{"backward", input.State{Forward: true, Sprint: true, Backward: true}, -2.0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newSprinting()
			k := NewKinematics(Shared)
			for i := 0; i < 60; i++ {
				in.Step(input.State{Forward: true, Sprint: true}, k)
			}
			require.Equal(t, float32(2.0), k.Acceleration)

			for i := 0; i < 10; i++ {
				in.Step(tt.extra, k)
				assert.Equal(t, float32(2.0), k.Acceleration, "frame %d", i)
			}
			assert.Equal(t, tt.wantX, k.Velocity.X())
			assert.Equal(t, tt.wantZ, k.Velocity.Z())
		})
	}
}

func TestStrafeBelowCapStillRamps(t *testing.T) {
	in := newSprinting()
	k := NewKinematics(Shared)
	k.Acceleration = 0.5
	in.Step(input.State{Right: true}, k)
	assert.InDelta(t, 0.55, k.Acceleration, tol)
}

func TestReleaseResetsShared(t *testing.T) {
	in := newSprinting()
	k := NewKinematics(Shared)
	var s input.State
	tr := input.NewTracker(&s, k)

	tr.KeyDown("KeyW")
	tr.KeyDown("KeyD")
	for i := 0; i < 10; i++ {
		in.Step(s, k)
	}
	require.Greater(t, k.Acceleration, float32(0))

	tr.KeyUp("KeyD")
	assert.Zero(t, k.Acceleration)

	in.Step(s, k)
	assert.InDelta(t, 0.05, k.Velocity.X(), tol)
}

func TestReleaseSprintDropsBackToCap(t *testing.T) {
	in := newSprinting()
	k := NewKinematics(Shared)
	var s input.State
	tr := input.NewTracker(&s, k)

	tr.KeyDown("KeyW")
	tr.KeyDown("ShiftLeft")
	for i := 0; i < 60; i++ {
		in.Step(s, k)
	}
	require.Equal(t, float32(2.0), k.Acceleration)

	tr.KeyUp("ShiftLeft")
	for i := 0; i < 60; i++ {
		in.Step(s, k)
	}
	assert.Equal(t, float32(1.0), k.Acceleration)
}

func TestPerAxis(t *testing.T) {
	in := newSprinting()
	k := NewKinematics(PerAxis)
	var s input.State
	tr := input.NewTracker(&s, k)

	tr.KeyDown("KeyW")
	for i := 0; i < 4; i++ {
		in.Step(s, k)
	}
	tr.KeyDown("KeyA")
	in.Step(s, k)

	assert.InDelta(t, 0.25, k.Velocity.X(), tol)
	assert.InDelta(t, -0.05, k.Velocity.Z(), tol)

	tr.KeyUp("KeyA")
	assert.InDelta(t, 0.25, k.Acceleration, tol)
	assert.Zero(t, k.Lateral)

	tr.KeyDown("KeyS")
	in.Step(s, k)
	assert.Zero(t, k.Velocity.X(), "forward and backward cancel")
}

func TestAccelerationStaysInRange(t *testing.T) {
	codes := input.Codes()
	for _, mode := range []Mode{Shared, PerAxis} {
		t.Run(mode.String(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(7))
			in := newSprinting()
			k := NewKinematics(mode)
			var s input.State
			tr := input.NewTracker(&s, k)

			for i := 0; i < 5000; i++ {
				if rng.Intn(3) == 0 {
					tr.SetFlag(codes[rng.Intn(len(codes))], rng.Intn(2) == 0)
				}
				in.Step(s, k)
				require.GreaterOrEqual(t, k.Acceleration, float32(0))
				require.LessOrEqual(t, k.Acceleration, float32(2.0))
				require.GreaterOrEqual(t, k.Lateral, float32(0))
				require.LessOrEqual(t, k.Lateral, float32(1.0))
				if !s.Any() {
					require.Equal(t, mgl32.Vec3{}, k.Velocity)
				}
			}
		})
	}
}

func TestApply(t *testing.T) {
	m := &moverRecorder{}
	k := NewKinematics(Shared)
	Apply(m, k, 1)
	assert.Zero(t, m.calls)

	k.Velocity = mgl32.Vec3{0.5, 0, -0.25}
	Apply(m, k, 2)
	assert.Equal(t, float32(1.0), m.forward)
	assert.Equal(t, float32(-0.5), m.right)
}

func TestFrameScale(t *testing.T) {
	assert.Equal(t, float32(1), FrameScale(1.0/30, 0))
	assert.InDelta(t, 2.0, FrameScale(1.0/30, 60), tol)
	assert.Equal(t, float32(1), FrameScale(0, 60))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("per-axis")
	require.NoError(t, err)
	assert.Equal(t, PerAxis, m)
	m, err = ParseMode("shared")
	require.NoError(t, err)
	assert.Equal(t, Shared, m)
	_, err = ParseMode("diagonal")
	assert.Error(t, err)
}
