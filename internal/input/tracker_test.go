package input

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type releaseRecorder struct {
	released []Flag
}

func (r *releaseRecorder) Release(f Flag) {
	r.released = append(r.released, f)
}

func TestSetFlagBindings(t *testing.T) {
	tests := []struct {
		code string
		flag Flag
	}{
		{"KeyW", Forward},
		{"ArrowUp", Forward},
		{"KeyS", Backward},
		{"ArrowDown", Backward},
		{"KeyA", Left},
		{"ArrowLeft", Left},
		{"KeyD", Right},
		{"ArrowRight", Right},
		{"ShiftLeft", Sprint},
		{"ShiftRight", Sprint},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			var s State
			tr := NewTracker(&s, nil)
			tr.KeyDown(tt.code)
			assert.True(t, s.Get(tt.flag))
			tr.KeyUp(tt.code)
			assert.False(t, s.Get(tt.flag))
		})
	}
}

func TestUnknownCodeIgnored(t *testing.T) {
	var s State
	rec := &releaseRecorder{}
	tr := NewTracker(&s, rec)

	tr.KeyDown("Space")
	tr.KeyUp("KeyQ")
	tr.SetFlag("", true)

	assert.Equal(t, State{}, s)
	assert.Empty(t, rec.released)
}

func TestFlagsAreIndependent(t *testing.T) {
	var s State
	tr := NewTracker(&s, nil)
	tr.KeyDown("KeyW")
	tr.KeyDown("KeyD")
	tr.KeyDown("ShiftLeft")

	assert.Equal(t, State{Forward: true, Right: true, Sprint: true}, s)
	assert.True(t, s.Any())
}

func TestReleaseNotifiedEvenWhileOthersHeld(t *testing.T) {
	var s State
	rec := &releaseRecorder{}
	tr := NewTracker(&s, rec)

	tr.KeyDown("KeyW")
	tr.KeyDown("KeyA")
	tr.KeyUp("KeyA")

	assert.True(t, s.Forward)
	assert.Equal(t, []Flag{Left}, rec.released)
}

func TestMostRecentEventWins(t *testing.T) {
	codes := Codes()
	rng := rand.New(rand.NewSource(1))
	var s State
	tr := NewTracker(&s, nil)
	last := map[Flag]bool{}

	for i := 0; i < 2000; i++ {
		code := codes[rng.Intn(len(codes))]
		down := rng.Intn(2) == 0
		tr.SetFlag(code, down)
		f, ok := Lookup(code)
		require.True(t, ok)
		last[f] = down
	}
	for f, want := range last {
		assert.Equal(t, want, s.Get(f), f.String())
	}
}

func TestClear(t *testing.T) {
	var s State
	rec := &releaseRecorder{}
	tr := NewTracker(&s, rec)
	tr.KeyDown("KeyW")
	tr.KeyDown("ShiftRight")

	tr.Clear()

	assert.Equal(t, State{}, s)
	assert.ElementsMatch(t, []Flag{Forward, Sprint}, rec.released)
}
