package input

// Releaser is told when a tracked key goes up. The kinematic state implements it to drop
// its acceleration.
type Releaser interface {
	Release(f Flag)
}

// Tracker turns key-down/key-up events into State mutations. It is driven from the same
// goroutine as the render loop, so it does no locking.
type Tracker struct {
	state    *State
	releaser Releaser
}

// NewTracker returns a tracker writing into state. releaser may be nil.
func NewTracker(state *State, releaser Releaser) *Tracker {
	return &Tracker{state: state, releaser: releaser}
}

// SetFlag records a key event for the given host code. Unknown codes are ignored.
// Any key-up of a tracked key is forwarded to the releaser, even while other movement keys
// are still held.
func (t *Tracker) SetFlag(code string, down bool) {
	f, ok := Lookup(code)
	if !ok {
		return
	}
	t.state.Set(f, down)
	if !down && t.releaser != nil {
		t.releaser.Release(f)
	}
}

// KeyDown is SetFlag(code, true).
func (t *Tracker) KeyDown(code string) { t.SetFlag(code, true) }

// KeyUp is SetFlag(code, false).
func (t *Tracker) KeyUp(code string) { t.SetFlag(code, false) }

// Clear releases every flag, e.g. when pointer lock is lost and key-up events will never arrive.
func (t *Tracker) Clear() {
	for _, f := range []Flag{Forward, Backward, Left, Right, Sprint} {
		if t.state.Get(f) {
			t.state.Set(f, false)
			if t.releaser != nil {
				t.releaser.Release(f)
			}
		}
	}
}

// State returns the tracked state.
func (t *Tracker) State() *State {
	return t.state
}
