package input

// Flag names one tracked movement input.
type Flag int

const (
	Forward Flag = iota
	Backward
	Left
	Right
	Sprint
)

func (f Flag) String() string {
	switch f {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	case Sprint:
		return "sprint"
	}
	return "unknown"
}

// State is the set of movement keys currently held. Flags are independent, so diagonal
// movement is two flags at once.
type State struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Sprint   bool
}

// Set writes one flag.
func (s *State) Set(f Flag, v bool) {
	switch f {
	case Forward:
		s.Forward = v
	case Backward:
		s.Backward = v
	case Left:
		s.Left = v
	case Right:
		s.Right = v
	case Sprint:
		s.Sprint = v
	}
}

// Get reads one flag.
func (s State) Get(f Flag) bool {
	switch f {
	case Forward:
		return s.Forward
	case Backward:
		return s.Backward
	case Left:
		return s.Left
	case Right:
		return s.Right
	case Sprint:
		return s.Sprint
	}
	return false
}

// Any reports whether a direction (not sprint) is held.
func (s State) Any() bool {
	return s.Forward || s.Backward || s.Left || s.Right
}

// bindings maps host key codes (DOM KeyboardEvent.code names) to flags.
var bindings = map[string]Flag{
	"KeyW":       Forward,
	"ArrowUp":    Forward,
	"KeyS":       Backward,
	"ArrowDown":  Backward,
	"KeyA":       Left,
	"ArrowLeft":  Left,
	"KeyD":       Right,
	"ArrowRight": Right,
	"ShiftLeft":  Sprint,
	"ShiftRight": Sprint,
}

// Lookup returns the flag bound to code.
func Lookup(code string) (Flag, bool) {
	f, ok := bindings[code]
	return f, ok
}

// Codes returns every bound key code. The host adapter polls exactly these.
func Codes() []string {
	out := make([]string, 0, len(bindings))
	for code := range bindings {
		out = append(out, code)
	}
	return out
}
