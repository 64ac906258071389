// Package session ties one input state and one kinematic state together for the lifetime
// of a run. The render loop owns the Session and passes it by reference; nothing is global.
package session

import (
	"fmt"

	"scene-walker/internal/config"
	"scene-walker/internal/input"
	"scene-walker/internal/locomotion"
)

// Session is the controller context.
type Session struct {
	state      input.State
	kinematics *locomotion.Kinematics
	tracker    *input.Tracker
	integrator *locomotion.Integrator

	referenceFPS float32
	active       bool
}

// New builds a session from the movement settings. It starts inactive (pointer not locked).
func New(cfg config.MovementConfig) (*Session, error) {
	mode, err := locomotion.ParseMode(cfg.Acceleration)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s := &Session{
		kinematics: locomotion.NewKinematics(mode),
		integrator: locomotion.NewIntegrator(locomotion.Params{
			Increment:     cfg.Increment,
			Cap:           cfg.Cap,
			SprintCap:     cfg.SprintCap,
			SprintEnabled: cfg.Sprint,
		}),
		referenceFPS: cfg.ReferenceFPS,
	}
	s.tracker = input.NewTracker(&s.state, s.kinematics)
	return s, nil
}

// KeyDown forwards a key press. Keys are ignored while inactive.
func (s *Session) KeyDown(code string) {
	if s.active {
		s.tracker.KeyDown(code)
	}
}

// KeyUp forwards a key release. Releases always pass through so a key let go while the
// pointer was unlocked cannot stay held.
func (s *Session) KeyUp(code string) {
	s.tracker.KeyUp(code)
}

// SetActive switches movement on or off. Going inactive drops every held key and brings the
// body to rest.
func (s *Session) SetActive(on bool) {
	if s.active == on {
		return
	}
	s.active = on
	if !on {
		s.tracker.Clear()
		s.kinematics.Reset()
	}
}

// Resume activates the session with the keys already down. The host only reports press
// edges, so a key held through the click that locks the pointer would otherwise be lost.
func (s *Session) Resume(held []string) {
	s.SetActive(true)
	for _, code := range held {
		s.tracker.KeyDown(code)
	}
}

// Active reports whether movement input is accepted.
func (s *Session) Active() bool {
	return s.active
}

// Frame integrates one frame and moves m. dt is the frame time in seconds; it only matters
// when a reference frame rate is configured.
func (s *Session) Frame(m locomotion.Mover, dt float32) {
	s.integrator.Step(s.state, s.kinematics)
	if !s.active {
		return
	}
	locomotion.Apply(m, s.kinematics, locomotion.FrameScale(dt, s.referenceFPS))
}

// SetMode switches the acceleration mode, bringing the body to rest.
func (s *Session) SetMode(m locomotion.Mode) {
	s.kinematics.SetMode(m)
}

// Input returns a copy of the held flags.
func (s *Session) Input() input.State {
	return s.state
}

// Kinematics returns the live kinematic state for read-only display.
func (s *Session) Kinematics() *locomotion.Kinematics {
	return s.kinematics
}

// Integrator returns the session's integrator.
func (s *Session) Integrator() *locomotion.Integrator {
	return s.integrator
}
