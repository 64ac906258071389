package commands

import (
	"errors"
	"flag"
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene is what the console commands act on. The game wires it to the renderer, the camera
// rig, the world store and the session.
type Scene interface {
	SetFPSVisible(on bool)
	Spawn(at mgl32.Vec3)
	Teleport(to mgl32.Vec3)
	SetFog(near, far float32) error
	Fog() (near, far float32)
	BlockCount() int
	SetAcceleration(mode string) error
}

// Printer receives command output lines.
type Printer func(line string)

// RegisterScene adds the scene commands to r.
func RegisterScene(r *Registry, s Scene, out Printer) {
	if out == nil {
		out = func(string) {}
	}

	fps := flag.NewFlagSet("fps", flag.ContinueOnError)
	show := fps.Bool("show", false, "show the FPS counter")
	hide := fps.Bool("hide", false, "hide the FPS counter")
	r.Register("fps", "--show | --hide", fps, func() error {
		if *show == *hide {
			return errors.New("fps: pass exactly one of --show or --hide")
		}
		s.SetFPSVisible(*show)
		return nil
	})

	spawn := flag.NewFlagSet("spawn", flag.ContinueOnError)
	r.Register("spawn", "x y z", spawn, func() error {
		at, err := parseVec3(spawn.Args())
		if err != nil {
			return fmt.Errorf("spawn: %w", err)
		}
		s.Spawn(at)
		out(fmt.Sprintf("block at %g %g %g", at[0], at[1], at[2]))
		return nil
	})

	teleport := flag.NewFlagSet("teleport", flag.ContinueOnError)
	r.Register("teleport", "x y z", teleport, func() error {
		to, err := parseVec3(teleport.Args())
		if err != nil {
			return fmt.Errorf("teleport: %w", err)
		}
		s.Teleport(to)
		return nil
	})

	fog := flag.NewFlagSet("fog", flag.ContinueOnError)
	near := fog.Float64("near", -1, "fog start distance")
	far := fog.Float64("far", -1, "fog full distance")
	r.Register("fog", "[--near N] [--far N]", fog, func() error {
		n, f := s.Fog()
		if *near >= 0 {
			n = float32(*near)
		}
		if *far >= 0 {
			f = float32(*far)
		}
		if err := s.SetFog(n, f); err != nil {
			return fmt.Errorf("fog: %w", err)
		}
		out(fmt.Sprintf("fog %g..%g", n, f))
		return nil
	})

	r.Register("blocks", "", nil, func() error {
		out(fmt.Sprintf("%d blocks", s.BlockCount()))
		return nil
	})

	accel := flag.NewFlagSet("accel", flag.ContinueOnError)
	mode := accel.String("mode", "", "shared or per-axis")
	r.Register("accel", "--mode shared|per-axis", accel, func() error {
		if err := s.SetAcceleration(*mode); err != nil {
			return fmt.Errorf("accel: %w", err)
		}
		out("acceleration " + *mode)
		return nil
	})
}

func parseVec3(args []string) (mgl32.Vec3, error) {
	if len(args) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("want 3 coordinates, got %d", len(args))
	}
	var v mgl32.Vec3
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("coordinate %q: %w", a, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}
