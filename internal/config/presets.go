package config

import (
	"fmt"
	"sort"
)

// base holds the values every variant shares: the scattered block field, floor, fog and lights.
var base = Config{
	Window: WindowConfig{
		Width:     1280,
		Height:    720,
		Title:     "scene walker",
		TargetFPS: 60,
	},
	Camera: CameraConfig{
		Mode:        CameraPointerLock,
		Position:    [3]float32{20, 20, 0},
		Target:      [3]float32{0, 20, 0},
		Fovy:        60,
		Sensitivity: 0.1,
	},
	Movement: MovementConfig{
		Increment:    0.05,
		Cap:          1.0,
		SprintCap:    2.0,
		Acceleration: AccelShared,
	},
	World: WorldConfig{
		BlockCount:     500,
		BlockSize:      20,
		GridCell:       20,
		Spread:         20,
		Levels:         20,
		VerticalOffset: 10,
		Background:     Hex(0xffffff),
		Floor:          FloorConfig{Size: 2000, Color: Hex(0x668866)},
		Fog:            FogConfig{Color: Hex(0xffffff), Near: 10, Far: 250},
		Lights: LightConfig{
			Ambient:   Hex(0x777777),
			Sky:       Hex(0xeeeeff),
			Ground:    Hex(0x777788),
			Intensity: 0.75,
			Direction: [3]float32{0.5, 1, 0.75},
		},
		Sky:   SkyConfig{Radius: 500, MaxTexSize: 2048},
		Model: ModelConfig{Position: [3]float32{0, 0, 2}, Scale: 0.5},
	},
	Interaction: InteractionConfig{
		SnapCell: 10,
		Lift:     10,
		Reach:    1000,
	},
	Shader: ShaderConfig{
		Name:             ShaderSparks,
		Dir:              "assets/shaders",
		ResyncResolution: true,
	},
	Logging: LoggingConfig{
		Level:  "info",
		Format: "console",
		File:   "logs/walker.log",
	},
}

// presets patch base into the three demo variants.
var presets = map[string]func(c *Config){
	// Orbit camera around a single shader cube amid the block field.
	"showcase": func(c *Config) {
		c.Camera.Mode = CameraOrbit
		c.Camera.Position = [3]float32{10, 0, 0}
		c.Camera.Target = [3]float32{0, 0, 0}
		c.World.Centerpiece = 1
	},
	// Pointer-lock walk with the car model parked at the origin.
	"explorer": func(c *Config) {
		c.World.Centerpiece = 20
		c.World.Model.Path = "assets/models/car.obj"
	},
	// Pointer-lock walk with sprint and click-to-place blocks.
	"builder": func(c *Config) {
		c.Shader.Name = ShaderVoronoi
		c.Movement.Sprint = true
		c.Interaction.ClickSpawn = true
		c.World.Sky.Texture = "assets/sky/sky.png"
	},
}

// Preset returns a fresh copy of the named variant.
func Preset(name string) (Config, error) {
	patch, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("%w %q (have %v)", ErrUnknownVariant, name, Variants())
	}
	cfg := base.Clone()
	cfg.Variant = name
	patch(&cfg)
	return cfg, nil
}

// Variants lists preset names in sorted order.
func Variants() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
