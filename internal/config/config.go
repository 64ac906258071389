package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the walker looks for its config when -config is not given,
// relative to the process working directory.
const DefaultPath = "config/walker.yaml"

// Camera modes.
const (
	CameraPointerLock = "pointerlock"
	CameraOrbit       = "orbit"
)

// Acceleration modes for the locomotion integrator.
const (
	AccelShared  = "shared"
	AccelPerAxis = "per-axis"
)

// Shader names understood by the shader library.
const (
	ShaderSparks  = "sparks"
	ShaderVoronoi = "voronoi"
	ShaderLit     = "lit"
)

// ErrUnknownVariant is returned by Preset and Load for a variant name with no preset.
var ErrUnknownVariant = errors.New("unknown variant")

// Config is everything that differs between the demo variants. One file selects a variant
// preset and overrides any of its fields.
type Config struct {
	Variant     string            `yaml:"variant" toml:"variant"`
	Window      WindowConfig      `yaml:"window" toml:"window"`
	Camera      CameraConfig      `yaml:"camera" toml:"camera"`
	Movement    MovementConfig    `yaml:"movement" toml:"movement"`
	World       WorldConfig       `yaml:"world" toml:"world"`
	Interaction InteractionConfig `yaml:"interaction" toml:"interaction"`
	Shader      ShaderConfig      `yaml:"shader" toml:"shader"`
	Logging     LoggingConfig     `yaml:"logging" toml:"logging"`
}

type WindowConfig struct {
	Width      int32  `yaml:"width" toml:"width"`
	Height     int32  `yaml:"height" toml:"height"`
	Title      string `yaml:"title" toml:"title"`
	TargetFPS  int32  `yaml:"target_fps" toml:"target_fps"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	ShowFPS    bool   `yaml:"show_fps" toml:"show_fps"`
}

// CameraConfig places the camera. Fovy is vertical field of view in degrees.
type CameraConfig struct {
	Mode        string     `yaml:"mode" toml:"mode"`
	Position    [3]float32 `yaml:"position" toml:"position"`
	Target      [3]float32 `yaml:"target" toml:"target"`
	Fovy        float32    `yaml:"fovy" toml:"fovy"`
	Sensitivity float32    `yaml:"sensitivity" toml:"sensitivity"`
}

// MovementConfig drives the locomotion integrator. Increment is added to the acceleration
// scalar once per frame while a direction is held.
type MovementConfig struct {
	Increment    float32 `yaml:"increment" toml:"increment"`
	Cap          float32 `yaml:"cap" toml:"cap"`
	SprintCap    float32 `yaml:"sprint_cap" toml:"sprint_cap"`
	Sprint       bool    `yaml:"sprint" toml:"sprint"`
	Acceleration string  `yaml:"acceleration" toml:"acceleration"`
	// ReferenceFPS > 0 scales applied distance by dt*ReferenceFPS. Zero keeps per-frame steps.
	ReferenceFPS float32 `yaml:"reference_fps" toml:"reference_fps"`
}

type WorldConfig struct {
	Seed           int64       `yaml:"seed" toml:"seed"`
	BlockCount     int         `yaml:"block_count" toml:"block_count"`
	BlockSize      float32     `yaml:"block_size" toml:"block_size"`
	GridCell       float32     `yaml:"grid_cell" toml:"grid_cell"`
	Spread         int         `yaml:"spread" toml:"spread"`
	Levels         int         `yaml:"levels" toml:"levels"`
	VerticalOffset float32     `yaml:"vertical_offset" toml:"vertical_offset"`
	Centerpiece    float32     `yaml:"centerpiece" toml:"centerpiece"` // edge of the shader cube at the origin, 0 = none
	Background     Color       `yaml:"background" toml:"background"`
	Floor          FloorConfig `yaml:"floor" toml:"floor"`
	Fog            FogConfig   `yaml:"fog" toml:"fog"`
	Lights         LightConfig `yaml:"lights" toml:"lights"`
	Sky            SkyConfig   `yaml:"sky" toml:"sky"`
	Model          ModelConfig `yaml:"model" toml:"model"`
}

type FloorConfig struct {
	Size  float32 `yaml:"size" toml:"size"`
	Color Color   `yaml:"color" toml:"color"`
}

type FogConfig struct {
	Color Color   `yaml:"color" toml:"color"`
	Near  float32 `yaml:"near" toml:"near"`
	Far   float32 `yaml:"far" toml:"far"`
}

type LightConfig struct {
	Ambient   Color      `yaml:"ambient" toml:"ambient"`
	Sky       Color      `yaml:"sky" toml:"sky"`
	Ground    Color      `yaml:"ground" toml:"ground"`
	Intensity float32    `yaml:"intensity" toml:"intensity"`
	Direction [3]float32 `yaml:"direction" toml:"direction"`
}

// SkyConfig describes the optional textured sky sphere. Empty Texture disables it.
type SkyConfig struct {
	Texture    string  `yaml:"texture" toml:"texture"`
	Radius     float32 `yaml:"radius" toml:"radius"`
	MaxTexSize int     `yaml:"max_tex_size" toml:"max_tex_size"`
}

// ModelConfig describes the optional external model. Empty Path disables it.
type ModelConfig struct {
	Path     string     `yaml:"path" toml:"path"`
	Position [3]float32 `yaml:"position" toml:"position"`
	Scale    float32    `yaml:"scale" toml:"scale"`
}

type InteractionConfig struct {
	ClickSpawn bool    `yaml:"click_spawn" toml:"click_spawn"`
	SnapCell   float32 `yaml:"snap_cell" toml:"snap_cell"`
	Lift       float32 `yaml:"lift" toml:"lift"`
	Reach      float32 `yaml:"reach" toml:"reach"`
}

type ShaderConfig struct {
	Name             string `yaml:"name" toml:"name"`
	Dir              string `yaml:"dir" toml:"dir"`
	HotReload        bool   `yaml:"hot_reload" toml:"hot_reload"`
	ResyncResolution bool   `yaml:"resync_resolution" toml:"resync_resolution"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	File   string `yaml:"file" toml:"file"`
}

// Default returns the builder preset.
func Default() Config {
	cfg, _ := Preset("builder")
	return cfg
}

// Load reads a YAML (.yaml/.yml) or TOML (.toml) file. The file's variant field picks the
// preset it is layered on; unset fields keep preset values. The result is validated.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	unmarshal, err := decoderFor(path)
	if err != nil {
		return Config{}, err
	}
	var head struct {
		Variant string `yaml:"variant" toml:"variant"`
	}
	if err := unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if head.Variant == "" {
		head.Variant = "builder"
	}
	cfg, err := Preset(head.Variant)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path in the format implied by its extension, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(cfg)
		data = buf.Bytes()
	default:
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func decoderFor(path string) (func([]byte, any) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal, nil
	case ".toml":
		return toml.Unmarshal, nil
	}
	return nil, fmt.Errorf("config: %s: unsupported extension (want .yaml, .yml or .toml)", path)
}

// Validate rejects values the controller cannot run with.
func (c Config) Validate() error {
	var errs []error
	switch c.Camera.Mode {
	case CameraPointerLock, CameraOrbit:
	default:
		errs = append(errs, fmt.Errorf("camera.mode %q: want %q or %q", c.Camera.Mode, CameraPointerLock, CameraOrbit))
	}
	switch c.Movement.Acceleration {
	case AccelShared, AccelPerAxis:
	default:
		errs = append(errs, fmt.Errorf("movement.acceleration %q: want %q or %q", c.Movement.Acceleration, AccelShared, AccelPerAxis))
	}
	switch c.Shader.Name {
	case ShaderSparks, ShaderVoronoi, ShaderLit:
	default:
		errs = append(errs, fmt.Errorf("shader.name %q: want sparks, voronoi or lit", c.Shader.Name))
	}
	if c.Movement.Increment <= 0 {
		errs = append(errs, fmt.Errorf("movement.increment must be > 0"))
	}
	if c.Movement.Cap <= 0 || c.Movement.SprintCap < c.Movement.Cap {
		errs = append(errs, fmt.Errorf("movement caps: need 0 < cap <= sprint_cap"))
	}
	if c.World.BlockCount < 0 {
		errs = append(errs, fmt.Errorf("world.block_count must be >= 0"))
	}
	if c.World.GridCell <= 0 || c.World.BlockSize <= 0 {
		errs = append(errs, fmt.Errorf("world.grid_cell and world.block_size must be > 0"))
	}
	if c.World.BlockCount > 0 && (c.World.Spread <= 0 || c.World.Levels <= 0) {
		errs = append(errs, fmt.Errorf("world.spread and world.levels must be > 0"))
	}
	if c.World.Centerpiece < 0 {
		errs = append(errs, fmt.Errorf("world.centerpiece must be >= 0"))
	}
	if c.World.Fog.Far <= c.World.Fog.Near {
		errs = append(errs, fmt.Errorf("world.fog: far must exceed near"))
	}
	if c.Interaction.SnapCell <= 0 {
		errs = append(errs, fmt.Errorf("interaction.snap_cell must be > 0"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive"))
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	var out Config
	if err := copier.CopyWithOption(&out, &c, copier.Option{DeepCopy: true}); err != nil {
		return c
	}
	return out
}
