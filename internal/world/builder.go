package world

import (
	"errors"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"scene-walker/internal/config"
)

// CenterpieceHeight is the Y the shader cube sits at.
const CenterpieceHeight = 0.5

// Environment is the non-geometric part of the scene: clear colour, fog, lights and the
// optional assets the renderer loads after startup.
type Environment struct {
	Background config.Color
	Floor      config.FloorConfig
	Fog        config.FogConfig
	Lights     config.LightConfig
	// Sky is nil when no sky texture is configured.
	Sky *config.SkyConfig
	// Model is nil when no model path is configured.
	Model *config.ModelConfig
}

// Scene is what Build produces.
type Scene struct {
	Store *Store
	Env   Environment
	// BlockSize is the edge of scattered and spawned blocks.
	BlockSize float32
	// Seed is the seed the layout was generated from.
	Seed int64
}

// Build lays out the scene described by cfg. Seed == 0 uses a time-based seed, so every
// start produces a different field.
func Build(cfg config.WorldConfig) (*Scene, error) {
	if cfg.BlockCount < 0 {
		return nil, errors.New("world: negative block count")
	}
	if cfg.BlockSize <= 0 || cfg.GridCell <= 0 {
		return nil, errors.New("world: block size and grid cell must be positive")
	}
	if cfg.BlockCount > 0 && (cfg.Spread <= 0 || cfg.Levels <= 0) {
		return nil, errors.New("world: spread and levels must be positive")
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	s := &Scene{
		Store:     NewStore(),
		BlockSize: cfg.BlockSize,
		Seed:      seed,
		Env: Environment{
			Background: cfg.Background,
			Floor:      cfg.Floor,
			Fog:        cfg.Fog,
			Lights:     cfg.Lights,
		},
	}
	if cfg.Sky.Texture != "" {
		sky := cfg.Sky
		s.Env.Sky = &sky
	}
	if cfg.Model.Path != "" {
		model := cfg.Model
		s.Env.Model = &model
	}

	s.Store.Add(Ground, mgl32.Vec3{}, mgl32.Vec3{cfg.Floor.Size, 0, cfg.Floor.Size})

	edge := mgl32.Vec3{cfg.BlockSize, cfg.BlockSize, cfg.BlockSize}
	for i := 0; i < cfg.BlockCount; i++ {
		s.Store.Add(Scattered, scatter(rng, cfg), edge)
	}

	if cfg.Centerpiece > 0 {
		c := cfg.Centerpiece
		s.Store.Add(Centerpiece, mgl32.Vec3{0, CenterpieceHeight, 0}, mgl32.Vec3{c, c, c})
	}
	return s, nil
}

// scatter picks one block center: X and Z on whole grid cells spread evenly around the
// origin, Y on one of Levels stacked cells raised by VerticalOffset.
func scatter(rng *rand.Rand, cfg config.WorldConfig) mgl32.Vec3 {
	half := cfg.Spread / 2
	x := float32(rng.Intn(cfg.Spread)-half) * cfg.GridCell
	y := float32(rng.Intn(cfg.Levels))*cfg.GridCell + cfg.VerticalOffset
	z := float32(rng.Intn(cfg.Spread)-half) * cfg.GridCell
	return mgl32.Vec3{x, y, z}
}

// Spawn places a runtime block of the scene's block size at center.
func (s *Scene) Spawn(center mgl32.Vec3) Object {
	size := mgl32.Vec3{s.BlockSize, s.BlockSize, s.BlockSize}
	e := s.Store.Add(Spawned, center, size)
	return Object{Entity: e, Kind: Spawned, Transform: Transform{Center: center, Size: size}}
}

// Blocks counts scattered and spawned blocks.
func (s *Scene) Blocks() int {
	return s.Store.Count(Scattered) + s.Store.Count(Spawned)
}
