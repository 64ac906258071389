package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-walker/internal/config"
)

func defaultWorld(t *testing.T) config.WorldConfig {
	t.Helper()
	cfg, err := config.Preset("builder")
	require.NoError(t, err)
	return cfg.World
}

func TestBuildLayout(t *testing.T) {
	cfg := defaultWorld(t)
	s, err := Build(cfg)
	require.NoError(t, err)

	assert.Equal(t, 500, s.Store.Count(Scattered))
	assert.Equal(t, 1, s.Store.Count(Ground))
	assert.Zero(t, s.Store.Count(Centerpiece))
	assert.Equal(t, 501, s.Store.Len())

	for _, o := range s.Store.Objects(Scattered) {
		x, y, z := float64(o.Center.X()), float64(o.Center.Y()), float64(o.Center.Z())
		assert.Zero(t, math.Mod(x, 20), "x=%v", x)
		assert.Zero(t, math.Mod(z, 20), "z=%v", z)
		assert.GreaterOrEqual(t, y, 10.0)
		assert.Zero(t, math.Mod(y-10, 20), "y=%v", y)
		assert.GreaterOrEqual(t, x, -200.0)
		assert.LessOrEqual(t, x, 180.0)
		assert.LessOrEqual(t, y, 390.0)
		assert.Equal(t, mgl32.Vec3{20, 20, 20}, o.Size)
	}

	ground := s.Store.Objects(Ground)
	require.Len(t, ground, 1)
	assert.Equal(t, mgl32.Vec3{2000, 0, 2000}, ground[0].Size)
}

func TestBuildEnvironment(t *testing.T) {
	cfg := defaultWorld(t)
	s, err := Build(cfg)
	require.NoError(t, err)

	assert.Equal(t, config.Hex(0xffffff), s.Env.Background)
	assert.Equal(t, float32(10), s.Env.Fog.Near)
	assert.Equal(t, float32(250), s.Env.Fog.Far)
	assert.Equal(t, config.Hex(0x668866), s.Env.Floor.Color)
	require.NotNil(t, s.Env.Sky)
	assert.Equal(t, "assets/sky/sky.png", s.Env.Sky.Texture)
	assert.Nil(t, s.Env.Model)
}

func TestBuildOptionalPieces(t *testing.T) {
	cfg, err := config.Preset("explorer")
	require.NoError(t, err)
	s, err := Build(cfg.World)
	require.NoError(t, err)

	require.Equal(t, 1, s.Store.Count(Centerpiece))
	c := s.Store.Objects(Centerpiece)[0]
	assert.Equal(t, mgl32.Vec3{0, 0.5, 0}, c.Center)
	require.NotNil(t, s.Env.Model)
	assert.Equal(t, float32(0.5), s.Env.Model.Scale)
	assert.Nil(t, s.Env.Sky)
}

func TestBuildSeeded(t *testing.T) {
	cfg := defaultWorld(t)
	cfg.Seed = 42
	a, err := Build(cfg)
	require.NoError(t, err)
	b, err := Build(cfg)
	require.NoError(t, err)

	assert.Equal(t, int64(42), a.Seed)
	assert.Equal(t, centers(a.Store.Objects(Scattered)), centers(b.Store.Objects(Scattered)))
}

func TestBuildUnseededPicksSeed(t *testing.T) {
	s, err := Build(defaultWorld(t))
	require.NoError(t, err)
	assert.NotZero(t, s.Seed)
}

func TestBuildRejectsBadInput(t *testing.T) {
	cfg := defaultWorld(t)
	cfg.BlockSize = 0
	_, err := Build(cfg)
	assert.Error(t, err)

	cfg = defaultWorld(t)
	cfg.Spread = 0
	_, err = Build(cfg)
	assert.Error(t, err)

	cfg.BlockCount = 0
	s, err := Build(cfg)
	require.NoError(t, err)
	assert.Zero(t, s.Blocks())
}

func TestSpawnAndRemove(t *testing.T) {
	cfg := defaultWorld(t)
	cfg.BlockCount = 3
	s, err := Build(cfg)
	require.NoError(t, err)

	o := s.Spawn(mgl32.Vec3{10, 30, -10})
	assert.Equal(t, Spawned, o.Kind)
	assert.Equal(t, 4, s.Blocks())

	got, ok := s.Store.Get(o.Entity)
	require.True(t, ok)
	assert.Equal(t, o.Center, got.Center)

	assert.True(t, s.Store.Remove(o.Entity))
	assert.False(t, s.Store.Remove(o.Entity))
	assert.Equal(t, 3, s.Blocks())
	_, ok = s.Store.Get(o.Entity)
	assert.False(t, ok)
}

func TestEachStopsEarly(t *testing.T) {
	cfg := defaultWorld(t)
	cfg.BlockCount = 10
	s, err := Build(cfg)
	require.NoError(t, err)

	n := 0
	s.Store.Each(func(Object) bool {
		n++
		return n < 3
	})
	assert.Equal(t, 3, n)
	// the store is still usable after an early stop
	s.Spawn(mgl32.Vec3{})
	assert.Equal(t, 12, s.Store.Len())
}

func TestIntersectOrdering(t *testing.T) {
	st := NewStore()
	st.Add(Ground, mgl32.Vec3{}, mgl32.Vec3{100, 0, 100})
	far := st.Add(Scattered, mgl32.Vec3{0, 10, -60}, mgl32.Vec3{20, 20, 20})
	near := st.Add(Scattered, mgl32.Vec3{0, 10, -20}, mgl32.Vec3{20, 20, 20})
	st.Add(Scattered, mgl32.Vec3{200, 10, 0}, mgl32.Vec3{20, 20, 20})

	hits := st.Intersect(NewRay(mgl32.Vec3{0, 10, 10}, mgl32.Vec3{0, 0, -1}), 0)
	require.Len(t, hits, 2)
	assert.Equal(t, near, hits[0].Entity)
	assert.InDelta(t, 20, hits[0].Distance, 1e-4)
	assert.InDelta(t, -10, hits[0].Point.Z(), 1e-4)
	assert.Equal(t, far, hits[1].Entity)

	for i := 1; i < len(hits); i++ {
		assert.LessOrEqual(t, hits[i-1].Distance, hits[i].Distance)
	}
}

func TestIntersectGround(t *testing.T) {
	st := NewStore()
	st.Add(Ground, mgl32.Vec3{}, mgl32.Vec3{100, 0, 100})

	hits := st.Intersect(NewRay(mgl32.Vec3{0, 20, 0}, mgl32.Vec3{0, -1, 1}), 0)
	require.Len(t, hits, 1)
	assert.Equal(t, Ground, hits[0].Kind)
	assert.InDelta(t, 0, hits[0].Point.Y(), 1e-4)
	assert.InDelta(t, 20, hits[0].Point.Z(), 1e-4)

	// beyond the plane's edge
	assert.Empty(t, st.Intersect(NewRay(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, -0.001, 1}), 0))
	// pointing up
	assert.Empty(t, st.Intersect(NewRay(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0}), 0))
}

func TestIntersectMisses(t *testing.T) {
	st := NewStore()
	st.Add(Scattered, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{20, 20, 20})

	// inside the box
	assert.Empty(t, st.Intersect(NewRay(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}), 0))
	// past reach
	assert.Empty(t, st.Intersect(NewRay(mgl32.Vec3{100, 0, 0}, mgl32.Vec3{-1, 0, 0}), 50))
	// zero direction
	assert.Empty(t, st.Intersect(NewRay(mgl32.Vec3{100, 0, 0}, mgl32.Vec3{}), 0))
	// parallel outside a slab
	assert.Empty(t, st.Intersect(NewRay(mgl32.Vec3{100, 50, 0}, mgl32.Vec3{-1, 0, 0}), 0))

	hits := st.Intersect(NewRay(mgl32.Vec3{100, 0, 0}, mgl32.Vec3{-2, 0, 0}), 0)
	require.Len(t, hits, 1)
	assert.InDelta(t, 90, hits[0].Distance, 1e-4)
}

func centers(objs []Object) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(objs))
	for i, o := range objs {
		out[i] = o.Center
	}
	return out
}
