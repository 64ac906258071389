package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsAreValid(t *testing.T) {
	for _, name := range Variants() {
		t.Run(name, func(t *testing.T) {
			cfg, err := Preset(name)
			require.NoError(t, err)
			assert.Equal(t, name, cfg.Variant)
			assert.NoError(t, cfg.Validate())
			assert.Equal(t, 500, cfg.World.BlockCount)
		})
	}
}

func TestPresetAssetsShipped(t *testing.T) {
	root := filepath.Join("..", "..")
	for _, name := range Variants() {
		cfg, err := Preset(name)
		require.NoError(t, err)
		for _, p := range []string{cfg.World.Sky.Texture, cfg.World.Model.Path} {
			if p == "" {
				continue
			}
			_, err := os.Stat(filepath.Join(root, p))
			assert.NoError(t, err, "%s: %s", name, p)
		}
	}
}

func TestPresetDifferences(t *testing.T) {
	showcase, err := Preset("showcase")
	require.NoError(t, err)
	assert.Equal(t, CameraOrbit, showcase.Camera.Mode)
	assert.Equal(t, [3]float32{10, 0, 0}, showcase.Camera.Position)

	explorer, err := Preset("explorer")
	require.NoError(t, err)
	assert.Equal(t, CameraPointerLock, explorer.Camera.Mode)
	assert.NotEmpty(t, explorer.World.Model.Path)
	assert.False(t, explorer.Movement.Sprint)

	builder, err := Preset("builder")
	require.NoError(t, err)
	assert.True(t, builder.Movement.Sprint)
	assert.True(t, builder.Interaction.ClickSpawn)
	assert.Equal(t, ShaderVoronoi, builder.Shader.Name)
}

func TestPresetReturnsCopy(t *testing.T) {
	a, err := Preset("builder")
	require.NoError(t, err)
	a.World.Lights.Direction[0] = 99
	a.Camera.Position[1] = -1

	b, err := Preset("builder")
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), b.World.Lights.Direction[0])
	assert.Equal(t, float32(20), b.Camera.Position[1])
}

func TestPresetUnknown(t *testing.T) {
	_, err := Preset("nope")
	assert.True(t, errors.Is(err, ErrUnknownVariant))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantErr  bool
		validate func(t *testing.T, cfg Config)
	}{
		{
			name: "yaml overrides preset",
			file: "walker.yaml",
			content: `variant: explorer
camera:
  position: [1, 2, 3]
movement:
  acceleration: per-axis
world:
  seed: 7
  fog:
    color: "#abc"
    near: 5
    far: 100
`,
			validate: func(t *testing.T, cfg Config) {
				assert.Equal(t, "explorer", cfg.Variant)
				assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
				assert.Equal(t, AccelPerAxis, cfg.Movement.Acceleration)
				assert.Equal(t, int64(7), cfg.World.Seed)
				assert.Equal(t, Color{0xaa, 0xbb, 0xcc}, cfg.World.Fog.Color)
				assert.Equal(t, float32(100), cfg.World.Fog.Far)
				// untouched preset values survive
				assert.Equal(t, "assets/models/car.obj", cfg.World.Model.Path)
				assert.Equal(t, 500, cfg.World.BlockCount)
			},
		},
		{
			name: "toml",
			file: "walker.toml",
			content: `variant = "showcase"

[shader]
name = "lit"
resync_resolution = false

[world.floor]
color = "#102030"
`,
			validate: func(t *testing.T, cfg Config) {
				assert.Equal(t, CameraOrbit, cfg.Camera.Mode)
				assert.Equal(t, ShaderLit, cfg.Shader.Name)
				assert.False(t, cfg.Shader.ResyncResolution)
				assert.Equal(t, Color{0x10, 0x20, 0x30}, cfg.World.Floor.Color)
				assert.Equal(t, float32(2000), cfg.World.Floor.Size)
			},
		},
		{
			name:    "empty file uses builder",
			file:    "walker.yml",
			content: "",
			validate: func(t *testing.T, cfg Config) {
				assert.Equal(t, "builder", cfg.Variant)
			},
		},
		{
			name:    "unknown variant",
			file:    "walker.yaml",
			content: "variant: racer\n",
			wantErr: true,
		},
		{
			name:    "invalid value",
			file:    "walker.yaml",
			content: "movement:\n  acceleration: sideways\n",
			wantErr: true,
		},
		{
			name:    "bad color",
			file:    "walker.yaml",
			content: "world:\n  background: white\n",
			wantErr: true,
		},
		{
			name:    "unsupported extension",
			file:    "walker.json",
			content: "{}",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cfg, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveRoundTrip(t *testing.T) {
	for _, ext := range []string{".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			want, err := Preset("explorer")
			require.NoError(t, err)
			want.World.Seed = 42

			path := filepath.Join(t.TempDir(), "out", "walker"+ext)
			require.NoError(t, Save(path, want))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#668866")
	require.NoError(t, err)
	assert.Equal(t, Hex(0x668866), c)
	assert.Equal(t, "#668866", c.String())

	c, err = ParseColor("#fff")
	require.NoError(t, err)
	assert.Equal(t, Hex(0xffffff), c)

	for _, bad := range []string{"", "fff", "#ff", "#ggg", "#12345"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}
