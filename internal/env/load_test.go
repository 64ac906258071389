package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSetsUnsetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	data := "# walker\n\nWALKER_VARIANT=explorer\nexport WALKER_LOG_LEVEL='debug'\nWALKER_CONFIG=\"kept\"\nnot a pair\n=nokey\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	t.Setenv("WALKER_VARIANT", "")
	t.Setenv("WALKER_LOG_LEVEL", "")
	os.Unsetenv("WALKER_VARIANT")
	os.Unsetenv("WALKER_LOG_LEVEL")
	t.Setenv("WALKER_CONFIG", "from-process")

	require.NoError(t, Load(path))
	assert.Equal(t, "explorer", os.Getenv("WALKER_VARIANT"))
	assert.Equal(t, "debug", os.Getenv("WALKER_LOG_LEVEL"))
	assert.Equal(t, "from-process", os.Getenv("WALKER_CONFIG"))
}

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "nope.env")))
}

func TestLookup(t *testing.T) {
	t.Setenv("WALKER_SHADER", "")
	assert.Equal(t, "sparks", Lookup("SHADER", "sparks"))
	t.Setenv("WALKER_SHADER", "voronoi")
	assert.Equal(t, "voronoi", Lookup("SHADER", "sparks"))
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "a b", unquote(`"a b"`))
	assert.Equal(t, "x", unquote(`'x'`))
	assert.Equal(t, `"mixed'`, unquote(`"mixed'`))
	assert.Equal(t, `"`, unquote(`"`))
}
