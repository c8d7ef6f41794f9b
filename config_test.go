package labyrinth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{EnvSize, EnvMultiplier, EnvOffset, EnvLineWidth,
	EnvSeed, EnvOutputFile}

// Unsets every LABYRINTH_* variable for the duration of the test. Variables
// set later by godotenv are removed again when the test ends.
func clearConfigEnv(t *testing.T) {
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, 15, c.Size)
	assert.Equal(t, DefaultLayout(), c.Layout())
	assert.Equal(t, 475, c.CanvasSize())
}

func TestConfigValidate(t *testing.T) {
	c := DefaultConfig()
	c.Size = 0
	assert.ErrorIs(t, c.Validate(), ErrInvalidSize)

	c = DefaultConfig()
	c.Multiplier = 0
	assert.ErrorIs(t, c.Validate(), ErrInvalidLayout)

	c = DefaultConfig()
	c.LineWidth = 0
	assert.ErrorIs(t, c.Validate(), ErrInvalidLayout)

	c = DefaultConfig()
	c.OutputFile = ""
	assert.Error(t, c.Validate())
}

func TestConfigValidateRejectsHugeCanvases(t *testing.T) {
	// A multiplier this large would overflow the canvas size if it were
	// computed before being checked.
	c := DefaultConfig()
	c.Size = 2
	c.Multiplier = 1 << 62
	c.Offset = 0
	assert.ErrorIs(t, c.Validate(), ErrInvalidLayout)

	c = DefaultConfig()
	c.Offset = 1 << 62
	assert.ErrorIs(t, c.Validate(), ErrInvalidLayout)

	// Both settings are reasonable alone, but the canvas would be too big.
	c = DefaultConfig()
	c.Size = MaxGridSize
	assert.ErrorIs(t, c.Validate(), ErrInvalidLayout)

	c = DefaultConfig()
	c.Size = 100
	c.Multiplier = MaxCanvasSize/100 + 1
	c.Offset = 1
	assert.ErrorIs(t, c.Validate(), ErrInvalidLayout)

	// Exactly filling the largest canvas is fine.
	c = DefaultConfig()
	c.Size = 128
	c.Multiplier = 127
	c.Offset = (MaxCanvasSize - 128*127) / 2
	require.Equal(t, MaxCanvasSize, c.CanvasSize())
	assert.NoError(t, c.Validate())

	c = DefaultConfig()
	c.Size = MaxGridSize + 1
	c.Multiplier = 1
	assert.ErrorIs(t, c.Validate(), ErrInvalidSize)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(EnvSize, "30")
	t.Setenv(EnvMultiplier, "12")
	t.Setenv(EnvOffset, "20")
	t.Setenv(EnvLineWidth, "1.5")
	t.Setenv(EnvSeed, "1234")
	t.Setenv(EnvOutputFile, "out.png")

	c, e := LoadConfig()
	require.NoError(t, e)
	assert.Equal(t, 30, c.Size)
	assert.Equal(t, 12, c.Multiplier)
	assert.Equal(t, 20, c.Offset)
	assert.Equal(t, 1.5, c.LineWidth)
	assert.Equal(t, int64(1234), c.Seed)
	assert.Equal(t, "out.png", c.OutputFile)
	assert.NoError(t, c.Validate())
}

func TestLoadConfigRejectsBadNumbers(t *testing.T) {
	for _, key := range []string{EnvSize, EnvMultiplier, EnvOffset,
		EnvLineWidth, EnvSeed} {
		t.Run(key, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(key, "lots")
			_, e := LoadConfig()
			assert.ErrorContains(t, e, key)
		})
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"LABYRINTH_SIZE=7\nLABYRINTH_SEED=55\n"), 0644))
	// Variables already in the environment take precedence over the file.
	t.Setenv(EnvSeed, "66")

	c, e := LoadConfig(path)
	require.NoError(t, e)
	assert.Equal(t, 7, c.Size)
	assert.Equal(t, int64(66), c.Seed)
	assert.Equal(t, DefaultConfig().Multiplier, c.Multiplier)

	_, e = LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, e)
}
