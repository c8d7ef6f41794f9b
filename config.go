package labyrinth

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// The environment variables read by LoadConfig.
const (
	EnvSize       = "LABYRINTH_SIZE"
	EnvMultiplier = "LABYRINTH_MULTIPLIER"
	EnvOffset     = "LABYRINTH_OFFSET"
	EnvLineWidth  = "LABYRINTH_LINE_WIDTH"
	EnvSeed       = "LABYRINTH_SEED"
	EnvOutputFile = "LABYRINTH_OUTPUT"
)

// Holds the settings for generating and drawing a single maze.
type Config struct {
	// The side length of the maze, in cells.
	Size       int
	Multiplier int
	Offset     int
	// The stroke width of walls, in pixels.
	LineWidth float64
	// If not positive, a time-based seed is used.
	Seed       int64
	OutputFile string
	WallColor  color.Color
	Background color.Color
}

// Returns the settings used when nothing else is configured: a 15x15 maze of
// black walls on white, 25 pixels per cell with 50 pixels of padding.
func DefaultConfig() Config {
	layout := DefaultLayout()
	return Config{
		Size:       15,
		Multiplier: layout.Multiplier,
		Offset:     layout.Offset,
		LineWidth:  2,
		Seed:       -1,
		OutputFile: "labyrinth.png",
		WallColor:  layout.WallColor,
		Background: color.White,
	}
}

// Returns the render-space layout described by the config.
func (c *Config) Layout() Layout {
	return Layout{
		Multiplier: c.Multiplier,
		Offset:     c.Offset,
		WallColor:  c.WallColor,
	}
}

// Returns the side length of the canvas the maze will be drawn on.
func (c *Config) CanvasSize() int {
	return CanvasSize(c.Size, c.Layout())
}

// Returns a non-nil error if the config can't be used to build a maze.
func (c *Config) Validate() error {
	if (c.Size < 1) || (c.Size > MaxGridSize) {
		return fmt.Errorf("%w: size must be between 1 and %d, got %d",
			ErrInvalidSize, MaxGridSize, c.Size)
	}
	e := c.Layout().validateFor(c.Size)
	if e != nil {
		return e
	}
	if c.LineWidth <= 0 {
		return fmt.Errorf("%w: line width must be positive, got %f",
			ErrInvalidLayout, c.LineWidth)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("No output file was specified")
	}
	return nil
}

// Starts with DefaultConfig and overrides any setting present in the
// environment. The given env files are loaded into the environment first,
// without replacing variables that are already set. If no files are given,
// ".env" is loaded if it exists.
func LoadConfig(envFiles ...string) (Config, error) {
	toReturn := DefaultConfig()
	if len(envFiles) == 0 {
		e := godotenv.Load()
		if (e != nil) && !errors.Is(e, fs.ErrNotExist) {
			return toReturn, fmt.Errorf("Error loading .env: %w", e)
		}
	} else {
		e := godotenv.Load(envFiles...)
		if e != nil {
			return toReturn, fmt.Errorf("Error loading env files %v: %w",
				envFiles, e)
		}
	}
	e := toReturn.applyEnv()
	if e != nil {
		return toReturn, e
	}
	return toReturn, nil
}

func (c *Config) applyEnv() error {
	e := lookupEnvInt(EnvSize, &c.Size)
	if e != nil {
		return e
	}
	e = lookupEnvInt(EnvMultiplier, &c.Multiplier)
	if e != nil {
		return e
	}
	e = lookupEnvInt(EnvOffset, &c.Offset)
	if e != nil {
		return e
	}
	if value, exists := os.LookupEnv(EnvLineWidth); exists {
		width, e := strconv.ParseFloat(value, 64)
		if e != nil {
			return fmt.Errorf("Environment variable %s must be a number: %w",
				EnvLineWidth, e)
		}
		c.LineWidth = width
	}
	if value, exists := os.LookupEnv(EnvSeed); exists {
		seed, e := strconv.ParseInt(value, 10, 64)
		if e != nil {
			return fmt.Errorf("Environment variable %s must be an integer: %w",
				EnvSeed, e)
		}
		c.Seed = seed
	}
	if value, exists := os.LookupEnv(EnvOutputFile); exists {
		c.OutputFile = value
	}
	return nil
}

// Sets *dst to the integer value of the environment variable, if it's set.
func lookupEnvInt(key string, dst *int) error {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	parsed, e := strconv.Atoi(value)
	if e != nil {
		return fmt.Errorf("Environment variable %s must be an integer: %w",
			key, e)
	}
	*dst = parsed
	return nil
}
