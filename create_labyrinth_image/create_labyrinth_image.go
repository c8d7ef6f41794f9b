// This defines a basic executable for generating an image of a maze.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/yalue/image_utils"
	"github.com/yalue/labyrinth"
)

const arrowLength = 16

func arrowImage(d labyrinth.Direction, arrowColor color.Color) image.Image {
	switch d {
	case labyrinth.Up:
		return image_utils.UpArrow(arrowColor)
	case labyrinth.Left:
		return image_utils.LeftArrow(arrowColor)
	case labyrinth.Down:
		return image_utils.DownArrow(arrowColor)
	}
	return image_utils.RightArrow(arrowColor)
}

// Returns a square arrow image pointing in d, with a white center.
func outlinedArrow(d labyrinth.Direction, arrowColor color.Color) image.Image {
	outer := image_utils.ResizeImage(arrowImage(d, arrowColor), arrowLength,
		arrowLength)
	inner := image_utils.ResizeImage(arrowImage(d, color.White),
		arrowLength/2, arrowLength/2)
	toReturn := image_utils.NewCompositeImage()
	toReturn.AddImage(outer, image.Pt(0, 0))
	toReturn.AddImage(inner, image.Pt(arrowLength/4, arrowLength/4))
	return image_utils.ToRGBA(toReturn)
}

// If the tip of the arrow is supposed to be at pt (or the tail of the arrow,
// if "away" is true), this returns the top-left where the image returned by
// outlinedArrow, pointing in d, should be drawn. The arrow always stays a
// pixel clear of pt.
func arrowTopLeft(pt image.Point, d labyrinth.Direction,
	away bool) image.Point {
	halfLength := arrowLength / 2
	dx, dy := d.Delta()
	shift := halfLength + 1
	if !away {
		shift = -shift
	}
	center := image.Pt(pt.X+dx*shift, pt.Y+dy*shift)
	return image.Pt(center.X-halfLength, center.Y-halfLength)
}

// Draws an arrow into the entrance and one out of the exit on top of the
// rendered maze.
func drawArrows(mazePic image.Image, info *labyrinth.Info) (*image.RGBA,
	error) {
	decorated := image_utils.NewCompositeImage()
	e := decorated.AddImage(mazePic, image.Pt(0, 0))
	if e != nil {
		return nil, fmt.Errorf("Error setting base maze image: %w", e)
	}
	greenColor := color.RGBA{40, 180, 70, 255}
	blueColor := color.RGBA{100, 120, 255, 255}

	e = decorated.AddImage(outlinedArrow(info.StartDirection, greenColor),
		arrowTopLeft(info.StartPoint, info.StartDirection, false))
	if e != nil {
		return nil, fmt.Errorf("Error adding start arrow: %w", e)
	}

	e = decorated.AddImage(outlinedArrow(info.EndDirection, blueColor),
		arrowTopLeft(info.EndPoint, info.EndDirection, true))
	if e != nil {
		return nil, fmt.Errorf("Error adding end arrow: %w", e)
	}
	return image_utils.ToRGBA(decorated), nil
}

// Writes the canvas, with or without arrows, to a PNG file.
func writeImage(canvas *labyrinth.Canvas, info *labyrinth.Info, arrows bool,
	filename string) error {
	f, e := os.Create(filename)
	if e != nil {
		return fmt.Errorf("Error creating output file %s: %w", filename, e)
	}
	defer f.Close()
	if !arrows {
		e = canvas.EncodePNG(f)
		if e != nil {
			return fmt.Errorf("Error writing image to %s: %w", filename, e)
		}
		return nil
	}
	finalPic, e := drawArrows(canvas.Image(), info)
	if e != nil {
		return fmt.Errorf("Error adding maze decorations: %w", e)
	}
	e = png.Encode(f, finalPic)
	if e != nil {
		return fmt.Errorf("Error writing image to %s: %w", filename, e)
	}
	return nil
}

// Holds flag values that don't belong in labyrinth.Config.
type options struct {
	noArrows   bool
	verify     bool
	printASCII bool
	verbose    bool
	envFile    string
}

// Parses the command line. Settings from the environment (and the optional
// env file) are applied first, then any flag given explicitly overrides them.
func parseArgs(args []string, output io.Writer) (*labyrinth.Config, *options,
	error) {
	defaults := labyrinth.DefaultConfig()
	flagConfig := defaults
	var opts options
	fs := flag.NewFlagSet("create_labyrinth_image", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&flagConfig.Size, "size", defaults.Size,
		"The width and height of the maze, in cells.")
	fs.IntVar(&flagConfig.Multiplier, "multiplier", defaults.Multiplier,
		"The number of pixels across each cell.")
	fs.IntVar(&flagConfig.Offset, "offset", defaults.Offset,
		"The padding around the maze, in pixels.")
	fs.Float64Var(&flagConfig.LineWidth, "line_width", defaults.LineWidth,
		"The width of the maze's walls, in pixels.")
	fs.Int64Var(&flagConfig.Seed, "random_seed", defaults.Seed,
		"If positive, specifies the random seed to use.")
	fs.StringVar(&flagConfig.OutputFile, "output_file", defaults.OutputFile,
		"The name of the .png file to which the maze will be saved.")
	fs.BoolVar(&opts.noArrows, "no_arrows", false,
		"If set, don't draw arrows at the entrance and exit.")
	fs.BoolVar(&opts.verify, "verify", false,
		"If set, check that the generated maze is perfect before saving it.")
	fs.BoolVar(&opts.printASCII, "print_ascii", false,
		"If set, also print the maze as text.")
	fs.BoolVar(&opts.verbose, "verbose", false,
		"If set, log debug information.")
	fs.StringVar(&opts.envFile, "env_file", "",
		"An optional file of LABYRINTH_* environment settings. If unset, "+
			".env is used when present.")
	e := fs.Parse(args)
	if e != nil {
		return nil, nil, e
	}

	var config labyrinth.Config
	if opts.envFile != "" {
		config, e = labyrinth.LoadConfig(opts.envFile)
	} else {
		config, e = labyrinth.LoadConfig()
	}
	if e != nil {
		return nil, nil, e
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "size":
			config.Size = flagConfig.Size
		case "multiplier":
			config.Multiplier = flagConfig.Multiplier
		case "offset":
			config.Offset = flagConfig.Offset
		case "line_width":
			config.LineWidth = flagConfig.LineWidth
		case "random_seed":
			config.Seed = flagConfig.Seed
		case "output_file":
			config.OutputFile = flagConfig.OutputFile
		}
	})
	e = config.Validate()
	if e != nil {
		return nil, nil, fmt.Errorf("Invalid settings: %w", e)
	}
	return &config, &opts, nil
}

// Generates, draws and saves a maze. Text output (help and the optional ASCII
// maze) goes to stdout, logs go to stderr. Returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	config, opts, e := parseArgs(args, stdout)
	if e == flag.ErrHelp {
		return 0
	}
	if e != nil {
		fmt.Fprintf(stderr, "%s\nRun with -help for more information.\n", e)
		return 1
	}
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	}))
	logger.Debug("Loaded settings", "size", config.Size,
		"multiplier", config.Multiplier, "offset", config.Offset,
		"line_width", config.LineWidth, "seed", config.Seed)

	g, info, e := labyrinth.NewGridMazeWithSeed(config.Size, config.Layout(),
		config.Seed)
	if e != nil {
		logger.Error("Failed generating maze", "error", e)
		return 1
	}
	logger.Info("Generated "+info.DebugInfo, "steps", info.Stats.Steps,
		"backtracks", info.Stats.Backtracks,
		"branch_points", info.Stats.BranchPoints)
	if opts.verify {
		e = g.CheckPerfect()
		if e != nil {
			logger.Error("Generated maze failed verification", "error", e)
			return 1
		}
		logger.Info("Maze verified", "passages", len(g.Passages()))
	}
	if opts.printASCII {
		fmt.Fprint(stdout, g.String())
	}

	canvas := labyrinth.NewCanvas(config.CanvasSize(), config.Background)
	canvas.SetLineWidth(config.LineWidth)
	drawn := labyrinth.Render(g, canvas)
	logger.Debug("Rendered walls", "drawn", drawn,
		"segments", g.SegmentCount())

	arrows := !opts.noArrows
	if arrows && (config.Offset <= arrowLength) {
		logger.Debug("Not drawing arrows, the offset is too small",
			"offset", config.Offset)
		arrows = false
	}
	e = writeImage(canvas, info, arrows, config.OutputFile)
	if e != nil {
		logger.Error("Failed saving maze", "error", e)
		return 1
	}
	logger.Info("Image written OK", "file", config.OutputFile)
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
