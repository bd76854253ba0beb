package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ironsheep/hough-lines/internal/hough"
	"github.com/ironsheep/hough-lines/internal/imgio"
	"github.com/ironsheep/hough-lines/internal/preprocess"
	"github.com/ironsheep/hough-lines/internal/render"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("hough-lines %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	var (
		steps     = flag.String("steps", "grayscale,edges", "preprocessing steps: comma-separated names or a JSON step array")
		numPeaks  = flag.Int("num-peaks", 1, "maximum number of peaks to extract")
		numLines  = flag.Int("num-lines", 0, "fixed-count mode: detect exactly N lines (overrides threshold, fill-gap and num-peaks)")
		threshold = flag.Float64("threshold", hough.Auto, "minimum peak votes; -1 selects half the accumulator maximum")
		fillGap   = flag.Float64("fill-gap", 20, "largest pixel gap bridged into one segment")
		minLength = flag.Float64("min-length", 40, "shortest segment length kept")
		thetaStep = flag.Float64("theta-step", 1, "angular resolution in degrees")
		rhoRes    = flag.Float64("rho-resolution", 1, "rho resolution in pixels")
		workers   = flag.Int("workers", 0, "parallel workers for voting and extraction (0 = serial)")
		overlay   = flag.String("overlay", "", "write the segments drawn over the source image to this file")
		strokeCol = flag.String("color", "#FF0000", "overlay stroke color (hex)")
		strokeW   = flag.Int("stroke", 1, "overlay stroke width in pixels")
		palette   = flag.Bool("palette", false, "give each overlay segment its own color")
	)
	flag.Parse()

	log := newLogger()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hough-lines [options] <image>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	img, err := imgio.LoadImage(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("cannot load image")
	}

	pipe, err := buildPipeline(*steps, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build preprocessing pipeline")
	}
	log.Debug().Strs("steps", pipe.StepNames()).Msg("pipeline assembled")

	bin, err := pipe.Run(img)
	if err != nil {
		log.Fatal().Err(err).Msg("preprocessing failed")
	}

	cfg := hough.DefaultConfig()
	cfg.NumPeaks = *numPeaks
	cfg.NumLines = *numLines
	cfg.Threshold = *threshold
	cfg.FillGap = *fillGap
	cfg.MinLength = *minLength
	cfg.ThetaStep = *thetaStep
	cfg.RhoResolution = *rhoRes
	cfg.Workers = *workers

	session := hough.NewSession(cfg)
	session.SetImage(bin)
	res, err := session.Detect()
	if err != nil {
		log.Fatal().Err(err).Msg("detection failed")
	}
	log.Info().
		Int("peaks", len(res.Peaks)).
		Int("segments", len(res.Segments)).
		Msg("detection complete")

	out, err := json.MarshalIndent(res.Segments, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot encode segments")
	}
	fmt.Println(string(out))

	if *overlay != "" {
		style := render.Style{Color: *strokeCol, StrokeWidth: *strokeW, Palette: *palette}
		drawables, err := render.Overlays(res.Segments, style)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot build overlays")
		}
		if err := imgio.Save(*overlay, render.Compose(img, drawables)); err != nil {
			log.Fatal().Err(err).Msg("cannot write overlay")
		}
		log.Info().Str("path", *overlay).Msg("overlay written")
	}
}

// buildPipeline accepts either a JSON step array or a comma-separated list
// of step names using default arguments.
func buildPipeline(spec string, log zerolog.Logger) (*preprocess.Pipeline, error) {
	var specs []preprocess.StepSpec
	if strings.HasPrefix(strings.TrimSpace(spec), "[") {
		if err := json.Unmarshal([]byte(spec), &specs); err != nil {
			return nil, fmt.Errorf("invalid step spec: %w", err)
		}
	} else {
		for _, name := range strings.Split(spec, ",") {
			if name = strings.TrimSpace(name); name != "" {
				specs = append(specs, preprocess.StepSpec{Name: name})
			}
		}
	}
	steps, err := preprocess.Build(specs)
	if err != nil {
		return nil, err
	}
	return preprocess.NewPipeline(log, steps...), nil
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(os.Getenv("HOUGH_LOG_LEVEL")); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func printUsage() {
	fmt.Println("hough-lines - detect straight line segments in images")
	fmt.Println()
	fmt.Println("Usage: hough-lines [options] <image>")
	fmt.Println()
	fmt.Println("The image is preprocessed into a binary edge map, then line")
	fmt.Println("segments are detected with a Hough transform and printed as JSON.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Preprocessing steps:", strings.Join(preprocess.Names(), ", "))
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  HOUGH_LOG_LEVEL=debug    Enable debug logging")
}
