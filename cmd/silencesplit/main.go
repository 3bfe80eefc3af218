// Package main provides the entry point for the silencesplit command.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/maauso/silencesplit/internal/bootstrap"
	"github.com/maauso/silencesplit/internal/cli"
	"github.com/maauso/silencesplit/internal/config"
	"github.com/maauso/silencesplit/internal/ffmpeg"
	"github.com/maauso/silencesplit/internal/split"
)

var version = "0.1.0"

var errNoInput = errors.New("no input file specified")

// CLI defines the command-line interface. Defaults come from the
// environment so flags always win.
type CLI struct {
	Version   bool    `short:"v" help:"Show version information"`
	Output    string  `short:"o" placeholder:"dir" default:"${output}" help:"Directory for the track files"`
	Threshold float64 `short:"t" placeholder:"db" default:"${threshold}" help:"Silence threshold in dB"`
	Duration  float64 `short:"d" placeholder:"sec" default:"${duration}" help:"Minimum silence duration in seconds"`
	LogLevel  string  `name:"log-level" placeholder:"level" default:"${log_level}" help:"Log level: debug, info, warn, error"`
	LogFormat string  `name:"log-format" placeholder:"format" default:"${log_format}" enum:"text,json" help:"Log format"`
	Input     string  `arg:"" name:"input" optional:"" help:"Audio file to split"`
}

// noSegmentsHint is printed when filtering leaves nothing to extract.
const noSegmentsHint = "Try adjusting the silence threshold (-t) or duration (-d)."

func main() {
	if err := run(); err != nil {
		cli.PrintError(err.Error())
		if hint := hintFor(err); hint != "" {
			cli.PrintHint(hint)
		}
		os.Exit(1)
	}
}

// hintFor returns follow-up guidance for errors the user can act on.
func hintFor(err error) string {
	switch {
	case errors.Is(err, ffmpeg.ErrCapabilityUnavailable):
		return ffmpeg.InstallHint
	case errors.Is(err, split.ErrNoSegments):
		return noSegmentsHint
	default:
		return ""
	}
}

// newParser builds the command-line parser. Defaults are taken from cfg.
// Hyphen-prefixed values are allowed so "-t -50" reads as a threshold.
func newParser(args *CLI, cfg *config.Config) (*kong.Kong, error) {
	return kong.New(args,
		kong.Name("silencesplit"),
		kong.Description("Split a long recording into tracks at its silences"),
		kong.UsageOnError(),
		kong.WithHyphenPrefixedParameters(true),
		kong.Vars{
			"output":     cfg.OutputDir,
			"threshold":  strconv.FormatFloat(cfg.ThresholdDB, 'f', -1, 64),
			"duration":   strconv.FormatFloat(cfg.MinSilenceSec, 'f', -1, 64),
			"log_level":  cfg.LogLevel,
			"log_format": cfg.LogFormat,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)
}

func run() error {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	args := &CLI{}
	parser, err := newParser(args, cfg)
	if err != nil {
		return fmt.Errorf("build command line: %w", err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if args.Version {
		cli.PrintVersion(os.Stdout, version)
		return nil
	}

	if args.Input == "" {
		_ = kctx.PrintUsage(false)
		return errNoInput
	}

	cfg.OutputDir = args.Output
	cfg.ThresholdDB = args.Threshold
	cfg.MinSilenceSec = args.Duration
	cfg.LogLevel = args.LogLevel
	cfg.LogFormat = args.LogFormat
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Create structured logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	logger.Debug("configuration loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := bootstrap.NewDependencies(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}

	report, err := deps.SplitService.Run(ctx, split.Request{
		InputPath:     args.Input,
		OutputDir:     cfg.OutputDir,
		ThresholdDB:   cfg.ThresholdDB,
		MinSilenceSec: cfg.MinSilenceSec,
	})
	if report != nil {
		cli.PrintMediaInfo(os.Stdout, report.InputPath, report.Info)
		cli.PrintTracks(os.Stdout, report.Tracks)
	}
	if err != nil {
		return err
	}

	cli.PrintSummary(os.Stdout, report)
	return nil
}
