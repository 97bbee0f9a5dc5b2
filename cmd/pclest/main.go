// Command pclest estimates the angular power spectrum of one masked sky map
// (auto) or of two (cross) with the pseudo-Cl MASTER method.
//
// Usage:
//
//	pclest [flags]
//
// Flags may be combined with a YAML run file given by -config; flags set on
// the command line take precedence over the file.
//
// Examples:
//
//	pclest -mask1 mask.txt -map1 map.bin -nside 64 -bins bins.txt -output cl.txt
//	pclest -config run.yaml -method step -workspace ws.bin -save-workspace
//	pclest -type cross -mask1 m1.txt -map1 a.bin -mask2 m2.txt -map2 b.bin -bins bins.txt -output cross.txt
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/cwbudde/algo-pcl/estimate"
	"github.com/cwbudde/algo-pcl/internal/config"
	"github.com/cwbudde/algo-pcl/internal/logging"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, styled))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, styled bool) int {
	fs := flag.NewFlagSet("pclest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := config.RegisterFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: pclest [flags]\n\n")
		fmt.Fprintf(stderr, "Estimates the angular power spectrum of masked HEALPix maps.\n")
		fmt.Fprintf(stderr, "Flags override values from the -config file.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  pclest -mask1 mask.txt -map1 map.bin -nside 64 -bins bins.txt -output cl.txt\n")
		fmt.Fprintf(stderr, "  pclest -config run.yaml -method step -workspace ws.bin -save-workspace\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "error: unexpected arguments: %v\n", fs.Args())
		return exitUsage
	}

	cfg := config.Default()
	if flags.Config != "" {
		var err error
		if cfg, err = config.Load(flags.Config); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitUsage
		}
	}
	if err := flags.Apply(&cfg); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	params, err := cfg.Params()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	defer func() { _ = log.Sync() }()

	opts := []estimate.Option{estimate.WithLogger(log)}
	if cfg.Bandpowers != "" {
		opts = append(opts, estimate.WithBandpowerDump(cfg.Bandpowers))
	}

	rep, err := estimate.Run(ctx, params, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if isUsageError(err) {
			return exitUsage
		}
		return exitError
	}

	if err := printSummary(stdout, rep, styled); err != nil {
		fmt.Fprintf(stderr, "error: failed to write summary: %v\n", err)
		return exitError
	}
	return exitOK
}

func isUsageError(err error) bool {
	return errors.Is(err, estimate.ErrUnknownMethod) ||
		errors.Is(err, estimate.ErrUnknownCorrelation) ||
		errors.Is(err, estimate.ErrMissingInput)
}
