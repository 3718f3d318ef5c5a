package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/hostfacts-labs/hostfacts/internal/config"
	"github.com/hostfacts-labs/hostfacts/internal/probe"
	"github.com/hostfacts-labs/hostfacts/internal/render"
	"github.com/hostfacts-labs/hostfacts/internal/report"
	"github.com/hostfacts-labs/hostfacts/internal/sender"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		jsonOut     bool
		shortOut    bool
		post        bool
		showVersion bool
		configPath  string
	)
	flag.BoolVar(&jsonOut, "json", false, "JSON output")
	flag.BoolVar(&shortOut, "short", false, "compact monitoring output")
	flag.BoolVar(&post, "post", false, "deliver the report to the configured ingest endpoint")
	flag.BoolVar(&showVersion, "version", false, "show version information")
	flag.StringVar(&configPath, "config", config.DefaultConfigPath, "path to the config file")
	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("hostfacts v%s\n", config.Version)
		fmt.Printf("Commit: %s\n", config.Commit)
		fmt.Printf("Build Date: %s\n", config.BuildDate)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logrus.SetOutput(os.Stderr)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := report.NewCollector(cfg).Collect(ctx)
	if err != nil {
		if errors.Is(err, probe.ErrCPUInfoUnavailable) {
			fmt.Fprintf(os.Stderr, "Error: %s unreadable. Not running on Linux?\n", cfg.CPUInfoPath())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}

	// --short wins over --json when both are given.
	switch {
	case shortOut:
		render.Short(os.Stdout, rep)
	case jsonOut:
		if err := render.JSON(os.Stdout, rep); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	default:
		render.Text(os.Stdout, rep)
	}

	if post {
		token, err := cfg.RequireToken()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}

		s := sender.NewHTTPSender(cfg.ServerURL, token, cfg.Timeout())
		defer s.Close()

		if err := s.Send(ctx, rep); err != nil {
			if errors.Is(err, sender.ErrUnauthorized) {
				fmt.Fprintln(os.Stderr, "Error: authentication failed. Check the configured token.")
			} else {
				fmt.Fprintf(os.Stderr, "Error: report delivery failed: %v\n", err)
			}
			return 1
		}
		logrus.Debug("report delivered")
	}

	return 0
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `hostfacts - Linux host hardware and OS identity reporter

Usage:
  hostfacts [flags]

Flags:
  --json       JSON output
  --short      Compact monitoring output
  --post       Deliver the report to the configured ingest endpoint
  --config     Path to the config file (default %s)
  --version    Show version information
  --help       Show this help message

Environment Variables:
  HOSTFACTS_TOKEN       API token for --post
  HOSTFACTS_SERVER_URL  Ingest endpoint URL (optional)
  HOSTFACTS_DEBUG       Enable debug logging (true/1)

Configuration File:
  %s    YAML configuration

Examples:
  hostfacts               # Full output
  hostfacts --short       # Monitoring one-liner
  hostfacts --json        # Structured JSON
  hostfacts --json --post # Print and deliver the report
`, config.DefaultConfigPath, config.DefaultConfigPath)
}
