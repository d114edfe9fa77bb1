package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/gestures/internal/replay"
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		speed     = flag.Float64("speed", replay.DefaultSpeed, "Playback speed multiplier")
		timeout   = flag.Duration("timeout", replay.DefaultTimeout, "HTTP request timeout")
		settle    = flag.Duration("settle", replay.DefaultSettle, "How long to wait for expected gestures")
		logFormat = flag.String("log-format", "text", "Log format: text or json")
		verbose   = flag.Bool("verbose", false, "Log every posted step")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		replay.ShowHelp()
		return
	}

	if err := replay.SetupLogging(*logFormat, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &replay.Config{
		BaseURL:   *baseURL,
		Scenarios: flag.Args(),
		Speed:     *speed,
		Timeout:   *timeout,
		Settle:    *settle,
		Verbose:   *verbose,
	}

	if _, err := replay.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Replay failed: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
