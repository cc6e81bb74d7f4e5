package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/tippi-fifestarr/scoundrel/internal/cmd/play"
	"github.com/tippi-fifestarr/scoundrel/internal/platform/config"
)

func main() {
	cfg, err := play.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := play.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		config.Exitf("play: %v", err)
	}
}
