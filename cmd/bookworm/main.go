package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"bookworm-search/internal/bootstrap"
	"bookworm-search/internal/catalog"
	"bookworm-search/internal/config"
	"bookworm-search/internal/logging"
)

// CLI is the bookworm command structure.
type CLI struct {
	Config   string `help:"Path to a bookworm.yaml config file" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error); overrides config"`

	Search SearchCmd `cmd:"" help:"Search the catalog once and print the results"`
	Shell  ShellCmd  `cmd:"" default:"1" help:"Interactive search menu"`
}

// appContext is bound into every command's Run method.
type appContext struct {
	ctx      context.Context
	searcher catalog.Searcher
	stdout   io.Writer
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("bookworm"),
		kong.Description("Search the Open Library catalog by title, author or ISBN."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	level := cfg.LogLevel
	if cli.LogLevel != "" {
		level = cli.LogLevel
	}
	logger := logging.New(os.Stderr, logging.ParseLevel(level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger)

	client := bootstrap.NewClient(ctx, cfg)
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close client resources", "err", err)
		}
	}()

	err = kctx.Run(&appContext{ctx: ctx, searcher: client, stdout: os.Stdout})
	kctx.FatalIfErrorf(err)
}
