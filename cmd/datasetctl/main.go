// Package main provides datasetctl, a helper for serving and importing movie datasets.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-sentiment/internal/dataset"
	"github.com/Clark-Hu/movie-sentiment/internal/domain"
	"github.com/Clark-Hu/movie-sentiment/internal/logging"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:    "datasetctl",
		Version: version,
		Usage:   "Serve or import movie datasets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "zap log level",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			importCommand(),
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(cmd *cli.Command) (*zap.Logger, error) {
	return logging.New(cmd.String("log-level"), true)
}

// readDataset loads and normalizes a JSON dataset file.
func readDataset(ctx context.Context, path string) ([]domain.MovieRecord, error) {
	src, err := dataset.NewFileSource(path, path)
	if err != nil {
		return nil, err
	}
	return src.Fetch(ctx)
}
