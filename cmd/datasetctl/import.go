package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-sentiment/internal/repository"
	"github.com/Clark-Hu/movie-sentiment/internal/store"
)

var errMissingDBURL = errors.New("--db-url or DATABASE_URL is required")

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Load a JSON dataset into a PostgreSQL table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db-url",
				Usage:   "PostgreSQL connection URL",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "path to the dataset file",
				Value:   "assets/data/movies.json",
			},
			&cli.StringFlag{
				Name:    "table",
				Usage:   "destination table",
				Value:   "movies",
				Sources: cli.EnvVars("DATASET_TABLE"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "overall import timeout",
				Value: time.Minute,
			},
		},
		Action: runImport,
	}
}

func runImport(ctx context.Context, cmd *cli.Command) error {
	dbURL := cmd.String("db-url")
	if dbURL == "" {
		return errMissingDBURL
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	records, err := readDataset(ctx, cmd.String("data"))
	if err != nil {
		return err
	}

	st, err := store.New(ctx, dbURL, store.Options{
		MaxConns:               2,
		ConnTimeout:            10 * time.Second,
		StatementCacheCapacity: -1,
		Logger:                 logger,
	})
	if err != nil {
		return err
	}
	defer st.Close()

	table := cmd.String("table")
	repo := repository.New(st)
	copied, err := repo.Movies.Import(ctx, table, records)
	if err != nil {
		return err
	}

	total, err := repo.Movies.Count(ctx, table)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("count after import: %w", err)
	}

	logger.Info("dataset imported",
		zap.String("table", table),
		zap.Int64("copied", copied),
		zap.Int64("total", total))
	return nil
}
