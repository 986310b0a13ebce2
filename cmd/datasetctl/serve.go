package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-sentiment/internal/domain"
)

const envelopeNone = "none"

var validEnvelopes = map[string]struct{}{
	envelopeNone: {},
	"data":       {},
	"results":    {},
	"movies":     {},
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a JSON dataset at /movies.json for local development",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "port to listen on",
				Value:   "9099",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "path to the dataset file",
				Value:   "assets/data/movies.json",
			},
			&cli.StringFlag{
				Name:    "envelope",
				Aliases: []string{"e"},
				Usage:   "wrap records under a key (none, data, results, movies)",
				Value:   envelopeNone,
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	records, err := readDataset(ctx, cmd.String("data"))
	if err != nil {
		return err
	}

	handler, err := newDatasetHandler(records, cmd.String("envelope"), logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cmd.String("port"),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving dataset",
			zap.String("addr", srv.Addr),
			zap.Int("records", len(records)),
			zap.String("envelope", cmd.String("envelope")))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// newDatasetHandler pre-encodes records, optionally wrapped under envelope,
// and serves them at /movies.json.
func newDatasetHandler(records []domain.MovieRecord, envelope string, logger *zap.Logger) (http.Handler, error) {
	if _, ok := validEnvelopes[envelope]; !ok {
		return nil, fmt.Errorf("unknown envelope %q", envelope)
	}
	if records == nil {
		records = []domain.MovieRecord{}
	}

	var payload interface{} = records
	if envelope != envelopeNone {
		payload = map[string]interface{}{envelope: records}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/movies.json", func(w http.ResponseWriter, req *http.Request) {
		logger.Debug("dataset requested", zap.String("remote", req.RemoteAddr))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
	return r, nil
}
