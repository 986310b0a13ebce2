package dataset

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-sentiment/internal/config"
	"github.com/Clark-Hu/movie-sentiment/internal/store"
)

// SourcesFromConfig builds one Source per declared spec, in declaration order.
func SourcesFromConfig(cfg config.Config, logger *zap.Logger) ([]Source, error) {
	timeout := time.Duration(cfg.DatasetTimeoutSecs) * time.Second
	storeOpts := store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 logger,
	}

	sources := make([]Source, 0, len(cfg.DatasetSources))
	for _, spec := range cfg.DatasetSources {
		var (
			src Source
			err error
		)
		switch spec.Kind {
		case config.SourceKindHTTP:
			src, err = NewHTTPSource(spec.Name, spec.Location, timeout, logger)
		case config.SourceKindFile:
			src, err = NewFileSource(spec.Name, spec.Location)
		case config.SourceKindPostgres:
			src, err = NewPostgresSource(spec.Name, spec.Location, cfg.DatasetTable, storeOpts)
		case config.SourceKindSQLite:
			src, err = NewSQLiteSource(spec.Name, spec.Location, cfg.DatasetTable)
		default:
			err = fmt.Errorf("unknown kind %q", spec.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("dataset source %s: %w", spec.Name, err)
		}
		sources = append(sources, src)
	}
	return sources, nil
}
