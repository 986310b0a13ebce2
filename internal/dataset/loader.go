package dataset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-sentiment/internal/domain"
)

// ErrAlreadyLoaded is returned when Load runs against a published state.
var ErrAlreadyLoaded = errors.New("dataset: already loaded")

var errSourcePanic = errors.New("dataset: source panicked")

// SourceReport describes what one source contributed.
type SourceReport struct {
	Name  string
	Count int
	Err   error
}

// LoadReport summarizes a load attempt.
type LoadReport struct {
	Sources      []SourceReport
	Total        int
	UsedFallback bool
	// Failure is the unrecoverable error that forced the fallback list, if any.
	Failure  error
	Duration time.Duration
}

// Loader performs the single dataset load of the process.
type Loader struct {
	state        *State
	sources      []Source
	fetchTimeout time.Duration
	logger       *zap.Logger
}

// NewLoader wires sources to state. fetchTimeout bounds each source; zero disables it.
func NewLoader(state *State, sources []Source, fetchTimeout time.Duration, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		state:        state,
		sources:      sources,
		fetchTimeout: fetchTimeout,
		logger:       logger,
	}
}

// Load fetches every source in order and publishes the concatenated records.
// Failing sources contribute nothing; an unrecoverable failure publishes the
// fallback list. The state is marked loaded in every case.
func (l *Loader) Load(ctx context.Context) (LoadReport, error) {
	if l.state.Loaded() {
		return LoadReport{}, ErrAlreadyLoaded
	}

	started := time.Now()
	records, report, err := l.collect(ctx)
	if err != nil {
		l.logger.Error("dataset: load failed, using fallback list", zap.Error(err))
		records = Fallback()
		report.UsedFallback = true
		report.Failure = err
	}
	report.Total = len(records)
	report.Duration = time.Since(started)

	if !l.state.Publish(records) {
		return report, ErrAlreadyLoaded
	}

	l.logger.Info("dataset: loaded",
		zap.Int("movies", report.Total),
		zap.Int("sources", len(l.sources)),
		zap.Bool("fallback", report.UsedFallback),
		zap.Duration("duration", report.Duration))
	return report, nil
}

func (l *Loader) collect(ctx context.Context) ([]domain.MovieRecord, LoadReport, error) {
	var (
		records []domain.MovieRecord
		report  LoadReport
	)
	for _, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, report, fmt.Errorf("dataset load interrupted: %w", err)
		}

		items, err := l.fetch(ctx, src)
		if err != nil {
			if errors.Is(err, ErrMalformedPayload) || errors.Is(err, errSourcePanic) {
				return nil, report, fmt.Errorf("source %s: %w", src.Name(), err)
			}
			l.logger.Warn("dataset: source failed, substituting empty list",
				zap.String("source", src.Name()),
				zap.Error(err))
			items = nil
		}

		report.Sources = append(report.Sources, SourceReport{Name: src.Name(), Count: len(items), Err: err})
		records = append(records, items...)
	}
	if err := ctx.Err(); err != nil {
		return nil, report, fmt.Errorf("dataset load interrupted: %w", err)
	}
	return records, report, nil
}

func (l *Loader) fetch(ctx context.Context, src Source) (items []domain.MovieRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = fmt.Errorf("%w: %v", errSourcePanic, r)
		}
	}()

	if l.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.fetchTimeout)
		defer cancel()
	}
	return src.Fetch(ctx)
}
