// Package sentiment resolves a free-text title against the dataset and derives
// a rating-based sentiment analysis for it.
package sentiment

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Clark-Hu/movie-sentiment/internal/dataset"
	"github.com/Clark-Hu/movie-sentiment/internal/domain"
)

const (
	defaultRating    = 5.0
	defaultVoteCount = 1000
	realConfidence   = 0.8
	demoConfidence   = 0.7
)

// DatasetView exposes the current dataset snapshot.
type DatasetView interface {
	Snapshot() dataset.Snapshot
}

// Random supplies uniform values in [0, 1).
type Random interface {
	Float64() float64
}

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewLockedRand returns a goroutine-safe Random seeded with seed.
func NewLockedRand(seed int64) Random {
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithRandom sets the source used to synthesize Demo Mode values.
func WithRandom(rnd Random) Option {
	return func(r *Resolver) { r.rnd = rnd }
}

// WithClock sets the time source for timestamps and synthesized years.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithIDGenerator sets the analysis id generator.
func WithIDGenerator(newID func() string) Option {
	return func(r *Resolver) { r.newID = newID }
}

// Resolver turns titles into analyses.
type Resolver struct {
	dataset  DatasetView
	fallback []domain.MovieRecord
	rnd      Random
	now      func() time.Time
	newID    func() string
}

// NewResolver returns a Resolver reading from view.
func NewResolver(view DatasetView, opts ...Option) *Resolver {
	r := &Resolver{
		dataset:  view,
		fallback: dataset.Fallback(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rnd == nil {
		r.rnd = NewLockedRand(time.Now().UnixNano())
	}
	return r
}

// Resolve finds the best match for title and derives its analysis. Until the
// dataset is loaded the fallback list is searched. A miss yields a
// synthesized Demo Mode analysis; Resolve never fails.
func (r *Resolver) Resolve(title string) domain.MovieAnalysis {
	term := strings.ToLower(strings.TrimSpace(title))

	snap := r.dataset.Snapshot()
	records := snap.Records
	if !snap.Loaded {
		records = r.fallback
	}

	if record, ok := Match(records, term); ok {
		return r.analyzeRecord(record)
	}
	return r.analyzeDemo(title)
}

func (r *Resolver) analyzeRecord(record domain.MovieRecord) domain.MovieAnalysis {
	rating, ok := record.RatingValue()
	if !ok {
		rating = defaultRating
	}
	votes, ok := record.VoteCountValue()
	if !ok {
		votes = defaultVoteCount
	}
	title := orDefault(record.Title, "Unknown")

	movie := domain.MovieView{
		Title:     title,
		Year:      releaseYear(record),
		Director:  orDefault(record.Director, "Various Directors"),
		Genre:     ParseGenres(record.Genres),
		Rating:    rating,
		PosterURL: PosterURL(record, title),
		Overview:  orDefault(record.Overview, "No description available."),
		VoteCount: votes,
	}
	if record.Popularity != nil {
		movie.Popularity = *record.Popularity
	}

	return domain.MovieAnalysis{
		ID:    r.newID(),
		Real:  true,
		Movie: movie,
		Sentiment: domain.SentimentResult{
			Type:       Classify(rating),
			Score:      ClampScore(rating / 10),
			Confidence: realConfidence + float64(votes)/50000,
			Summary:    Summary(title, rating, votes),
		},
		Confidence:  realConfidence,
		ReviewCount: votes,
		Timestamp:   r.now(),
		Source:      domain.SourceMovieDatabase,
	}
}

func (r *Resolver) analyzeDemo(title string) domain.MovieAnalysis {
	rating := 5 + r.rnd.Float64()*3
	votes := int64(r.rnd.Float64()*5000) + 1000
	now := r.now()
	year := now.Year() - int(r.rnd.Float64()*20)

	return domain.MovieAnalysis{
		ID:   r.newID(),
		Real: false,
		Movie: domain.MovieView{
			Title:     title,
			Year:      strconv.Itoa(year),
			Director:  "Unknown Director",
			Genre:     "Various Genres",
			Rating:    rating,
			PosterURL: DemoPosterURL(title),
			Overview:  "This movie data is not available in our dataset.",
			VoteCount: votes,
		},
		Sentiment: domain.SentimentResult{
			Type:       Classify(rating),
			Score:      rating / 10,
			Confidence: demoConfidence,
			Summary:    DemoSummary(title),
		},
		Confidence:  demoConfidence,
		ReviewCount: votes,
		Timestamp:   now,
		Source:      domain.SourceDemoMode,
	}
}

// releaseYear prefers the first four characters of release_date, then year.
func releaseYear(record domain.MovieRecord) string {
	if record.ReleaseDate != nil && *record.ReleaseDate != "" {
		return runePrefix(*record.ReleaseDate, 4)
	}
	if record.Year != nil && *record.Year != "" {
		return *record.Year
	}
	return "N/A"
}

func orDefault(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}
