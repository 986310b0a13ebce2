package dataset

import (
	"sync/atomic"

	"github.com/Clark-Hu/movie-sentiment/internal/domain"
)

const sampleSize = 5

// Snapshot is an immutable view of the dataset. Records must not be modified.
type Snapshot struct {
	Records []domain.MovieRecord
	Loaded  bool
}

// Stats summarizes the current dataset.
type Stats struct {
	TotalMovies  int      `json:"totalMovies"`
	Loaded       bool     `json:"loaded"`
	SampleMovies []string `json:"sampleMovies"`
}

// State owns the process-wide dataset. It moves from unloaded to loaded
// exactly once; readers observe either state in full.
type State struct {
	current atomic.Pointer[Snapshot]
}

// NewState returns an empty, unloaded state.
func NewState() *State {
	s := &State{}
	s.current.Store(&Snapshot{})
	return s
}

// Snapshot returns the current view.
func (s *State) Snapshot() Snapshot {
	return *s.current.Load()
}

// Loaded reports whether the dataset has been published.
func (s *State) Loaded() bool {
	return s.current.Load().Loaded
}

// Publish installs records and marks the state loaded. It returns false when
// the state was already published.
func (s *State) Publish(records []domain.MovieRecord) bool {
	next := &Snapshot{
		Records: append([]domain.MovieRecord(nil), records...),
		Loaded:  true,
	}
	for {
		cur := s.current.Load()
		if cur.Loaded {
			return false
		}
		if s.current.CompareAndSwap(cur, next) {
			return true
		}
	}
}

// Stats reports size, load status and the first few titles.
func (s *State) Stats() Stats {
	snap := s.Snapshot()
	sample := make([]string, 0, sampleSize)
	for i := 0; i < len(snap.Records) && i < sampleSize; i++ {
		sample = append(sample, snap.Records[i].TitleOrEmpty())
	}
	return Stats{
		TotalMovies:  len(snap.Records),
		Loaded:       snap.Loaded,
		SampleMovies: sample,
	}
}
