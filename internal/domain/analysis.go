package domain

import "time"

// SentimentType is the reception label derived from a rating.
type SentimentType string

const (
	SentimentPositive SentimentType = "positive"
	SentimentNeutral  SentimentType = "neutral"
	SentimentNegative SentimentType = "negative"
)

// Analysis sources.
const (
	SourceMovieDatabase = "Movie Database"
	SourceDemoMode      = "Demo Mode"
)

// Label returns the capitalized display label.
func (t SentimentType) Label() string {
	switch t {
	case SentimentPositive:
		return "Positive"
	case SentimentNegative:
		return "Negative"
	case SentimentNeutral:
		return "Neutral"
	default:
		return string(t)
	}
}

// Color returns the hex color used to render the label.
func (t SentimentType) Color() string {
	switch t {
	case SentimentPositive:
		return "#10b981"
	case SentimentNegative:
		return "#ef4444"
	case SentimentNeutral:
		return "#f59e0b"
	default:
		return "#666"
	}
}

// Icon returns the material icon name for the label.
func (t SentimentType) Icon() string {
	switch t {
	case SentimentPositive:
		return "sentiment_very_satisfied"
	case SentimentNegative:
		return "sentiment_very_dissatisfied"
	default:
		return "sentiment_neutral"
	}
}

// SentimentResult is the derived label/score pair for a movie.
type SentimentResult struct {
	Type       SentimentType `json:"type"`
	Score      float64       `json:"score"`
	Confidence float64       `json:"confidence"`
	Summary    string        `json:"summary"`
}

// MovieView is the normalized movie shown next to an analysis.
type MovieView struct {
	Title      string  `json:"title"`
	Year       string  `json:"year"`
	Director   string  `json:"director"`
	Genre      string  `json:"genre"`
	Rating     float64 `json:"rating"`
	PosterURL  string  `json:"posterUrl"`
	Overview   string  `json:"overview"`
	VoteCount  int64   `json:"voteCount"`
	Popularity float64 `json:"popularity"`
}

// MovieAnalysis is the result of resolving a title. It is never mutated after creation.
type MovieAnalysis struct {
	ID          string          `json:"id"`
	Real        bool            `json:"real"`
	Movie       MovieView       `json:"movie"`
	Sentiment   SentimentResult `json:"sentiment"`
	Confidence  float64         `json:"confidence"`
	ReviewCount int64           `json:"reviewCount"`
	Timestamp   time.Time       `json:"timestamp"`
	Source      string          `json:"source"`
}
