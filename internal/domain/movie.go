package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MovieRecord is a single entry of an external movie dataset. Every field is
// optional; consumers substitute defaults for absent values.
type MovieRecord struct {
	Title       *string
	VoteAverage *float64
	Rating      *float64
	VoteCount   *int64
	// Votes carries the camelCase voteCount alias.
	Votes       *int64
	ReleaseDate *string
	Year        *string
	Director    *string
	// Genres is kept undecoded: it may be a JSON-encoded string or a list of {name} objects.
	Genres     json.RawMessage
	PosterPath *string
	PosterURL  *string
	Overview   *string
	Popularity *float64
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// TitleOrEmpty returns the record title or "" when absent.
func (m MovieRecord) TitleOrEmpty() string {
	if m.Title == nil {
		return ""
	}
	return *m.Title
}

// RatingValue applies the vote_average > rating precedence. A zero counts as
// unset, so it falls through to the alias and then to the caller's default.
func (m MovieRecord) RatingValue() (float64, bool) {
	if m.VoteAverage != nil && *m.VoteAverage != 0 {
		return *m.VoteAverage, true
	}
	if m.Rating != nil && *m.Rating != 0 {
		return *m.Rating, true
	}
	return 0, false
}

// VoteCountValue applies the vote_count > voteCount precedence, skipping zeros
// like RatingValue.
func (m MovieRecord) VoteCountValue() (int64, bool) {
	if m.VoteCount != nil && *m.VoteCount != 0 {
		return *m.VoteCount, true
	}
	if m.Votes != nil && *m.Votes != 0 {
		return *m.Votes, true
	}
	return 0, false
}

// UnmarshalJSON decodes a loosely-typed record. Values of an unexpected type
// are treated as absent, and non-object input yields an empty record.
func (m *MovieRecord) UnmarshalJSON(data []byte) error {
	*m = MovieRecord{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return err
	}

	m.Title = rawString(fields["title"])
	m.VoteAverage = rawFloat(fields["vote_average"])
	m.Rating = rawFloat(fields["rating"])
	m.VoteCount = rawInt(fields["vote_count"])
	m.Votes = rawInt(fields["voteCount"])
	m.ReleaseDate = rawString(fields["release_date"])
	m.Year = rawString(fields["year"])
	m.Director = rawString(fields["director"])
	m.PosterPath = rawString(fields["poster_path"])
	if m.PosterPath == nil {
		m.PosterPath = rawString(fields["posterPath"])
	}
	m.PosterURL = rawString(fields["posterUrl"])
	m.Overview = rawString(fields["overview"])
	m.Popularity = rawFloat(fields["popularity"])

	if genres, ok := fields["genres"]; ok && !isNull(genres) {
		m.Genres = append(json.RawMessage(nil), genres...)
	}
	return nil
}

// MarshalJSON writes the record back using the snake_case field names.
func (m MovieRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{})
	put := func(key string, val interface{}, present bool) {
		if present {
			out[key] = val
		}
	}
	put("title", deref(m.Title), m.Title != nil)
	put("vote_average", deref(m.VoteAverage), m.VoteAverage != nil)
	put("rating", deref(m.Rating), m.Rating != nil)
	put("vote_count", deref(m.VoteCount), m.VoteCount != nil)
	put("voteCount", deref(m.Votes), m.Votes != nil)
	put("release_date", deref(m.ReleaseDate), m.ReleaseDate != nil)
	put("year", deref(m.Year), m.Year != nil)
	put("director", deref(m.Director), m.Director != nil)
	put("genres", m.Genres, len(m.Genres) > 0)
	put("poster_path", deref(m.PosterPath), m.PosterPath != nil)
	put("posterUrl", deref(m.PosterURL), m.PosterURL != nil)
	put("overview", deref(m.Overview), m.Overview != nil)
	put("popularity", deref(m.Popularity), m.Popularity != nil)
	return json.Marshal(out)
}

func deref[T any](ptr *T) T {
	var zero T
	if ptr == nil {
		return zero
	}
	return *ptr
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// rawString accepts strings and renders numbers as their literal text.
func rawString(raw json.RawMessage) *string {
	if isNull(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		text := n.String()
		return &text
	}
	return nil
}

// rawFloat accepts numbers and numeric strings.
func rawFloat(raw json.RawMessage) *float64 {
	if isNull(raw) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return &parsed
		}
	}
	return nil
}

func rawInt(raw json.RawMessage) *int64 {
	f := rawFloat(raw)
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return nil
	}
	n := int64(*f)
	return &n
}
