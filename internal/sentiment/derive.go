package sentiment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Clark-Hu/movie-sentiment/internal/domain"
)

const (
	posterImageBase  = "https://image.tmdb.org/t/p/w500"
	placeholderImage = "https://via.placeholder.com/300x450"
	defaultGenre     = "Various"
)

var votePrinter = message.NewPrinter(language.English)

// Classify maps a 0-10 rating onto a sentiment label.
func Classify(rating float64) domain.SentimentType {
	switch {
	case rating >= 7:
		return domain.SentimentPositive
	case rating >= 5:
		return domain.SentimentNeutral
	default:
		return domain.SentimentNegative
	}
}

// ClampScore bounds a found record's score to [0.1, 0.95].
func ClampScore(score float64) float64 {
	return math.Min(math.Max(score, 0.1), 0.95)
}

// ParseGenres renders a genres field as a comma separated list. It accepts a
// list of {name} objects or a JSON string encoding one, single quotes
// included. Anything else yields "Various".
func ParseGenres(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return defaultGenre
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		raw = json.RawMessage(strings.ReplaceAll(encoded, "'", `"`))
	}

	var entries []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return defaultGenre
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name != "" {
			names = append(names, e.Name)
		}
	}
	if len(names) == 0 {
		return defaultGenre
	}
	return strings.Join(names, ", ")
}

// Summary renders the reception sentence for a dataset match.
func Summary(title string, rating float64, votes int64) string {
	rounded := fmt.Sprintf("%.1f", rating)
	grouped := votePrinter.Sprintf("%d", votes)
	switch {
	case rating >= 8.0:
		return fmt.Sprintf(`"%s" is highly acclaimed with %s/10 rating from %s votes. Critics and audiences love it!`, title, rounded, grouped)
	case rating >= 6.0:
		return fmt.Sprintf(`"%s" has generally positive reviews (%s/10). %s viewers rated it above average.`, title, rounded, grouped)
	default:
		return fmt.Sprintf(`"%s" has mixed to negative reviews (%s/10). Reception is divided among %s voters.`, title, rounded, grouped)
	}
}

// DemoSummary renders the disclaimer for synthesized results.
func DemoSummary(title string) string {
	return fmt.Sprintf(`Demo analysis for "%s". In production, this would show real ratings from thousands of viewers.`, title)
}

// PosterURL prefers a partial image path, then a full URL, then a placeholder.
func PosterURL(record domain.MovieRecord, title string) string {
	if record.PosterPath != nil && *record.PosterPath != "" {
		return posterImageBase + *record.PosterPath
	}
	if record.PosterURL != nil && *record.PosterURL != "" {
		return *record.PosterURL
	}
	return placeholderImage + "?text=" + escapeText(title)
}

// DemoPosterURL builds the placeholder for synthesized results from the first
// 15 characters of title.
func DemoPosterURL(title string) string {
	return placeholderImage + "/667eea/ffffff?text=" + escapeText(runePrefix(title, 15))
}

func escapeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
