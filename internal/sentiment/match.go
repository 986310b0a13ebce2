package sentiment

import (
	"strings"

	"github.com/Clark-Hu/movie-sentiment/internal/domain"
)

// Match returns the first record matching term under the cascade: exact
// title, title containing term, term containing the title's first four
// characters, then (for terms longer than three characters) a title sharing
// the term's first three characters. term must already be trimmed and
// lower-cased. Records without a title never match.
func Match(records []domain.MovieRecord, term string) (domain.MovieRecord, bool) {
	titles := make([]string, len(records))
	for i, r := range records {
		titles[i] = strings.ToLower(r.TitleOrEmpty())
	}

	find := func(pred func(title string) bool) (domain.MovieRecord, bool) {
		for i, title := range titles {
			if title != "" && pred(title) {
				return records[i], true
			}
		}
		return domain.MovieRecord{}, false
	}

	if m, ok := find(func(title string) bool { return title == term }); ok {
		return m, true
	}
	if m, ok := find(func(title string) bool { return strings.Contains(title, term) }); ok {
		return m, true
	}
	if m, ok := find(func(title string) bool { return strings.Contains(term, runePrefix(title, 4)) }); ok {
		return m, true
	}
	if len([]rune(term)) > 3 {
		prefix := runePrefix(term, 3)
		if m, ok := find(func(title string) bool { return strings.HasPrefix(title, prefix) }); ok {
			return m, true
		}
	}
	return domain.MovieRecord{}, false
}

// runePrefix returns at most n leading characters of s.
func runePrefix(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
