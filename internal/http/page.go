package httpserver

import (
	"bytes"
	"embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-sentiment/internal/dataset"
	"github.com/Clark-Hu/movie-sentiment/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"percent":    func(score float64) string { return fmt.Sprintf("%.0f", score*100) },
	"oneDecimal": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"formatTime": func(t time.Time) string { return t.Format("Jan 2, 2006, 03:04 PM") },
}).ParseFS(templateFS, "templates/index.html"))

var suggestedTitles = []string{"Inception", "Parasite", "Interstellar", "The Dark Knight"}

const (
	recentCookieName = "recent_searches"
	maxRecent        = 5
)

// readRecent returns the visitor's recent searches, newest first. A missing
// or unreadable cookie yields the default suggestions.
func readRecent(r *http.Request) []string {
	defaults := slices.Clone(suggestedTitles)
	cookie, err := r.Cookie(recentCookieName)
	if err != nil {
		return defaults
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return defaults
	}
	var recent []string
	if err := json.Unmarshal(raw, &recent); err != nil {
		return defaults
	}
	if len(recent) > maxRecent {
		recent = recent[:maxRecent]
	}
	return recent
}

// pushRecent puts title at the front unless it is already listed, keeping at
// most maxRecent entries.
func pushRecent(recent []string, title string) []string {
	if slices.Contains(recent, title) {
		return recent
	}
	recent = append([]string{title}, recent...)
	if len(recent) > maxRecent {
		recent = recent[:maxRecent]
	}
	return recent
}

func writeRecent(w http.ResponseWriter, recent []string) error {
	raw, err := json.Marshal(recent)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     recentCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

type pageData struct {
	Query    string
	Error    string
	Analysis *domain.MovieAnalysis
	Stats    dataset.Stats
	Recent   []string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Stats:  s.dataset.Stats(),
		Recent: readRecent(r),
	}
	status := http.StatusOK

	if r.URL.Query().Has("title") {
		data.Query = r.URL.Query().Get("title")
		title, msg := validateTitle(data.Query)
		if msg != "" {
			data.Error = msg
			status = http.StatusUnprocessableEntity
		} else {
			analysis := s.analyzer.Resolve(title)
			data.Analysis = &analysis
			data.Recent = pushRecent(data.Recent, title)
			if err := writeRecent(w, data.Recent); err != nil {
				s.logger.Warn("store recent searches", zap.Error(err))
			}
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
