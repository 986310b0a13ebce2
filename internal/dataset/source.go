package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-sentiment/internal/domain"
)

const maxPayloadBytes = 64 << 20 // 64 MiB

// Source is one declared origin of movie records.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.MovieRecord, error)
}

// FileSource reads a JSON dataset from the local filesystem.
type FileSource struct {
	name string
	path string
}

// NewFileSource returns a FileSource for path. A file:// prefix is accepted.
// The file is not opened until Fetch so a missing file is a fetch failure.
func NewFileSource(name, path string) (*FileSource, error) {
	if name == "" {
		return nil, errors.New("file source requires a name")
	}
	path = strings.TrimPrefix(path, "file://")
	if path == "" {
		return nil, errors.New("file source requires a path")
	}
	return &FileSource{name: name, path: path}, nil
}

// Name returns the source name.
func (s *FileSource) Name() string { return s.name }

// Fetch reads and normalizes the file.
func (s *FileSource) Fetch(ctx context.Context) ([]domain.MovieRecord, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file %s: %w", s.path, err)
	}
	return Normalize(raw)
}

// HTTPSource fetches a JSON dataset with a single GET request.
type HTTPSource struct {
	name     string
	endpoint *url.URL
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPSource constructs an HTTP-backed source.
func NewHTTPSource(name, rawURL string, timeout time.Duration, logger *zap.Logger) (*HTTPSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse dataset url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("dataset url %q must be http or https", rawURL)
	}
	return &HTTPSource{
		name:     name,
		endpoint: parsed,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

// Name returns the source name.
func (s *HTTPSource) Name() string { return s.name }

// Fetch retrieves and normalizes the dataset document.
func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.MovieRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Debug("dataset: unexpected status",
			zap.String("source", s.name),
			zap.String("url", s.endpoint.Redacted()),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("dataset: %s returned %d", s.endpoint.Redacted(), resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("read dataset response: %w", err)
	}
	return Normalize(raw)
}
