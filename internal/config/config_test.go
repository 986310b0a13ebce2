package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATASET_SOURCES", "")
	t.Setenv("DATASET_SOURCES_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %s, want 8080", cfg.Port)
	}
	if len(cfg.DatasetSources) != 1 {
		t.Fatalf("DatasetSources = %+v, want single default", cfg.DatasetSources)
	}
	if cfg.DatasetSources[0].Location != defaultDatasetSource || cfg.DatasetSources[0].Kind != SourceKindFile {
		t.Fatalf("default source = %+v", cfg.DatasetSources[0])
	}
	if cfg.DatasetTable != "movies" {
		t.Fatalf("DatasetTable = %s, want movies", cfg.DatasetTable)
	}
}

func TestLoadSuccess(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "30")
	t.Setenv("DATASET_SOURCES", " assets/a.json , https://example.com/movies.json,postgres://u:p@localhost/db ,sqlite:///tmp/movies.db")
	t.Setenv("DB_MAX_CONNS", "40")
	t.Setenv("DB_MIN_CONNS", "5")
	t.Setenv("DEMO_SEED", "42")
	t.Setenv("LOG_DEVELOPMENT", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30, cfg.ReadTimeoutSecs)
	assert.Equal(t, 40, cfg.DBMaxConns)
	assert.Equal(t, 5, cfg.DBMinConns)
	assert.Equal(t, int64(42), cfg.DemoSeed)
	assert.True(t, cfg.LogDevelopment)

	want := []SourceSpec{
		{Name: "source-1", Kind: SourceKindFile, Location: "assets/a.json"},
		{Name: "source-2", Kind: SourceKindHTTP, Location: "https://example.com/movies.json"},
		{Name: "source-3", Kind: SourceKindPostgres, Location: "postgres://u:p@localhost/db"},
		{Name: "source-4", Kind: SourceKindSQLite, Location: "sqlite:///tmp/movies.db"},
	}
	assert.Equal(t, want, cfg.DatasetSources)
}

func TestLoadSourcesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	doc := `
sources:
  - name: bundled
    location: assets/data/movies.json
  - location: https://cdn.example.com/tmdb.json
  - name: warehouse
    kind: postgres
    location: postgres://reader@db/movies
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	t.Setenv("DATASET_SOURCES_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Len(t, cfg.DatasetSources, 3)
	assert.Equal(t, SourceSpec{Name: "bundled", Kind: SourceKindFile, Location: "assets/data/movies.json"}, cfg.DatasetSources[0])
	assert.Equal(t, SourceSpec{Name: "source-2", Kind: SourceKindHTTP, Location: "https://cdn.example.com/tmdb.json"}, cfg.DatasetSources[1])
	assert.Equal(t, SourceKindPostgres, cfg.DatasetSources[2].Kind)
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr string
	}{
		{
			name: "negative fetch timeout",
			setup: func(t *testing.T) {
				t.Setenv("DATASET_FETCH_TIMEOUT_SECS", "-1")
			},
			wantErr: "DATASET_FETCH_TIMEOUT_SECS",
		},
		{
			name: "table name injection",
			setup: func(t *testing.T) {
				t.Setenv("DATASET_TABLE", "movies; DROP TABLE movies")
			},
			wantErr: "DATASET_TABLE",
		},
		{
			name: "min greater than max connections",
			setup: func(t *testing.T) {
				t.Setenv("DB_MAX_CONNS", "5")
				t.Setenv("DB_MIN_CONNS", "10")
			},
			wantErr: "DB_MIN_CONNS",
		},
		{
			name: "negative statement cache",
			setup: func(t *testing.T) {
				t.Setenv("DB_STATEMENT_CACHE_CAPACITY", "-1")
			},
			wantErr: "DB_STATEMENT_CACHE_CAPACITY",
		},
		{
			name: "non numeric seed",
			setup: func(t *testing.T) {
				t.Setenv("DEMO_SEED", "abc")
			},
			wantErr: "DEMO_SEED",
		},
		{
			name: "only separators",
			setup: func(t *testing.T) {
				t.Setenv("DATASET_SOURCES", " , ,")
			},
			wantErr: "DATASET_SOURCES",
		},
		{
			name: "missing sources file",
			setup: func(t *testing.T) {
				t.Setenv("DATASET_SOURCES_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
			},
			wantErr: "DATASET_SOURCES_FILE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load() error = %v, want contains %q", err, tt.wantErr)
			}
		})
	}
}

func TestSourceSpecValidate(t *testing.T) {
	assert.Error(t, SourceSpec{Name: "x", Kind: SourceKindFile}.Validate())
	assert.Error(t, SourceSpec{Name: "x", Kind: "ftp", Location: "ftp://host"}.Validate())
	assert.NoError(t, SourceSpec{Name: "x", Kind: SourceKindHTTP, Location: "http://host"}.Validate())
}
