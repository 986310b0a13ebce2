package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source kinds understood by the dataset loader.
const (
	SourceKindHTTP     = "http"
	SourceKindFile     = "file"
	SourceKindPostgres = "postgres"
	SourceKindSQLite   = "sqlite"
)

const defaultDatasetSource = "assets/data/movies.json"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SourceSpec declares one dataset source.
type SourceSpec struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Location string `yaml:"location"`
}

// Config captures all runtime configuration derived from environment variables.
type Config struct {
	Port               string
	ReadTimeoutSecs    int
	WriteTimeoutSecs   int
	IdleTimeoutSecs    int
	LogLevel           string
	LogDevelopment     bool
	DatasetSources     []SourceSpec
	DatasetTimeoutSecs int
	DatasetTable       string
	DBMaxConns         int
	DBMinConns         int
	DBMaxIdleSecs      int
	DBMaxLifeSecs      int
	DBConnTimeoutSecs  int
	DBStatementCache   int
	DemoSeed           int64
}

// Load reads configuration from environment variables, applying defaults and validation.
// A .env file in the working directory, when present, seeds variables that are not already set.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		ReadTimeoutSecs:    getEnvInt("SERVER_READ_TIMEOUT", 15),
		WriteTimeoutSecs:   getEnvInt("SERVER_WRITE_TIMEOUT", 15),
		IdleTimeoutSecs:    getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogDevelopment:     getEnvBool("LOG_DEVELOPMENT", false),
		DatasetTimeoutSecs: getEnvInt("DATASET_FETCH_TIMEOUT_SECS", 10),
		DatasetTable:       getEnv("DATASET_TABLE", "movies"),
		DBMaxConns:         getEnvInt("DB_MAX_CONNS", 4),
		DBMinConns:         getEnvInt("DB_MIN_CONNS", 0),
		DBMaxIdleSecs:      getEnvInt("DB_MAX_CONN_IDLE_SECS", 300),
		DBMaxLifeSecs:      getEnvInt("DB_MAX_CONN_LIFETIME_SECS", 3600),
		DBConnTimeoutSecs:  getEnvInt("DB_CONN_TIMEOUT_SECS", 10),
		DBStatementCache:   getEnvInt("DB_STATEMENT_CACHE_CAPACITY", 256),
	}

	seed, err := strconv.ParseInt(getEnv("DEMO_SEED", "0"), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("DEMO_SEED must be an integer: %w", err)
	}
	cfg.DemoSeed = seed

	if path := os.Getenv("DATASET_SOURCES_FILE"); path != "" {
		specs, err := LoadSourcesFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("DATASET_SOURCES_FILE: %w", err)
		}
		cfg.DatasetSources = specs
	} else {
		cfg.DatasetSources = ParseSourceList(getEnv("DATASET_SOURCES", defaultDatasetSource))
	}

	if cfg.ReadTimeoutSecs <= 0 || cfg.WriteTimeoutSecs <= 0 || cfg.IdleTimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("SERVER_*_TIMEOUT values must be positive")
	}
	if len(cfg.DatasetSources) == 0 {
		return Config{}, fmt.Errorf("DATASET_SOURCES requires at least one source")
	}
	for _, spec := range cfg.DatasetSources {
		if err := spec.Validate(); err != nil {
			return Config{}, fmt.Errorf("DATASET_SOURCES: %w", err)
		}
	}
	if cfg.DatasetTimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("DATASET_FETCH_TIMEOUT_SECS must be positive")
	}
	if !identifierPattern.MatchString(cfg.DatasetTable) {
		return Config{}, fmt.Errorf("DATASET_TABLE must be a plain SQL identifier")
	}
	if cfg.DBMaxConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if cfg.DBMinConns < 0 {
		return Config{}, fmt.Errorf("DB_MIN_CONNS must be non-negative")
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return Config{}, fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	if cfg.DBStatementCache < 0 {
		return Config{}, fmt.Errorf("DB_STATEMENT_CACHE_CAPACITY must be non-negative")
	}

	return cfg, nil
}

// ParseSourceList splits a comma separated list of locations into source specs,
// inferring each kind from the location scheme.
func ParseSourceList(raw string) []SourceSpec {
	var specs []SourceSpec
	for _, part := range strings.Split(raw, ",") {
		location := strings.TrimSpace(part)
		if location == "" {
			continue
		}
		specs = append(specs, SourceSpec{
			Name:     fmt.Sprintf("source-%d", len(specs)+1),
			Kind:     InferKind(location),
			Location: location,
		})
	}
	return specs
}

// LoadSourcesFile reads source declarations from a YAML document of the form
//
//	sources:
//	  - name: bundled
//	    location: assets/data/movies.json
func LoadSourcesFile(path string) ([]SourceSpec, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Sources []SourceSpec `yaml:"sources"`
	}
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i := range doc.Sources {
		spec := &doc.Sources[i]
		spec.Location = strings.TrimSpace(spec.Location)
		if spec.Kind == "" {
			spec.Kind = InferKind(spec.Location)
		}
		if spec.Name == "" {
			spec.Name = fmt.Sprintf("source-%d", i+1)
		}
	}
	return doc.Sources, nil
}

// InferKind maps a location to a source kind by its scheme. Bare paths are files.
func InferKind(location string) string {
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return SourceKindHTTP
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return SourceKindPostgres
	case strings.HasPrefix(lower, "sqlite://"):
		return SourceKindSQLite
	default:
		return SourceKindFile
	}
}

// Validate reports declarations the loader cannot build a source from.
func (s SourceSpec) Validate() error {
	if s.Location == "" {
		return fmt.Errorf("source %q has no location", s.Name)
	}
	switch s.Kind {
	case SourceKindHTTP, SourceKindFile, SourceKindPostgres, SourceKindSQLite:
		return nil
	default:
		return fmt.Errorf("source %q has unknown kind %q", s.Name, s.Kind)
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}
