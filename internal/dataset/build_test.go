package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-sentiment/internal/config"
)

func TestSourcesFromConfig(t *testing.T) {
	cfg := config.Config{
		DatasetTimeoutSecs: 5,
		DatasetTable:       "movies",
		DBMaxConns:         2,
		DatasetSources: []config.SourceSpec{
			{Name: "bundled", Kind: config.SourceKindFile, Location: "assets/data/movies.json"},
			{Name: "cdn", Kind: config.SourceKindHTTP, Location: "https://cdn.example.com/movies.json"},
			{Name: "warehouse", Kind: config.SourceKindPostgres, Location: "postgres://reader@db/movies"},
			{Name: "local", Kind: config.SourceKindSQLite, Location: "sqlite:///var/lib/movies.db"},
		},
	}

	sources, err := SourcesFromConfig(cfg, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, sources, 4)

	assert.IsType(t, &FileSource{}, sources[0])
	assert.IsType(t, &HTTPSource{}, sources[1])
	assert.IsType(t, &PostgresSource{}, sources[2])
	assert.IsType(t, &SQLiteSource{}, sources[3])
	for i, want := range []string{"bundled", "cdn", "warehouse", "local"} {
		assert.Equal(t, want, sources[i].Name())
	}
	assert.Equal(t, "/var/lib/movies.db", sources[3].(*SQLiteSource).path)
}

func TestSourcesFromConfigUnknownKind(t *testing.T) {
	cfg := config.Config{
		DatasetTimeoutSecs: 5,
		DatasetSources:     []config.SourceSpec{{Name: "odd", Kind: "ftp", Location: "ftp://x"}},
	}
	_, err := SourcesFromConfig(cfg, nil)
	assert.ErrorContains(t, err, "odd")
}
