package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/Clark-Hu/movie-sentiment/internal/domain"
	"github.com/Clark-Hu/movie-sentiment/internal/repository"
	"github.com/Clark-Hu/movie-sentiment/internal/store"
)

// PostgresSource reads dataset rows from a PostgreSQL table. The pool only
// lives for the duration of Fetch.
type PostgresSource struct {
	name  string
	dbURL string
	table string
	opts  store.Options
}

// NewPostgresSource returns a source reading table from dbURL.
func NewPostgresSource(name, dbURL, table string, opts store.Options) (*PostgresSource, error) {
	if dbURL == "" {
		return nil, errors.New("postgres source requires a url")
	}
	if table == "" {
		return nil, errors.New("postgres source requires a table")
	}
	return &PostgresSource{name: name, dbURL: dbURL, table: table, opts: opts}, nil
}

// Name returns the source name.
func (s *PostgresSource) Name() string { return s.name }

// Fetch connects, reads every row and disconnects.
func (s *PostgresSource) Fetch(ctx context.Context) ([]domain.MovieRecord, error) {
	st, err := store.New(ctx, s.dbURL, s.opts)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	return repository.New(st).Movies.ListRecords(ctx, s.table)
}

// SQLiteSource reads dataset rows from a SQLite database file.
type SQLiteSource struct {
	name  string
	path  string
	table string
}

// NewSQLiteSource returns a source for a sqlite:// location or bare path.
func NewSQLiteSource(name, location, table string) (*SQLiteSource, error) {
	path := strings.TrimPrefix(location, "sqlite://")
	if path == "" {
		return nil, errors.New("sqlite source requires a path")
	}
	if table == "" {
		return nil, errors.New("sqlite source requires a table")
	}
	return &SQLiteSource{name: name, path: path, table: table}, nil
}

// Name returns the source name.
func (s *SQLiteSource) Name() string { return s.name }

// Fetch opens the database read-only and reads every row in rowid order.
func (s *SQLiteSource) Fetch(ctx context.Context) ([]domain.MovieRecord, error) {
	db, err := sql.Open("sqlite", "file:"+s.path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", s.path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, repository.SelectRecordsSQL(s.table, "rowid"))
	if err != nil {
		return nil, fmt.Errorf("query sqlite %s: %w", s.path, err)
	}
	defer rows.Close()

	var records []domain.MovieRecord
	for rows.Next() {
		record, err := repository.ScanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
