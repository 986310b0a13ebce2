package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movie-sentiment/internal/domain"
)

// MoviesRepository reads and imports dataset rows stored in PostgreSQL.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

// RecordColumns lists the dataset columns in scan order.
var RecordColumns = []string{
	"title",
	"vote_average",
	"vote_count",
	"release_date",
	"release_year",
	"director",
	"genres",
	"poster_path",
	"poster_url",
	"overview",
	"popularity",
}

// RowScanner is satisfied by pgx.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// SelectRecordsSQL builds the dataset query for table, ordered by orderBy so
// records keep their import order.
func SelectRecordsSQL(table, orderBy string) string {
	return fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`,
		strings.Join(RecordColumns, ", "),
		pgx.Identifier{table}.Sanitize(),
		orderBy)
}

// ListRecords returns every row of table in import order.
func (r *MoviesRepository) ListRecords(ctx context.Context, table string) ([]domain.MovieRecord, error) {
	rows, err := r.pool.Query(ctx, SelectRecordsSQL(table, "id"))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var results []domain.MovieRecord
	for rows.Next() {
		record, err := ScanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Count returns the number of rows in table, or ErrNotFound when it is empty.
func (r *MoviesRepository) Count(ctx context.Context, table string) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*)::int8 FROM %s`, pgx.Identifier{table}.Sanitize())
	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	if count == 0 {
		return 0, ErrNotFound
	}
	return count, nil
}

// Import bulk-copies records into table and returns the number of rows written.
func (r *MoviesRepository) Import(ctx context.Context, table string, records []domain.MovieRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	copied, err := r.pool.CopyFrom(ctx, pgx.Identifier{table}, RecordColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			return RecordRow(records[i]), nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", table, err)
	}
	return copied, nil
}

// ScanRecord reads one row laid out as RecordColumns.
func ScanRecord(row RowScanner) (domain.MovieRecord, error) {
	var (
		record      domain.MovieRecord
		releaseYear *int64
		genres      *string
	)

	err := row.Scan(
		&record.Title,
		&record.VoteAverage,
		&record.VoteCount,
		&record.ReleaseDate,
		&releaseYear,
		&record.Director,
		&genres,
		&record.PosterPath,
		&record.PosterURL,
		&record.Overview,
		&record.Popularity,
	)
	if err != nil {
		return domain.MovieRecord{}, fmt.Errorf("scan movie record: %w", err)
	}

	if releaseYear != nil {
		year := strconv.FormatInt(*releaseYear, 10)
		record.Year = &year
	}
	if genres != nil {
		encoded, err := genresFromText(*genres)
		if err != nil {
			return domain.MovieRecord{}, err
		}
		record.Genres = encoded
	}
	return record, nil
}

// genresFromText restores a stored genres column. Text holding a JSON list is
// returned as that list; anything else (such as single-quoted Kaggle text) is
// wrapped as a JSON string, matching how dataset files carry it.
func genresFromText(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}
	encoded, err := json.Marshal(text)
	if err != nil {
		return nil, err
	}
	return encoded, nil
}

// RecordRow flattens a record into column values laid out as RecordColumns.
func RecordRow(record domain.MovieRecord) []any {
	var rating *float64
	if value, ok := record.RatingValue(); ok {
		rating = &value
	}
	var votes *int64
	if value, ok := record.VoteCountValue(); ok {
		votes = &value
	}
	var year *int64
	if record.Year != nil {
		if parsed, err := strconv.ParseInt(strings.TrimSpace(*record.Year), 10, 64); err == nil {
			year = &parsed
		}
	}
	var genres *string
	if len(record.Genres) > 0 {
		text := string(record.Genres)
		var decoded string
		if err := json.Unmarshal(record.Genres, &decoded); err == nil {
			text = decoded
		}
		genres = &text
	}

	return []any{
		record.Title,
		rating,
		votes,
		record.ReleaseDate,
		year,
		record.Director,
		genres,
		record.PosterPath,
		record.PosterURL,
		record.Overview,
		record.Popularity,
	}
}
