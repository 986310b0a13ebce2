package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(t *testing.T, raw string) []string {
	t.Helper()
	records, err := Normalize([]byte(raw))
	require.NoError(t, err)
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.TitleOrEmpty())
	}
	return out
}

func TestNormalizeShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"bare array", `[{"title":"A"},{"title":"B"}]`, []string{"A", "B"}},
		{"data envelope", `{"data":[{"title":"A"}]}`, []string{"A"}},
		{"results envelope", `{"results":[{"title":"R"}]}`, []string{"R"}},
		{"movies envelope", `{"movies":[{"title":"M"}]}`, []string{"M"}},
		{"data wins over results", `{"results":[{"title":"R"}],"data":[{"title":"D"}]}`, []string{"D"}},
		{"non array data skipped", `{"data":{"title":"X"},"results":[{"title":"R"}]}`, []string{"R"}},
		{"results wins over movies", `{"movies":[{"title":"M"}],"results":[{"title":"R"}]}`, []string{"R"}},
		{"unknown envelope", `{"items":[{"title":"I"}]}`, []string{}},
		{"scalar document", `42`, []string{}},
		{"string document", `"movies"`, []string{}},
		{"empty array", `[]`, []string{}},
		{"non object entries", `[1,"x",{"title":"A"}]`, []string{"", "", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(t, tt.raw))
		})
	}
}

func TestNormalizeNullIsMalformed(t *testing.T) {
	_, err := Normalize([]byte(" null "))
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("Normalize(null) error = %v, want ErrMalformedPayload", err)
	}
}

func TestNormalizeInvalidJSON(t *testing.T) {
	_, err := Normalize([]byte(`{"data":[`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedPayload), "invalid JSON is a fetch failure, not malformed")

	_, err = Normalize(nil)
	require.Error(t, err)
}

func FuzzNormalize(f *testing.F) {
	seeds := []string{
		`[{"title":"Inception","vote_average":8.3}]`,
		`{"data":[{"title":"A","genres":"[{'name':'Action'}]"}]}`,
		`{"results":null}`,
		`null`,
		``,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		records, err := Normalize([]byte(raw))
		if err == nil && records == nil {
			t.Fatalf("Normalize(%q) returned nil records without error", raw)
		}
	})
}
