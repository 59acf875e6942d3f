package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRangeBothAbsent(t *testing.T) {
	start, end, err := DateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestDateRangeValid(t *testing.T) {
	start, end, err := DateRange("2026-01-15", "2026-02-10")
	require.NoError(t, err)
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), *start)
	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), *end)
}

func TestDateRangeHumanReadable(t *testing.T) {
	start, end, err := DateRange("Jan 2, 2026", "February 3, 2026")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), *start)
	assert.Equal(t, time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), *end)
}

func TestDateRangeStartOnly(t *testing.T) {
	start, end, err := DateRange("2026-01-15", "")
	require.NoError(t, err)
	require.NotNil(t, start)
	assert.Nil(t, end)
}

func TestDateRangeStartAfterEnd(t *testing.T) {
	_, _, err := DateRange("2026-02-10", "2026-01-15")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDateRangeSpanBoundary(t *testing.T) {
	// Exactly 90 days is allowed, 91 is not.
	_, _, err := DateRange("2026-01-01", "2026-04-01")
	assert.NoError(t, err)

	_, _, err = DateRange("2026-01-01", "2026-04-02")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDateRangeUnparsable(t *testing.T) {
	_, _, err := DateRange("not a date", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = DateRange("", "not a date either")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestURLValid(t *testing.T) {
	canonical, err := URL("https://example.com/a?b=1#c")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a?b=1#c", canonical)
}

func TestURLNoTrailingSlashAdded(t *testing.T) {
	canonical, err := URL("https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", canonical)
}

func TestURLPathCasePreserved(t *testing.T) {
	canonical, err := URL("https://example.com/Some/Path")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/Some/Path", canonical)
}

func TestURLEscapedPathPreserved(t *testing.T) {
	// A percent-encoded segment must survive canonicalization unchanged, or
	// the reconstructed URL no longer matches the record stored upstream.
	canonical, err := URL("https://example.com/a%2Fb/c?d=1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a%2Fb/c?d=1", canonical)
}

func TestParseTagListAllEmptyTokensYieldsNil(t *testing.T) {
	// All-whitespace input normalizes to the same nil as absent input.
	assert.Nil(t, ParseTagList("  ,  , "))
	assert.Nil(t, ParseTagList(","))
}

func TestURLInvalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"too short", "http://a"},
		{"no scheme", "example.com/article"},
		{"ftp scheme", "ftp://example.com"},
		{"no domain", "https:///just/a/path"},
		{"space in domain", "https://exam ple.com/a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := URL(tc.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestParseTagList(t *testing.T) {
	assert.Equal(t, []string{"foo", "bar", "baz"}, ParseTagList("Foo, bar ,, BAZ"))
	assert.Nil(t, ParseTagList(""))
	assert.Nil(t, ParseTagList("  ,  , "))
}

func TestParseTagListIdempotent(t *testing.T) {
	first := ParseTagList("Foo, bar ,, BAZ")
	second := ParseTagList(strings.Join(first, ","))
	assert.Equal(t, first, second)
}

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "golang", NormalizeTag("  GoLang "))
	assert.Equal(t, "", NormalizeTag("   "))
}
