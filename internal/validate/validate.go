package validate

import (
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"github.com/cockroachdb/errors"
)

// ErrInvalidInput marks argument validation failures. Handlers and tests
// detect it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

const (
	// MaxRangeDays is the widest date window accepted by bookmark listing.
	MaxRangeDays = 90

	minURLLength = 10
)

// DateRange parses an optional start/end pair into calendar dates.
// Inputs accept common human-readable formats, not only YYYY-MM-DD.
// Both absent means "no filter" and yields (nil, nil, nil).
func DateRange(startRaw, endRaw string) (*time.Time, *time.Time, error) {
	start, err := parseDate(startRaw, "start_date")
	if err != nil {
		return nil, nil, err
	}
	end, err := parseDate(endRaw, "end_date")
	if err != nil {
		return nil, nil, err
	}

	if start != nil && end != nil {
		if start.After(*end) {
			return nil, nil, errors.WithMessage(ErrInvalidInput, "start_date must be before end_date")
		}
		if days := int(end.Sub(*start) / (24 * time.Hour)); days > MaxRangeDays {
			return nil, nil, errors.WithMessagef(ErrInvalidInput, "date range cannot exceed %d days, got %d days", MaxRangeDays, days)
		}
	}
	return start, end, nil
}

func parseDate(raw, field string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return nil, errors.WithMessagef(ErrInvalidInput, "invalid %s %q", field, raw)
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day, nil
}

// URL checks that raw is a well-formed http(s) URL and returns its canonical
// reconstruction: scheme://host + path + query + fragment. No trailing slash
// is added and the path keeps its original case.
func URL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.WithMessage(ErrInvalidInput, "url is required")
	}
	if len(raw) < minURLLength {
		return "", errors.WithMessagef(ErrInvalidInput, "url %q is too short", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.WithMessagef(ErrInvalidInput, "url %q is malformed", raw)
	}
	if u.Scheme == "" {
		return "", errors.WithMessagef(ErrInvalidInput, "url %q has no scheme", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.WithMessagef(ErrInvalidInput, "url scheme %q is not supported, use http or https", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.WithMessagef(ErrInvalidInput, "url %q has no domain", raw)
	}
	for _, r := range u.Host {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", errors.WithMessage(ErrInvalidInput, "url domain contains whitespace or control characters")
		}
	}

	canonical := u.Scheme + "://" + u.Host + u.EscapedPath()
	if u.RawQuery != "" {
		canonical += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		canonical += "#" + u.Fragment
	}
	return canonical, nil
}

// ParseTagList splits a comma-separated tag string into normalized tokens.
// Whitespace is trimmed, empty tokens dropped, everything lower-cased.
// Idempotent: feeding the joined output back in yields the same sequence.
func ParseTagList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		tag := NormalizeTag(part)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// NormalizeTag canonicalizes a single tag token.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
