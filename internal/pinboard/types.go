package pinboard

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ErrNotFound reports a lookup URL with no matching bookmark.
var ErrNotFound = errors.New("bookmark not found")

// Post is a raw bookmark record in Pinboard's wire shape. Field semantics
// follow the upstream API: Description is the bookmark title, Extended the
// free-form notes, Shared/ToRead are "yes"/"no" strings and Tags is
// space-separated.
type Post struct {
	Href        string `json:"href"`
	Description string `json:"description"`
	Extended    string `json:"extended"`
	Meta        string `json:"meta"`
	Hash        string `json:"hash"`
	Time        string `json:"time"`
	Shared      string `json:"shared"`
	ToRead      string `json:"toread"`
	Tags        string `json:"tags"`
}

// Bookmark is the tool-level record handlers work with. The mapping between
// Bookmark and Post is the single place upstream naming leaks in.
type Bookmark struct {
	URL         string
	Title       string
	Description string
	Tags        []string
	Time        string
	Private     bool
	ToRead      bool
}

// ListOptions filters a bookmark listing. Zero-value fields are omitted from
// the upstream query entirely; an empty tag filter means "no constraint", not
// "match nothing".
type ListOptions struct {
	Limit int
	Tags  []string
	From  *time.Time
	To    *time.Time
}

type postsResponse struct {
	Posts []Post `json:"posts"`
}

type resultResponse struct {
	ResultCode string `json:"result_code"`
}

type updateResponse struct {
	UpdateTime string `json:"update_time"`
}

// APIError reports an upstream call that failed at the HTTP level or returned
// a non-success result code.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return "pinboard request failed"
}
