// Package format shapes upstream records into the stable structures returned
// by tool handlers.
package format

import (
	"sort"
	"time"

	"github.com/akrisanov/pinboard-mcp/internal/pinboard"
)

// BookmarkView is the serialized bookmark shape in tool responses.
type BookmarkView struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Time        *string  `json:"time"`
	Private     bool     `json:"private"`
	ToRead      bool     `json:"toread"`
}

// TagCount pairs a tag with its usage count.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Bookmark renders a tool-level bookmark. Timestamp formatting is
// best-effort: an absent or malformed upstream time yields a null time field
// instead of failing the whole record.
func Bookmark(b pinboard.Bookmark) BookmarkView {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return BookmarkView{
		URL:         b.URL,
		Title:       b.Title,
		Description: b.Description,
		Tags:        tags,
		Time:        formatTime(b.Time),
		Private:     b.Private,
		ToRead:      b.ToRead,
	}
}

// Post renders a raw upstream record.
func Post(p pinboard.Post) BookmarkView {
	return Bookmark(pinboard.BookmarkFromPost(p))
}

// Tags orders tag counts deterministically: count descending, then tag name
// ascending. Upstream delivers them as an unordered map.
func Tags(counts map[string]int) []TagCount {
	out := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		out = append(out, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

func formatTime(raw string) *string {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	iso := t.UTC().Format(time.RFC3339)
	return &iso
}
