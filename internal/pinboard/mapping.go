package pinboard

import (
	"net/url"
	"strings"
)

// Pinboard's posts/add parameters and the tool-level fields they carry.
// Title and description swap names on the wire, private inverts into
// "shared", and both booleans travel as "yes"/"no" strings.
const (
	paramURL      = "url"
	paramTitle    = "description"
	paramExtended = "extended"
	paramTags     = "tags"
	paramShared   = "shared"
	paramToRead   = "toread"
	paramReplace  = "replace"
)

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func isYes(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "yes")
}

func joinTags(tags []string) string {
	return strings.Join(tags, " ")
}

func splitTags(raw string) []string {
	return strings.Fields(raw)
}

// BookmarkFromPost translates a wire record into the tool-level shape.
func BookmarkFromPost(p Post) Bookmark {
	return Bookmark{
		URL:         p.Href,
		Title:       p.Description,
		Description: p.Extended,
		Tags:        splitTags(p.Tags),
		Time:        p.Time,
		Private:     !isYes(p.Shared),
		ToRead:      isYes(p.ToRead),
	}
}

// PostFromBookmark is the inverse of BookmarkFromPost. The record's
// server-assigned fields (time, hash, meta) stay whatever the input carried.
func PostFromBookmark(b Bookmark) Post {
	return Post{
		Href:        b.URL,
		Description: b.Title,
		Extended:    b.Description,
		Tags:        joinTags(b.Tags),
		Time:        b.Time,
		Shared:      yesNo(!b.Private),
		ToRead:      yesNo(b.ToRead),
	}
}

// saveParams encodes a bookmark as posts/add query parameters.
func saveParams(b Bookmark, replace bool) url.Values {
	params := url.Values{}
	params.Set(paramURL, b.URL)
	params.Set(paramTitle, b.Title)
	params.Set(paramExtended, b.Description)
	params.Set(paramTags, joinTags(b.Tags))
	params.Set(paramShared, yesNo(!b.Private))
	params.Set(paramToRead, yesNo(b.ToRead))
	params.Set(paramReplace, yesNo(replace))
	return params
}
