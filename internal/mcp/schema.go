package mcp

import "encoding/json"

func mustSchema(schema map[string]any) json.RawMessage {
	raw, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	return raw
}

func listBookmarksSchema() json.RawMessage {
	return mustSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"start_date": map[string]any{"type": "string", "description": "Start of the date range, e.g. 2026-01-15. At most 90 days before end_date."},
			"end_date":   map[string]any{"type": "string", "description": "End of the date range."},
			"tags":       map[string]any{"type": "string", "description": "Comma-separated tags to filter by."},
			"limit":      map[string]any{"type": "integer", "description": "Maximum bookmarks to return, 1-500. Default 200."},
		},
	})
}

func listTagsSchema() json.RawMessage {
	return mustSchema(map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	})
}

func addBookmarkSchema() json.RawMessage {
	return mustSchema(map[string]any{
		"type":     "object",
		"required": []string{"url", "title"},
		"properties": map[string]any{
			"url":         map[string]any{"type": "string", "description": "Bookmark URL, http or https."},
			"title":       map[string]any{"type": "string", "description": "Bookmark title."},
			"description": map[string]any{"type": "string", "description": "Extended notes."},
			"tags":        map[string]any{"type": "string", "description": "Comma-separated tags."},
			"private":     map[string]any{"type": "boolean", "description": "Keep the bookmark private. Default false."},
			"toread":      map[string]any{"type": "boolean", "description": "Mark as unread. Default false."},
		},
	})
}

func updateBookmarkSchema() json.RawMessage {
	return mustSchema(map[string]any{
		"type":     "object",
		"required": []string{"url"},
		"properties": map[string]any{
			"url":         map[string]any{"type": "string", "description": "URL of the bookmark to update."},
			"title":       map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"tags":        map[string]any{"type": "string", "description": "Comma-separated tags, replaces the existing set."},
			"private":     map[string]any{"type": "boolean"},
			"toread":      map[string]any{"type": "boolean"},
		},
	})
}

func deleteBookmarkSchema() json.RawMessage {
	return mustSchema(map[string]any{
		"type":     "object",
		"required": []string{"url"},
		"properties": map[string]any{
			"url": map[string]any{"type": "string", "description": "URL of the bookmark to delete."},
		},
	})
}
