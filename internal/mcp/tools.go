package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/akrisanov/pinboard-mcp/internal/format"
	"github.com/akrisanov/pinboard-mcp/internal/pinboard"
	"github.com/akrisanov/pinboard-mcp/internal/validate"
)

const (
	defaultListLimit = 200
	maxListLimit     = 500
)

func decodeArgs(args json.RawMessage, v any) error {
	if err := json.Unmarshal(args, v); err != nil {
		return errors.WithMessage(validate.ErrInvalidInput, "invalid arguments")
	}
	return nil
}

func (s *Server) handleListBookmarks(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Tags      string `json:"tags"`
		Limit     *int   `json:"limit"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	limit := defaultListLimit
	if in.Limit != nil {
		limit = *in.Limit
	}
	if limit < 1 || limit > maxListLimit {
		return nil, errors.WithMessagef(validate.ErrInvalidInput, "limit must be between 1 and %d", maxListLimit)
	}

	start, end, err := validate.DateRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	tags := validate.ParseTagList(in.Tags)

	posts, err := s.client.ListBookmarks(ctx, pinboard.ListOptions{
		Limit: limit,
		Tags:  tags,
		From:  start,
		To:    end,
	})
	if err != nil {
		return nil, err
	}

	bookmarks := make([]format.BookmarkView, 0, len(posts))
	for _, p := range posts {
		bookmarks = append(bookmarks, format.Post(p))
	}

	// Echo the effective filters so the caller can confirm what was queried.
	filters := map[string]any{"limit": limit}
	if start != nil || end != nil {
		dateRange := map[string]any{"start": nil, "end": nil}
		if start != nil {
			dateRange["start"] = start.Format("2006-01-02")
		}
		if end != nil {
			dateRange["end"] = end.Format("2006-01-02")
		}
		filters["date_range"] = dateRange
	}
	if len(tags) > 0 {
		filters["tags"] = strings.Join(tags, ",")
	}

	return map[string]any{
		"count":           len(bookmarks),
		"bookmarks":       bookmarks,
		"filters_applied": filters,
		"success":         true,
	}, nil
}

func (s *Server) handleListTags(ctx context.Context, _ json.RawMessage) (any, error) {
	counts, err := s.client.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	tags := format.Tags(counts)
	return map[string]any{
		"count":   len(tags),
		"tags":    tags,
		"success": true,
	}, nil
}

func (s *Server) handleAddBookmark(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		URL         string `json:"url"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Tags        string `json:"tags"`
		Private     bool   `json:"private"`
		ToRead      bool   `json:"toread"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	canonical, err := validate.URL(in.URL)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.WithMessage(validate.ErrInvalidInput, "title is required")
	}

	b := pinboard.Bookmark{
		URL:         canonical,
		Title:       title,
		Description: in.Description,
		Tags:        validate.ParseTagList(in.Tags),
		Private:     in.Private,
		ToRead:      in.ToRead,
	}
	if err := s.client.CreateBookmark(ctx, b); err != nil {
		return nil, err
	}

	// Creation responses carry no richer confirmation upstream, so echo the
	// bookmark as submitted rather than re-fetching it.
	return map[string]any{
		"bookmark": format.Bookmark(b),
		"message":  "bookmark added",
		"success":  true,
	}, nil
}

func (s *Server) handleUpdateBookmark(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		URL         string  `json:"url"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Tags        *string `json:"tags"`
		Private     *bool   `json:"private"`
		ToRead      *bool   `json:"toread"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	canonical, err := validate.URL(in.URL)
	if err != nil {
		return nil, err
	}
	if in.Title == nil && in.Description == nil && in.Tags == nil && in.Private == nil && in.ToRead == nil {
		return nil, errors.WithMessage(validate.ErrInvalidInput, "no fields to update")
	}

	post, err := s.client.FindBookmarkByURL(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.WithMessagef(pinboard.ErrNotFound, "no bookmark found for url %s", canonical)
	}

	current := pinboard.BookmarkFromPost(*post)
	updates := make([]string, 0, 5)

	if in.Title != nil {
		updates = append(updates, fmt.Sprintf("title: %q -> %q", current.Title, *in.Title))
		current.Title = *in.Title
	}
	if in.Description != nil {
		updates = append(updates, fmt.Sprintf("description: %q -> %q", current.Description, *in.Description))
		current.Description = *in.Description
	}
	if in.Tags != nil {
		newTags := validate.ParseTagList(*in.Tags)
		updates = append(updates, fmt.Sprintf("tags: %q -> %q", strings.Join(current.Tags, ","), strings.Join(newTags, ",")))
		current.Tags = newTags
	}
	if in.Private != nil {
		updates = append(updates, fmt.Sprintf("private: %t -> %t", current.Private, *in.Private))
		current.Private = *in.Private
	}
	if in.ToRead != nil {
		updates = append(updates, fmt.Sprintf("toread: %t -> %t", current.ToRead, *in.ToRead))
		current.ToRead = *in.ToRead
	}

	if err := s.client.SaveBookmark(ctx, current); err != nil {
		return nil, err
	}

	return map[string]any{
		"bookmark":        format.Bookmark(current),
		"updates_applied": updates,
		"success":         true,
	}, nil
}

func (s *Server) handleDeleteBookmark(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		URL string `json:"url"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	canonical, err := validate.URL(in.URL)
	if err != nil {
		return nil, err
	}
	if err := s.client.DeleteBookmark(ctx, canonical); err != nil {
		return nil, err
	}

	return map[string]any{
		"url":     canonical,
		"message": "bookmark deleted",
		"success": true,
	}, nil
}
