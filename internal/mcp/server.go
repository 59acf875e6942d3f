// Package mcp exposes the bookmark tool surface over the Model Context
// Protocol using the official Go SDK.
package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akrisanov/pinboard-mcp/internal/config"
	"github.com/akrisanov/pinboard-mcp/internal/pinboard"
)

// BookmarkClient is the slice of the Pinboard client the tool handlers use.
// Tests substitute a double.
type BookmarkClient interface {
	ListBookmarks(ctx context.Context, opts pinboard.ListOptions) ([]pinboard.Post, error)
	ListTags(ctx context.Context) (map[string]int, error)
	FindBookmarkByURL(ctx context.Context, rawURL string) (*pinboard.Post, error)
	CreateBookmark(ctx context.Context, b pinboard.Bookmark) error
	SaveBookmark(ctx context.Context, b pinboard.Bookmark) error
	DeleteBookmark(ctx context.Context, rawURL string) error
}

type Server struct {
	cfg    config.Config
	client BookmarkClient
	logger *log.Logger
	server *sdk.Server
}

func NewServer(cfg config.Config, client BookmarkClient, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Server{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
	s.server = sdk.NewServer(&sdk.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}, nil)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.addTool("list_bookmarks", "List bookmarks, optionally filtered by date range and tags.", listBookmarksSchema(), s.handleListBookmarks)
	s.addTool("list_tags", "List all tags with usage counts.", listTagsSchema(), s.handleListTags)
	s.addTool("add_bookmark", "Add a new bookmark.", addBookmarkSchema(), s.handleAddBookmark)
	s.addTool("update_bookmark", "Update fields of an existing bookmark.", updateBookmarkSchema(), s.handleUpdateBookmark)
	s.addTool("delete_bookmark", "Delete a bookmark by URL.", deleteBookmarkSchema(), s.handleDeleteBookmark)
}

// toolFunc is one tool operation. It is total as seen by the protocol: any
// error it returns is folded into a {"success":false} payload by the wrapper,
// never surfaced as a protocol-level failure.
type toolFunc func(ctx context.Context, args json.RawMessage) (any, error)

func (s *Server) addTool(name, description string, schema json.RawMessage, fn toolFunc) {
	s.server.AddTool(&sdk.Tool{
		Name:        name,
		Description: description,
		InputSchema: schema,
	}, s.wrap(name, fn))
}

func (s *Server) wrap(name string, fn toolFunc) sdk.ToolHandler {
	return func(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
		args := req.Params.Arguments
		if args == nil {
			args = json.RawMessage("{}")
		}

		ctx = pinboard.WithOperation(ctx, name)
		start := time.Now()
		result, err := fn(ctx, args)
		s.logger.Printf("operation=%s duration_ms=%d ok=%t", name, time.Since(start).Milliseconds(), err == nil)

		if err != nil {
			result = map[string]any{"success": false, "error": err.Error()}
		}
		text, merr := json.Marshal(result)
		if merr != nil {
			return nil, merr
		}
		return &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: string(text)}},
		}, nil
	}
}

// Run serves MCP over stdio until ctx is cancelled or the transport closes.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &sdk.StdioTransport{})
}

// RunHTTP serves MCP over the streamable HTTP transport.
func (s *Server) RunHTTP(ctx context.Context) error {
	handler := sdk.NewStreamableHTTPHandler(func(*http.Request) *sdk.Server {
		return s.server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(s.cfg.HTTPPath, handler)

	httpServer := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}
