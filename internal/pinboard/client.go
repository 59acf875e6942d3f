package pinboard

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/akrisanov/pinboard-mcp/internal/config"
)

type ctxKey string

const operationKey ctxKey = "operation"

const (
	defaultListLimit = 200

	// Pinboard encodes datetime filters as UTC with a trailing Z.
	upstreamTimeLayout = "2006-01-02T15:04:05Z"
)

// Client talks to the Pinboard v1 API. It is the only component that touches
// the network; everything above it works with Bookmark and Post values.
// Every request passes through the limiter before it is sent.
type Client struct {
	apiBase    string
	token      string
	userAgent  string
	httpClient *http.Client
	limiter    *Limiter
	logger     *log.Logger
}

func NewClient(cfg config.Config, limiter *Limiter, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		apiBase:    strings.TrimRight(cfg.APIBaseURL, "/"),
		token:      cfg.APIToken,
		userAgent:  cfg.UserAgent,
		httpClient: config.NewHTTPClient(cfg),
		limiter:    limiter,
		logger:     logger,
	}
}

// WithOperation tags ctx with the tool operation name for request logging.
func WithOperation(ctx context.Context, operation string) context.Context {
	if operation == "" {
		return ctx
	}
	return context.WithValue(ctx, operationKey, operation)
}

// ListBookmarks fetches bookmarks via posts/all. Filters that are unset are
// omitted from the query entirely; Pinboard treats a present-but-empty tag
// filter as "match nothing".
func (c *Client) ListBookmarks(ctx context.Context, opts ListOptions) ([]Post, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}

	params := url.Values{}
	params.Set("results", strconv.Itoa(opts.Limit))
	if len(opts.Tags) > 0 {
		params.Set("tag", joinTags(opts.Tags))
	}
	if opts.From != nil {
		params.Set("fromdt", opts.From.UTC().Format(upstreamTimeLayout))
	}
	if opts.To != nil {
		params.Set("todt", opts.To.UTC().Format(upstreamTimeLayout))
	}

	respBytes, err := c.do(ctx, "/posts/all", params)
	if err != nil {
		return nil, err
	}

	var posts []Post
	if err := json.Unmarshal(respBytes, &posts); err != nil {
		return nil, errors.WithMessage(err, "decode posts/all response")
	}
	return posts, nil
}

// ListTags fetches all tags with usage counts via tags/get. Counts arrive as
// strings from Pinboard but numbers are tolerated too.
func (c *Client) ListTags(ctx context.Context) (map[string]int, error) {
	respBytes, err := c.do(ctx, "/tags/get", nil)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(respBytes, &raw); err != nil {
		return nil, errors.WithMessage(err, "decode tags/get response")
	}

	tags := make(map[string]int, len(raw))
	for name, count := range raw {
		switch v := count.(type) {
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				continue
			}
			tags[name] = n
		case float64:
			tags[name] = int(v)
		}
	}
	return tags, nil
}

// FindBookmarkByURL looks up one bookmark via posts/get. A miss is reported
// as (nil, nil), not an error. More than one match is an upstream
// data-consistency anomaly: the first record wins and the ambiguity is
// logged.
func (c *Client) FindBookmarkByURL(ctx context.Context, rawURL string) (*Post, error) {
	params := url.Values{}
	params.Set("url", rawURL)

	respBytes, err := c.do(ctx, "/posts/get", params)
	if err != nil {
		return nil, err
	}

	var resp postsResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, errors.WithMessage(err, "decode posts/get response")
	}
	if len(resp.Posts) == 0 {
		return nil, nil
	}
	if len(resp.Posts) > 1 {
		c.logger.Printf("operation=%s endpoint=/posts/get url=%s matches=%d picking first", operationFrom(ctx), rawURL, len(resp.Posts))
	}
	return &resp.Posts[0], nil
}

// CreateBookmark adds a new bookmark via posts/add without replacing an
// existing record at the same URL.
func (c *Client) CreateBookmark(ctx context.Context, b Bookmark) error {
	return c.save(ctx, b, false)
}

// SaveBookmark writes a bookmark via posts/add with replace=yes, overwriting
// the record at the same URL.
func (c *Client) SaveBookmark(ctx context.Context, b Bookmark) error {
	return c.save(ctx, b, true)
}

func (c *Client) save(ctx context.Context, b Bookmark, replace bool) error {
	respBytes, err := c.do(ctx, "/posts/add", saveParams(b, replace))
	if err != nil {
		return err
	}
	return checkResultCode(respBytes, "/posts/add")
}

// DeleteBookmark removes the bookmark at rawURL via posts/delete.
func (c *Client) DeleteBookmark(ctx context.Context, rawURL string) error {
	params := url.Values{}
	params.Set("url", rawURL)

	respBytes, err := c.do(ctx, "/posts/delete", params)
	if err != nil {
		return err
	}

	var resp resultResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return errors.WithMessage(err, "decode posts/delete response")
	}
	switch code := strings.ToLower(strings.TrimSpace(resp.ResultCode)); code {
	case "done":
		return nil
	case "item not found":
		return errors.WithMessagef(ErrNotFound, "no bookmark for url %s", rawURL)
	default:
		return &APIError{Endpoint: "/posts/delete", Message: "upstream returned result " + strconv.Quote(resp.ResultCode)}
	}
}

// LastUpdate returns the time bookmarks were last modified, via posts/update.
// Used as a startup connectivity and credential check.
func (c *Client) LastUpdate(ctx context.Context) (time.Time, error) {
	respBytes, err := c.do(ctx, "/posts/update", nil)
	if err != nil {
		return time.Time{}, err
	}

	var resp updateResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return time.Time{}, errors.WithMessage(err, "decode posts/update response")
	}
	t, err := time.Parse(time.RFC3339, resp.UpdateTime)
	if err != nil {
		return time.Time{}, errors.WithMessagef(err, "parse update_time %q", resp.UpdateTime)
	}
	return t, nil
}

// checkResultCode treats anything other than an explicit "done" as a failure,
// even on HTTP 200. Pinboard signals rejection through the result code, and
// an unexpected shape here means the write cannot be trusted.
func checkResultCode(respBytes []byte, endpoint string) error {
	var resp resultResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return errors.WithMessagef(err, "decode %s response", endpoint)
	}
	if !strings.EqualFold(strings.TrimSpace(resp.ResultCode), "done") {
		return &APIError{Endpoint: endpoint, Message: "upstream returned result " + strconv.Quote(resp.ResultCode)}
	}
	return nil
}

// do performs one GET against the API after acquiring the rate limiter.
// Authentication and response format are appended here so callers never see
// them. No retries: a failed call surfaces immediately.
func (c *Client) do(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	endpoint = "/" + strings.TrimLeft(endpoint, "/")
	u, err := url.Parse(c.apiBase + endpoint)
	if err != nil {
		return nil, err
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("auth_token", c.token)
	query.Set("format", "json")
	u.RawQuery = query.Encode()

	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logRequest(ctx, endpoint, 0, time.Since(start), 0)
		return nil, err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	c.logRequest(ctx, endpoint, resp.StatusCode, time.Since(start), len(respBytes))

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    "upstream returned status " + strconv.Itoa(resp.StatusCode),
		}
	}
	return respBytes, nil
}

func (c *Client) logRequest(ctx context.Context, endpoint string, status int, latency time.Duration, size int) {
	c.logger.Printf("operation=%s endpoint=%s status=%d latency_ms=%d bytes=%d", operationFrom(ctx), endpoint, status, latency.Milliseconds(), size)
}

func operationFrom(ctx context.Context) string {
	operation, _ := ctx.Value(operationKey).(string)
	return operation
}
