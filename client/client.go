// Package client talks to the post service and to the collaborator services
// the views depend on: single post lookup, post comments and author profiles.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/models"
)

// DefaultBaseURL is where the post service listens in development.
const DefaultBaseURL = "http://localhost:3000"

const userAgent = "postsctl/1.0"

// ErrNotFound is returned when a collaborator answers 404.
var ErrNotFound = errors.New("not found")

// StatusError reports a non-2xx answer other than 404.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.Code, e.Body)
}

// Client is safe for concurrent use.
type Client struct {
	baseURL     string
	profilesURL string
	http        *http.Client
	logger      *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithProfilesURL points profile lookups at a separate service.
func WithProfilesURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.profilesURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient replaces the default 10s-timeout http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  zap.NewNop(),
	}
	c.profilesURL = c.baseURL
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPosts fetches every post.
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/api/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost submits a new post and returns the stored record.
func (c *Client) CreatePost(ctx context.Context, title, body string) (models.Post, error) {
	in := struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}{title, body}
	var post models.Post
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/posts", in, &post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// GetPost fetches one post from the per-post endpoint.
func (c *Client) GetPost(ctx context.Context, id int) (models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/api/posts/"+strconv.Itoa(id), nil, &post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// ListComments fetches the comments of a post.
func (c *Client) ListComments(ctx context.Context, postID int) ([]models.Comment, error) {
	var comments []models.Comment
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/api/posts/"+strconv.Itoa(postID)+"/comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// GetProfile fetches an author profile.
func (c *Client) GetProfile(ctx context.Context, id int) (models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, c.profilesURL+"/api/profiles/"+strconv.Itoa(id), nil, &p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("request done",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, url, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &StatusError{Method: method, URL: url, Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, url, err)
	}
	return nil
}
