// Package api talks to the remote todo collection: a json-server style REST
// resource supporting GET, POST, PATCH, PUT and DELETE.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/loader"
	"github.com/idilsaglam/tada/internal/model"
)

// DefaultEndpoint is where json-server listens out of the box.
const DefaultEndpoint = "http://localhost:3000/todos"

var (
	ErrNotFound     = errors.New("todo not found")
	ErrEmptyContent = errors.New("content is empty")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.Code)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.Code, body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Client is the data access layer for one collection URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	indicator  *loader.Indicator
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithIndicator shows ind while each request is outstanding.
func WithIndicator(ind *loader.Indicator) Option {
	return func(c *Client) { c.indicator = ind }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the collection at collectionURL.
func NewClient(collectionURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(collectionURL))
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q: scheme must be http or https", collectionURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint %q: missing host", collectionURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the collection URL.
func (c *Client) Endpoint() string { return c.baseURL }

// List fetches every todo in the order the server returns them.
// Callers sort with model.SortByPosition.
func (c *Client) List(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.do(ctx, http.MethodGet, "", nil, &todos); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

// Get fetches one todo.
func (c *Client) Get(ctx context.Context, id model.ID) (model.Todo, error) {
	var t model.Todo
	if err := c.do(ctx, http.MethodGet, itemPath(id), nil, &t); err != nil {
		return model.Todo{}, fmt.Errorf("get todo %s: %w", id, err)
	}
	return t, nil
}

// Count returns how many todos exist.
func (c *Client) Count(ctx context.Context) (int, error) {
	todos, err := c.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(todos), nil
}

type createRequest struct {
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
	Position  int    `json:"position"`
}

// Create appends a new, not completed todo at position = current count.
func (c *Client) Create(ctx context.Context, content string) (model.Todo, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Todo{}, ErrEmptyContent
	}
	n, err := c.Count(ctx)
	if err != nil {
		return model.Todo{}, err
	}
	var t model.Todo
	req := createRequest{Content: content, Completed: false, Position: n}
	if err := c.do(ctx, http.MethodPost, "", req, &t); err != nil {
		return model.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return t, nil
}

// SetCompleted patches the completion flag.
func (c *Client) SetCompleted(ctx context.Context, id model.ID, completed bool) (model.Todo, error) {
	var t model.Todo
	if err := c.do(ctx, http.MethodPatch, itemPath(id), map[string]any{"completed": completed}, &t); err != nil {
		return model.Todo{}, fmt.Errorf("set completed %s: %w", id, err)
	}
	return t, nil
}

// SetPosition patches the position.
func (c *Client) SetPosition(ctx context.Context, id model.ID, position int) (model.Todo, error) {
	var t model.Todo
	if err := c.do(ctx, http.MethodPatch, itemPath(id), map[string]any{"position": position}, &t); err != nil {
		return model.Todo{}, fmt.Errorf("set position %s: %w", id, err)
	}
	return t, nil
}

// Toggle reads the stored completion flag and writes back its negation.
func (c *Client) Toggle(ctx context.Context, id model.ID) (model.Todo, error) {
	cur, err := c.Get(ctx, id)
	if err != nil {
		return model.Todo{}, err
	}
	next, err := c.SetCompleted(ctx, id, !cur.Completed)
	if err != nil {
		return model.Todo{}, err
	}
	// Some servers answer PATCH with an empty body.
	if next.ID == "" {
		next = cur
		next.Completed = !cur.Completed
	}
	return next, nil
}

type replaceRequest struct {
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
	Position  int    `json:"position"`
}

// Replace stores t in full, keeping its id.
func (c *Client) Replace(ctx context.Context, t model.Todo) (model.Todo, error) {
	if t.ID == "" {
		return model.Todo{}, errors.New("replace: missing id")
	}
	var out model.Todo
	req := replaceRequest{Content: t.Content, Completed: t.Completed, Position: t.Position}
	if err := c.do(ctx, http.MethodPut, itemPath(t.ID), req, &out); err != nil {
		return model.Todo{}, fmt.Errorf("replace todo %s: %w", t.ID, err)
	}
	if out.ID == "" {
		out = t
	}
	return out, nil
}

// Delete removes one todo.
func (c *Client) Delete(ctx context.Context, id model.ID) error {
	if err := c.do(ctx, http.MethodDelete, itemPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete todo %s: %w", id, err)
	}
	return nil
}

func itemPath(id model.ID) string {
	return "/" + url.PathEscape(string(id))
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	c.indicator.Begin()
	defer c.indicator.End()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	target := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "url", target, "err", err)
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug("request", "method", method, "url", target, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, URL: target, Code: resp.StatusCode, Body: string(respBody)}
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
