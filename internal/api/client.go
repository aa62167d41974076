// Package api is the HTTP client for the platform REST API. Every
// operation is a single round trip: no retries, no idempotency keys.
// A create repeated after a timed-out first attempt can therefore
// produce a duplicate; that limitation is accepted, not worked around.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tinybio/linkdeck/internal/types"
)

// DefaultTimeout bounds a single request round trip
const DefaultTimeout = 30 * time.Second

// Client talks to one platform API instance
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a client for the given base URL (e.g.
// "http://localhost:4000/api")
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// APIError is a non-2xx response, carrying the server-provided message
// when the body held one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 APIError
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// errorBody is the wire shape of failure responses
type errorBody struct {
	Error string `json:"error"`
}

// do performs one JSON round trip. out may be nil for responses whose
// body is discarded (deletes).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 && resp.StatusCode != http.StatusNoContent {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// apiError extracts the server message from an error body when present
func (c *Client) apiError(status int, data []byte) error {
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return &APIError{Status: status, Message: body.Error}
	}
	return &APIError{Status: status, Message: fmt.Sprintf("request failed with status %d", status)}
}

// loginResponse is the body of a successful login
type loginResponse struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

// Login exchanges credentials for a bearer token and stores it on the
// client for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*types.User, error) {
	var resp loginResponse
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, payload, &resp); err != nil {
		return nil, err
	}
	c.Token = resp.Token
	return &resp.User, nil
}

// ListUsers fetches the full user collection; users paginate
// client-side.
func (c *Client) ListUsers(ctx context.Context) ([]types.User, error) {
	var coll types.Collection[types.User]
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &coll); err != nil {
		return nil, err
	}
	return coll.Items, nil
}

// CreateUser creates a user from a wire payload (see forms.UserForm)
func (c *Client) CreateUser(ctx context.Context, payload any) (*types.User, error) {
	var user types.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser patches a user
func (c *Client) UpdateUser(ctx context.Context, id string, payload any) (*types.User, error) {
	var user types.User
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user; owned link collections cascade server-side
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil)
}

// ListCategories fetches the full category collection
func (c *Client) ListCategories(ctx context.Context) ([]types.Category, error) {
	var coll types.Collection[types.Category]
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &coll); err != nil {
		return nil, err
	}
	return coll.Items, nil
}

// CreateCategory creates a category
func (c *Client) CreateCategory(ctx context.Context, payload any) (*types.Category, error) {
	var cat types.Category
	if err := c.do(ctx, http.MethodPost, "/categories", nil, payload, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// UpdateCategory patches a category
func (c *Client) UpdateCategory(ctx context.Context, id string, payload any) (*types.Category, error) {
	var cat types.Category
	if err := c.do(ctx, http.MethodPatch, "/categories/"+url.PathEscape(id), nil, payload, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes a category. The usage-count precondition is
// checked by the caller before this is ever reached; the server
// enforces it again regardless.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil, nil)
}

// CategoryArticles fetches the child articles of one category for the
// detail drill-down.
func (c *Client) CategoryArticles(ctx context.Context, id string) ([]types.Article, error) {
	var coll types.Collection[types.Article]
	path := "/categories/" + url.PathEscape(id) + "/articles"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &coll); err != nil {
		return nil, err
	}
	return coll.Items, nil
}

// ArticleQuery are the server-side list parameters for articles
type ArticleQuery struct {
	Page     int
	Limit    int
	Status   types.ArticleStatus
	Category string
	Search   string
}

// Values encodes the query, omitting zero parameters
func (q ArticleQuery) Values() url.Values {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Status != "" {
		values.Set("status", string(q.Status))
	}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	return values
}

// ListArticles fetches one server-side page of articles
func (c *Client) ListArticles(ctx context.Context, query ArticleQuery) (*types.Collection[types.Article], error) {
	var coll types.Collection[types.Article]
	if err := c.do(ctx, http.MethodGet, "/articles", query.Values(), nil, &coll); err != nil {
		return nil, err
	}
	return &coll, nil
}

// GetArticle fetches a single article
func (c *Client) GetArticle(ctx context.Context, id string) (*types.Article, error) {
	var article types.Article
	if err := c.do(ctx, http.MethodGet, "/articles/"+url.PathEscape(id), nil, nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// CreateArticle creates an article (status defaults to DRAFT server-side)
func (c *Client) CreateArticle(ctx context.Context, payload any) (*types.Article, error) {
	var article types.Article
	if err := c.do(ctx, http.MethodPost, "/articles", nil, payload, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// UpdateArticle patches an article
func (c *Client) UpdateArticle(ctx context.Context, id string, payload any) (*types.Article, error) {
	var article types.Article
	if err := c.do(ctx, http.MethodPatch, "/articles/"+url.PathEscape(id), nil, payload, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// DeleteArticle removes an article unconditionally
func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/articles/"+url.PathEscape(id), nil, nil, nil)
}
