// Package api is the HTTP client for the BlogIT server. It mirrors the
// server's wire format and converts HTTP failures into typed errors the
// session controller and CLI can branch on.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Typed errors surfaced by the client.
var (
	// ErrUnauthenticated means the server rejected the bearer token (or
	// its absence). Callers should discard any stored token.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the identity is valid but does not own the
	// targeted post.
	ErrForbidden = errors.New("not the author of this blog")

	// ErrNotFound means the requested post does not exist.
	ErrNotFound = errors.New("blog not found")

	// ErrInvalidCredentials means login failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrValidation means the server rejected missing required fields.
	ErrValidation = errors.New("missing required fields")
)

// Identity is the authenticated user profile returned by validate-user.
type Identity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post mirrors the server's post representation.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TokenFunc supplies the current stored token; it returns "" when the
// client is not logged in.
type TokenFunc func() string

// Client talks to the BlogIT HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
}

// New creates a Client for the given server base URL. token may be nil
// for a client that only performs public reads.
func New(baseURL string, token TokenFunc) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		token:   token,
	}
}

// envelope is the {success, message, ...} shape of the user routes.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
}

// messageBody is the {message, blog} shape of the blog routes.
type messageBody struct {
	Message string `json:"message"`
	Blog    *Post  `json:"blog"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	resp, err := c.do(ctx, http.MethodPost, "/api/users/register", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding register response: %w", err)
	}
	if resp.StatusCode == http.StatusBadRequest {
		return fmt.Errorf("%s: %w", env.Message, ErrValidation)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return fmt.Errorf("registration failed: %s", env.Message)
	}
	return nil
}

// Login exchanges credentials for a session token. A success=false body
// (the server's bad-credentials shape) becomes ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.do(ctx, http.MethodPost, "/api/users/login", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("decoding login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed: %s", env.Message)
	}
	if !env.Success {
		return "", ErrInvalidCredentials
	}
	return env.Token, nil
}

// Whoami resolves the stored token to the authenticated identity.
func (c *Client) Whoami(ctx context.Context) (Identity, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/users/validate-user", nil)
	if err != nil {
		return Identity{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return Identity{}, ErrUnauthenticated
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return Identity{}, fmt.Errorf("decoding validate-user response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return Identity{}, fmt.Errorf("validate-user failed: %s", env.Message)
	}
	var ident Identity
	if err := json.Unmarshal(env.Data, &ident); err != nil {
		return Identity{}, fmt.Errorf("decoding identity: %w", err)
	}
	return ident, nil
}

// AllBlogs retrieves every post, newest first.
func (c *Client) AllBlogs(ctx context.Context) ([]Post, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/blogs/all-blogs", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing blogs failed with status %d", resp.StatusCode)
	}
	var posts []Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("decoding blog list: %w", err)
	}
	return posts, nil
}

// Blog retrieves a single post by ID.
func (c *Client) Blog(ctx context.Context, id string) (Post, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/blogs/blog/"+id, nil)
	if err != nil {
		return Post{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Post{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return Post{}, fmt.Errorf("fetching blog failed with status %d", resp.StatusCode)
	}
	var post Post
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return Post{}, fmt.Errorf("decoding blog: %w", err)
	}
	return post, nil
}

// CreateBlog publishes a new post as the authenticated user.
func (c *Client) CreateBlog(ctx context.Context, title, content string) (Post, error) {
	body := map[string]string{"title": title, "content": content}
	resp, err := c.do(ctx, http.MethodPost, "/api/blogs/create", body)
	if err != nil {
		return Post{}, err
	}
	defer resp.Body.Close()

	if err := c.checkMutationStatus(resp, http.StatusCreated); err != nil {
		return Post{}, err
	}
	var out messageBody
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Blog == nil {
		return Post{}, fmt.Errorf("decoding created blog: %w", err)
	}
	return *out.Blog, nil
}

// EditBlog applies a partial update; nil fields are omitted from the
// request entirely so the server leaves them unchanged.
func (c *Client) EditBlog(ctx context.Context, id string, title, content *string) (Post, error) {
	body := map[string]string{}
	if title != nil {
		body["title"] = *title
	}
	if content != nil {
		body["content"] = *content
	}
	resp, err := c.do(ctx, http.MethodPut, "/api/blogs/edit/"+id, body)
	if err != nil {
		return Post{}, err
	}
	defer resp.Body.Close()

	if err := c.checkMutationStatus(resp, http.StatusOK); err != nil {
		return Post{}, err
	}
	var out messageBody
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Blog == nil {
		return Post{}, fmt.Errorf("decoding updated blog: %w", err)
	}
	return *out.Blog, nil
}

// DeleteBlog removes a post owned by the authenticated user.
func (c *Client) DeleteBlog(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/blogs/delete/"+id, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.checkMutationStatus(resp, http.StatusOK)
}

// checkMutationStatus maps the shared failure statuses of mutating blog
// endpoints to typed errors.
func (c *Client) checkMutationStatus(resp *http.Response, want int) error {
	switch resp.StatusCode {
	case want:
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrValidation
	default:
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.http.Do(req)
}
