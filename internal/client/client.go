// Package client is a typed HTTP client for the sns API. It keeps the session
// cookie in a jar so a Login carries over to later calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	postPort "sns/internal/ports/post"
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the server at baseURL. A nil httpClient gets a
// default one with a fresh cookie jar.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		httpClient = &http.Client{Jar: jar, Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}, nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type postBody struct {
	Content string  `json:"content"`
	Related *string `json:"related,omitempty"`
}

func (c *Client) Signup(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/signup/", credentials{username, password}, nil)
}

func (c *Client) Login(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/login/", credentials{username, password}, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout/", nil, nil)
}

func (c *Client) ViewPost(ctx context.Context, id string) (*postPort.PostDTO, error) {
	var p postPort.PostDTO
	if err := c.do(ctx, http.MethodGet, "/view/"+url.PathEscape(id)+"/", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Timeline(ctx context.Context, n int) ([]postPort.PostDTO, error) {
	var posts []postPort.PostDTO
	if err := c.do(ctx, http.MethodGet, "/timeline/"+strconv.Itoa(n)+"/", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) Replies(ctx context.Context, id string) ([]postPort.PostDTO, error) {
	var posts []postPort.PostDTO
	if err := c.do(ctx, http.MethodGet, "/replies/"+url.PathEscape(id)+"/", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Like adds one like and returns the new count.
func (c *Client) Like(ctx context.Context, id string) (int64, error) {
	var out struct {
		Liked int64 `json:"liked"`
	}
	if err := c.do(ctx, http.MethodGet, "/like/"+url.PathEscape(id)+"/", nil, &out); err != nil {
		return 0, err
	}
	return out.Liked, nil
}

// CreatePost publishes content, optionally as a reply, and returns the new id.
func (c *Client) CreatePost(ctx context.Context, content string, related *string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/post/", postBody{content, related}, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) EditPost(ctx context.Context, id, content string, related *string) (*postPort.PostDTO, error) {
	var p postPort.PostDTO
	if err := c.do(ctx, http.MethodPost, "/edit/"+url.PathEscape(id)+"/", postBody{content, related}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/delete/"+url.PathEscape(id)+"/", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(res.Body).Decode(&e); err != nil || e.Error == "" {
			e.Error = http.StatusText(res.StatusCode)
		}
		return &APIError{Status: res.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
