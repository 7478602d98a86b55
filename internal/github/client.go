// Package github is a minimal client for the GitHub REST API, covering only
// what name reservation needs: repository creation, the authenticated user,
// and the contents API.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// Sentinel errors for the failure modes callers dispatch on.
var (
	ErrAuthRequired = errors.New("authentication required")
	ErrRepoExists   = errors.New("repository name already exists")
	ErrInvalidName  = errors.New("invalid repository name")
	ErrRateLimited  = errors.New("rate limited")
)

// APIError is any other non-success response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api error (status %d): %s", e.StatusCode, e.Body)
}

// Client talks to the GitHub REST API with a bearer token.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Token   string
}

// NewClient builds a client for the given token.
func NewClient(token string) *Client {
	return &Client{
		HTTP:  &http.Client{Timeout: 15 * time.Second},
		Token: token,
	}
}

// Repo is the subset of the repository payload callers need.
type Repo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
}

// CreateRepo creates a repository under the authenticated user.
//
// POST /user/repos, required scope public_repo (or repo for private).
// The repo is auto-initialized so the contents API works immediately.
func (c *Client) CreateRepo(ctx context.Context, name, description string, private bool) (*Repo, error) {
	payload := map[string]any{
		"name":        name,
		"description": description,
		"private":     private,
		"auto_init":   true,
	}

	resp, err := c.do(ctx, http.MethodPost, "/user/repos", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	switch resp.StatusCode {
	case http.StatusCreated:
		var repo Repo
		if err := json.NewDecoder(resp.Body).Decode(&repo); err != nil {
			return nil, fmt.Errorf("decode repo response: %w", err)
		}
		return &repo, nil
	case http.StatusUnauthorized:
		return nil, ErrAuthRequired
	case http.StatusUnprocessableEntity:
		body := readBody(resp.Body)
		if strings.Contains(body, "name already exists") {
			return nil, ErrRepoExists
		}
		return nil, ErrInvalidName
	case http.StatusForbidden:
		return nil, ErrRateLimited
	default:
		return nil, &APIError{StatusCode: resp.StatusCode, Body: readBody(resp.Body)}
	}
}

// Username returns the authenticated user's login.
func (c *Client) Username(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	switch resp.StatusCode {
	case http.StatusOK:
		var user struct {
			Login string `json:"login"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return "", fmt.Errorf("decode user response: %w", err)
		}
		return user.Login, nil
	case http.StatusUnauthorized:
		return "", ErrAuthRequired
	case http.StatusForbidden:
		return "", ErrRateLimited
	default:
		return "", &APIError{StatusCode: resp.StatusCode, Body: readBody(resp.Body)}
	}
}

// HasFile reports whether a file exists at path in the repository.
func (c *Client) HasFile(ctx context.Context, owner, repo, path string) (bool, error) {
	resp, err := c.do(ctx, http.MethodGet, contentsPath(owner, repo, path), nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	case http.StatusUnauthorized:
		return false, ErrAuthRequired
	case http.StatusForbidden:
		return false, ErrRateLimited
	default:
		return false, &APIError{StatusCode: resp.StatusCode, Body: readBody(resp.Body)}
	}
}

// CreateFile creates a new file in the repository. It never overwrites: the
// contents API rejects a create without a blob SHA when the file exists.
func (c *Client) CreateFile(ctx context.Context, owner, repo, path, message, content string) error {
	payload := map[string]any{
		"message": message,
		"content": base64.StdEncoding.EncodeToString([]byte(content)),
	}

	resp, err := c.do(ctx, http.MethodPut, contentsPath(owner, repo, path), payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return ErrAuthRequired
	case http.StatusForbidden:
		return ErrRateLimited
	default:
		return &APIError{StatusCode: resp.StatusCode, Body: readBody(resp.Body)}
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "nameclaim/0.1.0")
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.Token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return client.Do(req)
}

func contentsPath(owner, repo, path string) string {
	return "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/contents/" + path
}

func readBody(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 64*1024))
	return strings.TrimSpace(string(data))
}
