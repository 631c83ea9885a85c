// Package advisor asks a hosted text-generation model for spending advice.
// Budget figures are computed before the call; the advisor only reads them.
package advisor

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
)

const (
	// DefaultBaseURL is the public Gemini REST endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-1.5-flash"
	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 20 * time.Second

	maxBodySize = 1 << 20 // 1 MB
	userAgent   = "github.com/theirongolddev/runway/1.0"
)

var (
	// ErrNoCredential indicates no API key was configured.
	ErrNoCredential = errors.New("advisor: no API key configured")
	// ErrUnauthorized indicates the API key was rejected.
	ErrUnauthorized = errors.New("advisor: unauthorized (API key invalid or revoked)")
	// ErrQuotaExceeded indicates the key's quota or rate limit was hit.
	ErrQuotaExceeded = errors.New("advisor: quota exceeded")
	// ErrUnavailable indicates a network failure or server-side error.
	ErrUnavailable = errors.New("advisor: service unavailable")
	// ErrEmptyResponse indicates the model returned no usable text.
	ErrEmptyResponse = errors.New("advisor: empty response")
)

// Recoverable reports whether err is an advisor failure the caller should
// display and carry on from.
func Recoverable(err error) bool {
	return errors.Is(err, ErrNoCredential) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrQuotaExceeded) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrEmptyResponse)
}

// Client calls the Gemini generateContent API.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithModel selects the generation model.
func WithModel(m string) Option {
	return func(c *Client) {
		if m = strings.TrimSpace(m); m != "" {
			c.model = strings.TrimPrefix(m, "models/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a client for the given API key. An empty key is allowed;
// every call then fails with ErrNoCredential.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		timeout: DefaultTimeout,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured model ID.
func (c *Client) Model() string { return c.model }

// Advise sends the prompt built from req and returns the model's text.
func (c *Client) Advise(ctx context.Context, req Request) (string, error) {
	payload := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: BuildPrompt(req)}}}},
		GenerationConfig: &generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 256,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("advisor: encoding request: %w", err)
	}

	path := "/v1beta/models/" + url.PathEscape(c.model) + ":generateContent"
	raw, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return "", err
	}

	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("%w: parsing response: %v", ErrEmptyResponse, err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", ErrEmptyResponse, resp.PromptFeedback.BlockReason)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		if sb.Len() > 0 {
			break
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// ListModels returns every model that supports generateContent, following
// pagination until the API stops returning a page token.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var out []Model
	token := ""
	for {
		path := "/v1beta/models?pageSize=100"
		if token != "" {
			path += "&pageToken=" + url.QueryEscape(token)
		}
		raw, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}

		var page listModelsResponse
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, fmt.Errorf("advisor: parsing models: %w", err)
		}
		for _, m := range page.Models {
			for _, method := range m.SupportedGenerationMethods {
				if method == "generateContent" {
					out = append(out, m.Model)
					break
				}
			}
		}
		if page.NextPageToken == "" || page.NextPageToken == token {
			return out, nil
		}
		token = page.NextPageToken
	}
}

// do performs an authenticated request and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrNoCredential
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("advisor: creating request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	return nil, statusError(resp.StatusCode, raw)
}

// statusError maps a non-2xx response to one of the package sentinels.
func statusError(code int, body []byte) error {
	var ae apiError
	_ = json.Unmarshal(body, &ae)
	msg := ae.Error.Message
	if msg == "" {
		msg = http.StatusText(code)
	}

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case code == http.StatusBadRequest && badKey(ae):
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, msg)
	}
	return fmt.Errorf("%w: status %d: %s", ErrUnavailable, code, msg)
}

func badKey(ae apiError) bool {
	for _, d := range ae.Error.Details {
		if d.Reason == "API_KEY_INVALID" {
			return true
		}
	}
	return strings.Contains(strings.ToLower(ae.Error.Message), "api key")
}
