// Package advisor produces natural-language commentary on a budget. The
// network call is best effort: callers always get a usable model.Advice.
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

	"github.com/theirongolddev/dials/internal/model"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"
	requestTimeout = 30 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
	maxTips        = 3
)

var (
	// ErrUnauthorized indicates the API key is missing, expired or invalid.
	ErrUnauthorized = errors.New("advisor: unauthorized (API key invalid)")
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("advisor: rate limited")
	// ErrMalformed indicates the response did not contain usable advice.
	ErrMalformed = errors.New("advisor: malformed advice")
)

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithModel selects the model name.
func WithModel(m string) ClientOption {
	return func(c *Client) {
		if m != "" {
			c.model = m
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// NewClient creates a client for the given API key.
// Returns nil if the key is empty.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		http:    &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Generate sends prompt and parses the structured advice from the reply.
func (c *Client) Generate(ctx context.Context, prompt string) (model.Advice, error) {
	if c == nil {
		return model.Advice{}, ErrUnauthorized
	}
	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   adviceSchema,
		},
	}

	path := fmt.Sprintf("/models/%s:generateContent", url.PathEscape(c.model))
	body, err := c.post(ctx, path, req)
	if err != nil {
		return model.Advice{}, err
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.Advice{}, fmt.Errorf("advisor: parsing response: %w", err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return model.Advice{}, fmt.Errorf("advisor: prompt blocked (%s)", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return model.Advice{}, fmt.Errorf("%w: no candidates", ErrMalformed)
	}

	var text strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return parseAdvice(text.String())
}

// post performs an authenticated JSON POST and returns the response body.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("advisor: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("advisor: creating request: %w", err)
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "github.com/theirongolddev/dials/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("advisor: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("advisor: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("advisor: reading response: %w", err)
	}
	return body, nil
}

// parseAdvice decodes and validates the model's JSON answer. Extra tips are
// dropped; a missing summary, no tips or an unknown tone is an error.
func parseAdvice(text string) (model.Advice, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimSuffix(strings.TrimPrefix(text, "```"), "```")

	var adv model.Advice
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &adv); err != nil {
		return model.Advice{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	adv.Summary = strings.TrimSpace(adv.Summary)
	if adv.Summary == "" {
		return model.Advice{}, fmt.Errorf("%w: empty summary", ErrMalformed)
	}

	tips := make([]string, 0, maxTips)
	for _, tip := range adv.Tips {
		if tip = strings.TrimSpace(tip); tip != "" && len(tips) < maxTips {
			tips = append(tips, tip)
		}
	}
	if len(tips) == 0 {
		return model.Advice{}, fmt.Errorf("%w: no tips", ErrMalformed)
	}
	adv.Tips = tips

	if !adv.Tone.Valid() {
		return model.Advice{}, fmt.Errorf("%w: unknown tone %q", ErrMalformed, adv.Tone)
	}
	return adv, nil
}
