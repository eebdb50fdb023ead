package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vfaronov/httpheader"

	"github.com/tldv-downloader/tldv/internal/meeting"
	"github.com/tldv-downloader/tldv/internal/utils"
)

const (
	DefaultBaseURL   = "https://gw.tldv.io"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "tldv-downloader"

	// maxRetryWait caps how long a Retry-After may make us wait
	maxRetryWait = 10 * time.Second
	// Limit error body read to 1KB
	maxErrorBody = 1024
)

var (
	ErrUnauthorized = errors.New("authentication failed")
	ErrNotFound     = errors.New("meeting not found")
)

// StatusError is an unexpected HTTP status from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}

// Client talks to the tl;dv gateway.
type Client struct {
	BaseURL   string
	Token     string
	UserAgent string
	HTTP      *http.Client
}

// NewClient creates a client for baseURL authenticating with token.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Token:     NormalizeToken(token),
		UserAgent: DefaultUserAgent,
		HTTP:      &http.Client{Timeout: DefaultTimeout},
	}
}

// NormalizeToken makes sure the token carries the Bearer scheme.
func NormalizeToken(token string) string {
	token = strings.TrimSpace(token)
	if token == "" || strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return token
	}
	return "Bearer " + token
}

// FetchWatchPage loads the watch page of a meeting. It returns the decoded
// page together with the raw response body.
func (c *Client) FetchWatchPage(ctx context.Context, meetingID string) (*meeting.WatchPage, []byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/meetings/"+url.PathEscape(meetingID)+"/watch-page")
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read watch page: %w", err)
	}

	var page meeting.WatchPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, raw, fmt.Errorf("failed to decode watch page: %w", err)
	}
	return &page, raw, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", c.Token)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", uuid.NewString())
		if c.UserAgent != "" {
			req.Header.Set("User-Agent", c.UserAgent)
		}

		utils.Debug("API %s %s (request %s)", method, path, req.Header.Get("X-Request-ID"))
		resp, err := c.HTTP.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 400 {
			return resp, nil
		}

		if attempt == 0 && (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable) {
			if at := httpheader.RetryAfter(resp.Header); !at.IsZero() {
				_ = resp.Body.Close()
				if err := sleepUntil(ctx, at); err != nil {
					return nil, err
				}
				continue
			}
		}
		return nil, statusError(resp)
	}
}

func statusError(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		for _, challenge := range httpheader.WWWAuthenticate(resp.Header) {
			if desc := challenge.Params["error_description"]; desc != "" {
				return fmt.Errorf("%w: %s", ErrUnauthorized, desc)
			}
		}
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func sleepUntil(ctx context.Context, at time.Time) error {
	wait := time.Until(at)
	if wait > maxRetryWait {
		wait = maxRetryWait
	}
	if wait <= 0 {
		return nil
	}
	utils.Debug("API asked to retry after %s", wait)
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
