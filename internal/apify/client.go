// Package apify runs Apify actors synchronously and adapts their dataset
// items to lesson image and video lookups.
package apify

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

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.apify.com"

// Config configures the Apify client.
type Config struct {
	Token    string
	BaseURL  string
	Timeout  time.Duration
	Attempts uint
	Delay    time.Duration
}

// Client calls the run-sync-get-dataset-items endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryOpts  []retry.Option
	log        *zap.Logger
}

// NewClient creates an Apify client.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.Token == "" {
		return nil, errors.New("apify token is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	attempts := cfg.Attempts
	if attempts == 0 {
		attempts = 2
	}
	delay := cfg.Delay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &authTransport{token: cfg.Token, transport: http.DefaultTransport},
		},
		log: log,
	}
	c.retryOpts = []retry.Option{
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.MaxDelay(5 * time.Second),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn("retrying apify actor run", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	}
	return c, nil
}

// RunSync runs actor with input and decodes the dataset items into out.
func (c *Client) RunSync(ctx context.Context, actor string, input, out any) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("marshal actor input: %w", err)
	}
	endpoint := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items", c.baseURL, url.PathEscape(actor))

	opts := append([]retry.Option{retry.Context(ctx)}, c.retryOpts...)
	raw, err := retry.DoWithData(func() ([]byte, error) {
		return c.post(ctx, endpoint, body)
	}, opts...)
	if err != nil {
		return fmt.Errorf("run actor %s: %w", actor, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode dataset items: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("read response body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: string(data)}
	}
	return data, nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

type authTransport struct {
	token     string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set("Authorization", "Bearer "+t.token)
	return t.transport.RoundTrip(reqCopy)
}
