package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	apierrors "github.com/rashisahu/folio/internal/errors"
	"github.com/rashisahu/folio/internal/models"
)

// DefaultTimeout bounds one round trip when no timeout is configured
const DefaultTimeout = 60 * time.Second

// DefaultUserAgent is sent with every request
const DefaultUserAgent = "folio/1.0"

// HTTPDoer is the part of an HTTP client the assistant client needs.
// tls_client.HttpClient satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// AssistantClient sends one message and returns the reply text
type AssistantClient interface {
	Send(ctx context.Context, message string) (string, error)
}

// Client talks to the remote assistant over HTTP
type Client struct {
	httpClient HTTPDoer
	baseURL    string
	endpoint   string
	timeout    time.Duration
	userAgent  string
}

// Ensure Client implements AssistantClient
var _ AssistantClient = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a client for the assistant served at baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	endpoint, err := chatEndpoint(baseURL)
	if err != nil {
		return nil, err
	}

	client := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoint:  endpoint,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}
		if client.timeout > 0 {
			options = append(options, tls_client.WithTimeoutSeconds(int(client.timeout.Seconds())))
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// chatEndpoint validates baseURL and returns the full chat URL
func chatEndpoint(baseURL string) (string, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return "", fmt.Errorf("assistant endpoint cannot be empty")
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid assistant endpoint %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid assistant endpoint %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid assistant endpoint %q: missing host", baseURL)
	}

	path := strings.TrimRight(u.Path, "/")
	if !strings.HasSuffix(path, ChatPath) {
		path += ChatPath
	}
	u.Path = path

	return u.String(), nil
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoint returns the full URL requests are posted to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Timeout returns the per-request timeout
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Send posts message to the assistant and returns the reply verbatim.
// Every failure matches apierrors.ErrAssistantUnreachable except an empty message.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", apierrors.ErrEmptyMessage
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", apierrors.NewTimeoutError(err.Error())
		}
		return "", apierrors.NewNetworkErrorWithEndpoint("send message", c.endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		errMsg := "chat request failed"
		if detail := gjson.GetBytes(errorBody, PathDetail); detail.Type == gjson.String {
			errMsg = detail.String()
		}
		return "", apierrors.NewAPIErrorWithBody(resp.StatusCode, c.endpoint, errMsg, string(errorBody))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", apierrors.NewTimeoutError(err.Error())
		}
		return "", apierrors.NewNetworkErrorWithEndpoint("read response", c.endpoint, err)
	}

	return parseReply(body)
}

// parseReply extracts the reply text from a success body
func parseReply(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response body is not valid JSON", "")
	}

	result := gjson.GetBytes(body, PathResponse)
	if !result.Exists() {
		return "", apierrors.NewParseError("field not found", PathResponse)
	}
	if result.Type != gjson.String {
		return "", apierrors.NewParseError(fmt.Sprintf("expected string, got %s", result.Type), PathResponse)
	}

	return result.String(), nil
}
