package portfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/pkg/models"
)

// Client talks to the portfolio REST API. Public reads go to the API base URL,
// writes and per-id reads go to the admin base URL with the bearer token.
type Client struct {
	cfg    config.ClientConfig
	client *http.Client

	mu     sync.RWMutex
	token  string
	closed int32 // atomic flag for Close()
}

// NewClient creates a new API client.
func NewClient(cfg config.ClientConfig, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	for _, raw := range []string{cfg.APIURL, cfg.AdminURL} {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
	}

	c := &Client{
		cfg:    cfg,
		client: httpClient,
		token:  cfg.Token,
	}
	logger.Debug("portfolio: NewClient created", slog.String("api_url", cfg.APIURL), slog.String("admin_url", cfg.AdminURL))
	return c, nil
}

func NewDefaultClient(cfg config.ClientConfig) (*Client, error) {
	defaultClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return NewClient(cfg, defaultClient)
}

// Close releases idle connections held by the underlying transport. Close is
// idempotent and safe to call multiple times.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
		}
	}
	return nil
}

// package-level logger for pkg/portfolio; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/portfolio. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// HTTPClient exposes the underlying client so the upload client can share its transport.
func (c *Client) HTTPClient() *http.Client { return c.client }

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// AdminURL joins path elements onto the admin base URL.
func (c *Client) AdminURL(elem ...string) string {
	return joinURL(c.cfg.AdminURL, elem...)
}

func (c *Client) apiURL(elem ...string) string {
	return joinURL(c.cfg.APIURL, elem...)
}

// ImageURL resolves a stored filename against the image base URL.
func (c *Client) ImageURL(filename string) string {
	return ImageURL(c.cfg.ImageURL, filename)
}

// ImageURL resolves filename against base, ignoring leading slashes on the filename.
func ImageURL(base, filename string) string {
	filename = strings.TrimLeft(filename, "/")
	if filename == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + filename
}

func joinURL(base string, elem ...string) string {
	u, err := url.JoinPath(base, elem...)
	if err != nil {
		return strings.TrimRight(base, "/") + "/" + strings.Join(elem, "/")
	}
	return u
}

// do sends body as JSON and decodes the envelope data into out. A nil out
// only checks the envelope.
func (c *Client) do(ctx context.Context, method, rawURL string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error("portfolio: request failed", slog.String("method", method), slog.String("url", rawURL), slog.Any("err", err))
		return fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	LogStatus(method, rawURL, resp.StatusCode)

	var env models.Envelope[json.RawMessage]
	decErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decErr == nil {
			apiErr.Message = env.Message
			apiErr.Errors = env.Errors
		}
		return apiErr
	}
	if decErr != nil {
		return fmt.Errorf("decode response: %w", decErr)
	}
	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message, Errors: env.Errors}
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return ErrNoData
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// doKeyed decodes the record stored under key in the envelope data.
func (c *Client) doKeyed(ctx context.Context, method, rawURL string, body any, key string, out any) error {
	var data map[string]json.RawMessage
	if err := c.do(ctx, method, rawURL, body, &data); err != nil {
		return err
	}
	raw, ok := data[key]
	if !ok || string(raw) == "null" {
		return ErrNoData
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// LogStatus records a response by status band. It never changes the outcome
// of the call.
func LogStatus(method, rawURL string, status int) {
	attrs := []any{slog.String("method", method), slog.String("url", rawURL), slog.Int("status", status)}
	switch {
	case status == http.StatusNotFound:
		logger.Warn("portfolio: resource not found", attrs...)
	case status >= 500:
		logger.Error("portfolio: server error", attrs...)
	case status >= 400:
		logger.Warn("portfolio: client error", attrs...)
	}
}

// Login exchanges admin credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, c.apiURL("auth", "login"), body, &out); err != nil {
		return "", err
	}
	c.SetToken(out.Token)
	return out.Token, nil
}
