package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FieldSingle is the multipart field carrying a single image.
	FieldSingle = "image"
	// FieldMultiple is the repeated multipart field carrying a gallery.
	FieldMultiple = "images"
)

var ErrNoFiles = errors.New("no files to upload")

// File is a staged file held in memory until it is uploaded.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Open reads a file from disk and guesses its content type from the extension.
func Open(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return File{Name: filepath.Base(path), ContentType: ContentType(path, b), Data: b}, nil
}

// ContentType prefers the extension and falls back to sniffing the content.
func ContentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

// Ack is the raw server acknowledgement of an upload.
type Ack struct {
	StatusCode int
	Body       json.RawMessage
}

// StatusError is returned when the server rejects an upload.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upload rejected: status %d", e.StatusCode)
	}
	return fmt.Sprintf("upload rejected: status %d: %s", e.StatusCode, e.Message)
}

// Client posts multipart uploads to already-resolved endpoints.
type Client struct {
	client *http.Client
	token  func() string
}

// NewClient builds an upload client. token is consulted on every request and may be nil.
func NewClient(httpClient *http.Client, token func() string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{client: httpClient, token: token}
}

// package-level logger for pkg/upload; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/upload. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// UploadOne posts f under the "image" field.
func (c *Client) UploadOne(ctx context.Context, endpoint string, f File) (*Ack, error) {
	return c.post(ctx, endpoint, FieldSingle, []File{f})
}

// UploadMany posts every file under the repeated "images" field.
func (c *Client) UploadMany(ctx context.Context, endpoint string, files []File) (*Ack, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return c.post(ctx, endpoint, FieldMultiple, files)
}

func (c *Client) post(ctx context.Context, endpoint, field string, files []File) (*Ack, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		if err := writePart(mw, field, f); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error("upload: request failed", slog.String("url", endpoint), slog.Any("err", err))
		return nil, fmt.Errorf("upload %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}

	var env struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("upload: rejected", slog.String("url", endpoint), slog.Int("status", resp.StatusCode))
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if env.Success != nil && !*env.Success {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	logger.Debug("upload: done", slog.String("url", endpoint), slog.Int("files", len(files)))
	return &Ack{StatusCode: resp.StatusCode, Body: json.RawMessage(body)}, nil
}

func writePart(mw *multipart.Writer, field string, f File) error {
	ct := f.ContentType
	if ct == "" {
		ct = ContentType(f.Name, f.Data)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, escapeQuotes(f.Name)))
	h.Set("Content-Type", ct)
	w, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = w.Write(f.Data)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
