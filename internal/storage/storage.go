// Package storage keeps uploaded images on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("only jpg, jpeg, png and webp images are allowed")
	ErrTooLarge        = errors.New("file exceeds the upload size limit")
	ErrInvalidName     = errors.New("invalid file name")
)

var allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// Local stores files under a base directory with generated names.
type Local struct {
	basePath string
	maxBytes int64
	logger   *slog.Logger
}

// NewLocal creates the base directory if needed. maxBytes <= 0 disables the limit.
func NewLocal(basePath string, maxBytes int64, logger *slog.Logger) (*Local, error) {
	if basePath == "" {
		basePath = "./uploads"
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Local{basePath: basePath, maxBytes: maxBytes, logger: logger}, nil
}

func (s *Local) Dir() string { return s.basePath }

// Save writes r under a fresh name keeping the extension of original, and
// returns the stored name.
func (s *Local) Save(ctx context.Context, original string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(original))
	if !allowedExt[ext] {
		return "", fmt.Errorf("%s: %w", original, ErrUnsupportedType)
	}
	name := uuid.NewString() + ext
	full := filepath.Join(s.basePath, name)

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && s.maxBytes > 0 && n > s.maxBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("file stored", slog.String("name", name), slog.Int64("bytes", n))
	return name, nil
}

// Delete removes a stored file. Missing files are not an error.
func (s *Local) Delete(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	if err := os.Remove(filepath.Join(s.basePath, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
