package portfolio

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/garnizeh/portfolio/pkg/models"
)

var (
	// ErrUnsuccessful is matched by every error the server reported, either
	// through a non-2xx status or success=false.
	ErrUnsuccessful = errors.New("request was not successful")
	ErrNoData       = errors.New("response carried no data")
)

type APIError struct {
	StatusCode int
	Message    string
	Errors     []models.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return ErrUnsuccessful }

// Message extracts the server supplied message from err, falling back to
// "Unknown error" when the failure carried none.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Unknown error"
}

// IsNotFound reports whether the server answered 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
