package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/garnizeh/portfolio/pkg/models"
)

// ErrNotFound is returned when no record of the kind has the id.
var ErrNotFound = errors.New("record not found")

// Record is one stored entity. Body holds the entity fields as a JSON object,
// without id and timestamps. Created and Updated are Unix milliseconds.
type Record struct {
	ID      string
	Kind    models.Kind
	Body    json.RawMessage
	Created int64
	Updated int64
}

// ListOptions pages a listing. Newest orders by creation time descending;
// the default is oldest first. A zero Limit means no limit.
type ListOptions struct {
	Limit  int
	Offset int
	Newest bool
}

// EntityRepo is the document store behind every portfolio entity. Concrete
// implementations live under internal/repository.
type EntityRepo interface {
	CreateRecord(ctx context.Context, kind models.Kind, body json.RawMessage) (*Record, error)
	GetRecord(ctx context.Context, kind models.Kind, id string) (*Record, error)
	ListRecords(ctx context.Context, kind models.Kind, opts ListOptions) ([]Record, error)
	UpdateRecord(ctx context.Context, kind models.Kind, id string, body json.RawMessage) (*Record, error)
	DeleteRecord(ctx context.Context, kind models.Kind, id string) error
	CountRecords(ctx context.Context, kind models.Kind) (int64, error)
}
