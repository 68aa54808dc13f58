// Package mock provides an in-memory EntityRepo for handler tests.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/repository"
)

var _ repository.EntityRepo = (*Repo)(nil)

// Repo keeps records in memory. Setting Err makes every call fail with it.
type Repo struct {
	mu      sync.Mutex
	records map[string]repository.Record
	clock   int64
	Err     error
}

func New() *Repo {
	return &Repo{records: map[string]repository.Record{}}
}

// tick returns a strictly increasing timestamp so ordering is deterministic.
func (m *Repo) tick() int64 {
	now := time.Now().UTC().UnixMilli()
	if now <= m.clock {
		now = m.clock + 1
	}
	m.clock = now
	return now
}

func (m *Repo) CreateRecord(ctx context.Context, kind models.Kind, body json.RawMessage) (*repository.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	now := m.tick()
	rec := repository.Record{ID: uuid.NewString(), Kind: kind, Body: append(json.RawMessage(nil), body...), Created: now, Updated: now}
	m.records[rec.ID] = rec
	return &rec, nil
}

func (m *Repo) GetRecord(ctx context.Context, kind models.Kind, id string) (*repository.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	rec, ok := m.records[id]
	if !ok || rec.Kind != kind {
		return nil, fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
	}
	return &rec, nil
}

func (m *Repo) ListRecords(ctx context.Context, kind models.Kind, opts repository.ListOptions) ([]repository.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []repository.Record
	for _, rec := range m.records {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if opts.Newest {
			return out[i].Created > out[j].Created
		}
		return out[i].Created < out[j].Created
	})
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *Repo) UpdateRecord(ctx context.Context, kind models.Kind, id string, body json.RawMessage) (*repository.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	rec, ok := m.records[id]
	if !ok || rec.Kind != kind {
		return nil, fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
	}
	rec.Body = append(json.RawMessage(nil), body...)
	rec.Updated = m.tick()
	m.records[id] = rec
	return &rec, nil
}

func (m *Repo) DeleteRecord(ctx context.Context, kind models.Kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	rec, ok := m.records[id]
	if !ok || rec.Kind != kind {
		return fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
	}
	delete(m.records, id)
	return nil
}

func (m *Repo) CountRecords(ctx context.Context, kind models.Kind) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	var n int64
	for _, rec := range m.records {
		if rec.Kind == kind {
			n++
		}
	}
	return n, nil
}
