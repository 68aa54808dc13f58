package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/repository"
)

func (r *SQLiteRepo) CreateRecord(ctx context.Context, kind models.Kind, body json.RawMessage) (*repository.Record, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%s body is empty", kind)
	}

	ts := now()
	rec := repository.Record{ID: uuid.NewString(), Kind: kind, Body: body, Created: ts, Updated: ts}
	if _, err := r.conn.Exec(ctx, `INSERT INTO entities (id, kind, body, created, updated) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, string(kind), string(body), rec.Created, rec.Updated); err != nil {
		return nil, fmt.Errorf("insert %s: %w", kind, err)
	}
	r.logger.Debug("record created", slog.String("kind", string(kind)), slog.String("id", rec.ID))
	return &rec, nil
}

func (r *SQLiteRepo) GetRecord(ctx context.Context, kind models.Kind, id string) (*repository.Record, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, kind, body, created, updated FROM entities WHERE kind = ? AND id = ?`, string(kind), id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *SQLiteRepo) ListRecords(ctx context.Context, kind models.Kind, opts repository.ListOptions) ([]repository.Record, error) {
	order := "ASC"
	if opts.Newest {
		order = "DESC"
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}
	offset := max(opts.Offset, 0)

	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, kind, body, created, updated FROM entities WHERE kind = ? ORDER BY created `+order+`, rowid `+order+` LIMIT ? OFFSET ?`,
		string(kind), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateRecord(ctx context.Context, kind models.Kind, id string, body json.RawMessage) (*repository.Record, error) {
	res, err := r.conn.Exec(ctx, `UPDATE entities SET body = ?, updated = ? WHERE kind = ? AND id = ?`, string(body), now(), string(kind), id)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", kind, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
	}
	return r.GetRecord(ctx, kind, id)
}

func (r *SQLiteRepo) DeleteRecord(ctx context.Context, kind models.Kind, id string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM entities WHERE kind = ? AND id = ?`, string(kind), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepo) CountRecords(ctx context.Context, kind models.Kind) (int64, error) {
	var cnt int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM entities WHERE kind = ?`, string(kind)).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*repository.Record, error) {
	var (
		rec  repository.Record
		kind string
		body string
	)
	if err := s.Scan(&rec.ID, &kind, &body, &rec.Created, &rec.Updated); err != nil {
		return nil, err
	}
	rec.Kind = models.Kind(kind)
	rec.Body = json.RawMessage(body)
	return &rec, nil
}
