// Package postgres stores portfolio entities in PostgreSQL as JSONB documents.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	dbfs "github.com/garnizeh/portfolio/db"
	"github.com/garnizeh/portfolio/internal/db"
	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/repository"
)

type PostgresRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

var _ repository.EntityRepo = (*PostgresRepo)(nil)

// New connects to the database at connString and checks it is reachable.
func New(ctx context.Context, connString string, maxConns int32, logger *slog.Logger) (*PostgresRepo, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	logger.Info("connected to postgres", slog.Int("max_conns", int(cfg.MaxConns)))
	return &PostgresRepo{pool: pool, logger: logger}, nil
}

func (r *PostgresRepo) Close() {
	r.pool.Close()
}

// Migrate applies the embedded Postgres schema files not yet recorded.
func (r *PostgresRepo) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied BIGINT NOT NULL)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}
	files, err := db.MigrationFiles(dbfs.PostgresMigrations, "postgres")
	if err != nil {
		return err
	}
	for _, fname := range files {
		version := strings.TrimSuffix(fname, path.Ext(fname))
		var count int
		if err := r.pool.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version = $1`, version).Scan(&count); err != nil {
			return fmt.Errorf("scan migration applied count: %w", err)
		}
		if count > 0 {
			continue
		}
		b, err := fs.ReadFile(dbfs.PostgresMigrations, path.Join("postgres", fname))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", fname, err)
		}
		if _, err := r.pool.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("exec migration %s: %w", fname, err)
		}
		if _, err := r.pool.Exec(ctx, `INSERT INTO schema_migrations (version, applied) VALUES ($1, $2)`, version, time.Now().Unix()); err != nil {
			return fmt.Errorf("record migration %s: %w", fname, err)
		}
		r.logger.Info("migration applied", slog.String("version", version))
	}
	return nil
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

func (r *PostgresRepo) CreateRecord(ctx context.Context, kind models.Kind, body json.RawMessage) (*repository.Record, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%s body is empty", kind)
	}
	ts := now()
	rec := repository.Record{ID: uuid.NewString(), Kind: kind, Body: body, Created: ts, Updated: ts}
	if _, err := r.pool.Exec(ctx, `INSERT INTO entities (id, kind, body, created, updated) VALUES ($1, $2, $3::jsonb, $4, $5)`,
		rec.ID, string(kind), string(body), rec.Created, rec.Updated); err != nil {
		return nil, fmt.Errorf("insert %s: %w", kind, err)
	}
	return &rec, nil
}

func (r *PostgresRepo) GetRecord(ctx context.Context, kind models.Kind, id string) (*repository.Record, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, kind, body::text, created, updated FROM entities WHERE kind = $1 AND id = $2`, string(kind), id)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
	}
	return rec, err
}

func (r *PostgresRepo) ListRecords(ctx context.Context, kind models.Kind, opts repository.ListOptions) ([]repository.Record, error) {
	order := "ASC"
	if opts.Newest {
		order = "DESC"
	}
	q := `SELECT id, kind, body::text, created, updated FROM entities WHERE kind = $1 ORDER BY created ` + order + `, id ` + order + ` OFFSET $2`
	args := []any{string(kind), max(opts.Offset, 0)}
	if opts.Limit > 0 {
		q += ` LIMIT $3`
		args = append(args, opts.Limit)
	}

	rows, err := r.pool.Query(ctx, q, args...)
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

func (r *PostgresRepo) UpdateRecord(ctx context.Context, kind models.Kind, id string, body json.RawMessage) (*repository.Record, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE entities SET body = $1::jsonb, updated = $2 WHERE kind = $3 AND id = $4`, string(body), now(), string(kind), id)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
	}
	return r.GetRecord(ctx, kind, id)
}

func (r *PostgresRepo) DeleteRecord(ctx context.Context, kind models.Kind, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM entities WHERE kind = $1 AND id = $2`, string(kind), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
	}
	return nil
}

func (r *PostgresRepo) CountRecords(ctx context.Context, kind models.Kind) (int64, error) {
	var cnt int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM entities WHERE kind = $1`, string(kind)).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func scanRecord(row pgx.Row) (*repository.Record, error) {
	var (
		rec  repository.Record
		kind string
		body string
	)
	if err := row.Scan(&rec.ID, &kind, &body, &rec.Created, &rec.Updated); err != nil {
		return nil, err
	}
	rec.Kind = models.Kind(kind)
	rec.Body = json.RawMessage(body)
	return &rec, nil
}
