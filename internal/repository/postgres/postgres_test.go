package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/garnizeh/portfolio/internal/repository/postgres"
	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/repository"
)

// setupRepo connects to PORTFOLIO_TEST_DATABASE_URL. The tests are skipped
// when it is not set.
func setupRepo(t *testing.T) *postgres.PostgresRepo {
	t.Helper()
	url := os.Getenv("PORTFOLIO_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("PORTFOLIO_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	repo, err := postgres.New(ctx, url, 2, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(repo.Close)
	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repo
}

func TestNew_BadConnString(t *testing.T) {
	if _, err := postgres.New(context.Background(), "::not a url::", 1, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRecordLifecycle(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	rec, err := repo.CreateRecord(ctx, models.KindCertificate, json.RawMessage(`{"title":"CKA","description":"k8s"}`))
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	t.Cleanup(func() { _ = repo.DeleteRecord(context.Background(), models.KindCertificate, rec.ID) })

	got, err := repo.GetRecord(ctx, models.KindCertificate, rec.ID)
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	var body map[string]string
	if err := json.Unmarshal(got.Body, &body); err != nil || body["title"] != "CKA" {
		t.Fatalf("unexpected body %s (%v)", got.Body, err)
	}

	if _, err := repo.UpdateRecord(ctx, models.KindCertificate, rec.ID, json.RawMessage(`{"title":"CKAD"}`)); err != nil {
		t.Fatalf("UpdateRecord: %v", err)
	}
	list, err := repo.ListRecords(ctx, models.KindCertificate, repository.ListOptions{Newest: true, Limit: 1})
	if err != nil || len(list) != 1 {
		t.Fatalf("ListRecords: %v %#v", err, list)
	}

	if err := repo.DeleteRecord(ctx, models.KindCertificate, rec.ID); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
	if _, err := repo.GetRecord(ctx, models.KindCertificate, rec.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
