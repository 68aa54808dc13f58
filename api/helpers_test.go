package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/portfolio/api"
	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/internal/storage"
	"github.com/garnizeh/portfolio/internal/validation"
	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/repository/mock"
)

const testSecret = "testsecret"

func TestMain(m *testing.M) {
	api.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

type testServer struct {
	*httptest.Server
	repo     *mock.Repo
	filesDir string
	token    string
	cfg      *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cfg := &config.Config{
		JWTSecret:     testSecret,
		TokenDuration: time.Hour,
		Admin:         config.AdminConfig{Username: "admin", PasswordHash: string(hash)},
		Storage:       config.StorageConfig{MaxUploadBytes: 1 << 20},
	}

	dir := t.TempDir()
	files, err := storage.NewLocal(dir, cfg.Storage.MaxUploadBytes, nil)
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	v, err := validation.New()
	if err != nil {
		t.Fatalf("validation: %v", err)
	}
	repo := mock.New()
	router := api.SetupRoutes(cfg, "test", "now", api.Deps{Repo: repo, Files: files, FilesDir: dir, Validator: v})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	token, err := api.IssueToken(testSecret, "admin", time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return &testServer{Server: srv, repo: repo, filesDir: dir, token: token, cfg: cfg}
}

// call sends body as JSON (nil for none) and decodes the envelope.
func (s *testServer) call(t *testing.T, method, path string, body any, auth bool) (int, models.Envelope[json.RawMessage]) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.URL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	res, err := s.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	var env models.Envelope[json.RawMessage]
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return res.StatusCode, env
}

// keyed decodes env.Data[key] into out.
func keyed(t *testing.T, env models.Envelope[json.RawMessage], key string, out any) {
	t.Helper()
	var data map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v (%s)", err, env.Data)
	}
	if err := json.Unmarshal(data[key], out); err != nil {
		t.Fatalf("decode %s: %v (%s)", key, err, data[key])
	}
}
