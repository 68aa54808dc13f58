package portfolio_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/portfolio"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *portfolio.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := config.ClientConfig{
		APIURL:   srv.URL + "/api",
		AdminURL: srv.URL + "/admin",
		ImageURL: srv.URL + "/uploads",
		Timeout:  2 * time.Second,
		Token:    "tok",
	}
	c, err := portfolio.NewClient(cfg, srv.Client())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func writeEnvelope(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNewClient_InvalidURL(t *testing.T) {
	if _, err := portfolio.NewClient(config.ClientConfig{APIURL: "nope", AdminURL: "http://x/admin"}, nil); err == nil {
		t.Fatalf("expected error for invalid api url")
	}
}

func TestResource_Create(t *testing.T) {
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/admin/skills" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeEnvelope(w, http.StatusCreated, `{"success":true,"data":{"skill":{"_id":"s1","name":"Go","type":"Tools"}}}`)
	})

	s, err := c.Skills().Create(context.Background(), models.SkillInput{Name: "Go", Type: models.SkillTools})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.ID != "s1" || s.Name != "Go" {
		t.Fatalf("unexpected skill: %#v", s)
	}
	if gotBody["name"] != "Go" || gotBody["type"] != "Tools" {
		t.Fatalf("unexpected request body: %#v", gotBody)
	}
}

func TestResource_UpdateOmitsAbsentFields(t *testing.T) {
	var raw map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/admin/users/u1" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&raw)
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"user":{"_id":"u1","firstName":"Ada","lastName":"L","role":"admin"}}}`)
	})

	_, err := c.Users().Update(context.Background(), "u1", models.UserInput{FirstName: "Ada", LastName: "L", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, ok := raw["socialLinks"]; ok {
		t.Fatalf("expected socialLinks to be absent, got %#v", raw)
	}
}

func TestResource_GetAndList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/admin/certificates/c1":
			writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"certificate":{"_id":"c1","title":"T","description":"D","photo":"p.jpg"}}}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/certificate":
			writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"certificates":[{"_id":"c1"},{"_id":"c2"}]}}`)
		case r.Method == http.MethodGet && r.URL.Path == "/admin/objective/o1":
			writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"objective":{"_id":"o1","bio":"b"}}}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	cert, err := c.Certificates().Get(ctx, "c1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if cert.Photo != "p.jpg" {
		t.Fatalf("unexpected certificate: %#v", cert)
	}

	list, err := c.Certificates().List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 certificates, got %d", len(list))
	}

	obj, err := c.Objectives().Get(ctx, "o1")
	if err != nil || obj.Bio != "b" {
		t.Fatalf("objective Get: %v %#v", err, obj)
	}
}

func TestClient_UnsuccessfulEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, `{"success":false,"message":"duplicate title"}`)
	})

	_, err := c.Projects().Create(context.Background(), models.ProjectInput{Title: "x"})
	if !errors.Is(err, portfolio.ErrUnsuccessful) {
		t.Fatalf("expected ErrUnsuccessful, got %v", err)
	}
	if got := portfolio.Message(err); got != "duplicate title" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestClient_StatusErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "NotFound", status: http.StatusNotFound, body: `{"success":false,"message":"Skill not found"}`, wantMsg: "Skill not found"},
		{name: "Validation", status: http.StatusBadRequest, body: `{"success":false,"message":"Validation failed","errors":[{"field":"name","message":"required"}]}`, wantMsg: "Validation failed"},
		{name: "ServerNoBody", status: http.StatusInternalServerError, body: ``, wantMsg: "Unknown error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, tc.status, tc.body)
			})
			_, err := c.Skills().Get(context.Background(), "s1")
			var apiErr *portfolio.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.StatusCode != tc.status {
				t.Fatalf("status: want %d got %d", tc.status, apiErr.StatusCode)
			}
			if got := portfolio.Message(err); got != tc.wantMsg {
				t.Fatalf("message: want %q got %q", tc.wantMsg, got)
			}
		})
	}
}

func TestClient_MissingData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{}}`)
	})
	if _, err := c.Skills().Create(context.Background(), models.SkillInput{}); !errors.Is(err, portfolio.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	cfg := config.ClientConfig{APIURL: srv.URL + "/api", AdminURL: srv.URL + "/admin", Timeout: time.Second}
	c, err := portfolio.NewClient(cfg, srv.Client())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	srv.Close()

	err = c.Delete(context.Background(), models.KindSkill, "s1")
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if got := portfolio.Message(err); got != "Unknown error" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestClient_DeleteAndDashboard(t *testing.T) {
	var deleted string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete:
			deleted = r.URL.Path
			writeEnvelope(w, http.StatusOK, `{"success":true,"message":"deleted"}`)
		case r.URL.Path == "/admin/dashboard":
			writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"counts":{"skills":3,"users":1},"recent":{"skills":[{"_id":"s1","name":"Go"}]},"statistics":{"skills":[{"_id":"Tools","count":3}],"projectsByType":[]}}}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	if err := c.Delete(ctx, models.KindObjective, "o1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != "/admin/objective/o1" {
		t.Fatalf("unexpected delete path %q", deleted)
	}

	d, err := c.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if d.Counts.Skills != 3 || len(d.Recent.Skills) != 1 || d.Statistics.Skills[0].ID != "Tools" {
		t.Fatalf("unexpected dashboard: %#v", d)
	}
}

func TestClient_PublicUserReads(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/profile":
			writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"user":{"_id":"u1","firstName":"Ada"}}}`)
		case "/api/user/profile/u2":
			writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"user":{"_id":"u2"}}}`)
		case "/api/user/list":
			query = r.URL.RawQuery
			writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"users":[{"_id":"u1"}],"pagination":{"currentPage":2,"totalPages":3,"totalUsers":21,"hasNextPage":true,"hasPrevPage":true}}}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	if u, err := c.Profile(ctx); err != nil || u.FirstName != "Ada" {
		t.Fatalf("Profile: %v %#v", err, u)
	}
	if u, err := c.ProfileByID(ctx, "u2"); err != nil || u.ID != "u2" {
		t.Fatalf("ProfileByID: %v %#v", err, u)
	}
	page, err := c.ListUsers(ctx, models.UserQuery{Page: 2, Limit: 10, Search: "ad", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if query != "limit=10&page=2&role=admin&search=ad" {
		t.Fatalf("unexpected query %q", query)
	}
	if page.Pagination.TotalUsers != 21 || !page.Pagination.HasNextPage {
		t.Fatalf("unexpected pagination %#v", page.Pagination)
	}
}

func TestClient_Login(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			writeEnvelope(w, http.StatusOK, `{"success":true,"data":{"token":"fresh"}}`)
		default:
			auth = r.Header.Get("Authorization")
			writeEnvelope(w, http.StatusOK, `{"success":true}`)
		}
	})
	ctx := context.Background()

	tok, err := c.Login(ctx, "admin", "pw")
	if err != nil || tok != "fresh" {
		t.Fatalf("Login: %v %q", err, tok)
	}
	if err := c.Delete(ctx, models.KindSkill, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if auth != "Bearer fresh" {
		t.Fatalf("expected new token to be used, got %q", auth)
	}
}

func TestImageURL(t *testing.T) {
	cases := []struct{ base, file, want string }{
		{"http://h/uploads", "a.jpg", "http://h/uploads/a.jpg"},
		{"http://h/uploads/", "/a.jpg", "http://h/uploads/a.jpg"},
		{"http://h/uploads", "///a.jpg", "http://h/uploads/a.jpg"},
		{"http://h/uploads", "", ""},
	}
	for _, c := range cases {
		if got := portfolio.ImageURL(c.base, c.file); got != c.want {
			t.Fatalf("ImageURL(%q,%q) = %q, want %q", c.base, c.file, got, c.want)
		}
	}
}
