package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/garnizeh/portfolio/pkg/models"
)

func TestEntities_AdminRequiresToken(t *testing.T) {
	s := newTestServer(t)
	status, env := s.call(t, http.MethodGet, "/admin/skills", nil, false)
	if status != http.StatusUnauthorized || env.Success {
		t.Fatalf("expected 401 envelope, got %d %#v", status, env)
	}
}

func TestEntities_CRUD(t *testing.T) {
	s := newTestServer(t)

	status, env := s.call(t, http.MethodPost, "/admin/skills", map[string]any{"name": "Go", "type": "Tools", "_id": "forged"}, true)
	if status != http.StatusCreated || !env.Success {
		t.Fatalf("create: %d %#v", status, env)
	}
	var created models.Skill
	keyed(t, env, "skill", &created)
	if created.ID == "" || created.ID == "forged" || created.Name != "Go" || created.CreatedAt.IsZero() {
		t.Fatalf("unexpected created skill %#v", created)
	}

	status, env = s.call(t, http.MethodGet, "/admin/skills/"+created.ID, nil, true)
	if status != http.StatusOK {
		t.Fatalf("get: %d %#v", status, env)
	}

	status, env = s.call(t, http.MethodPut, "/admin/skills/"+created.ID, map[string]any{"name": "Golang"}, true)
	if status != http.StatusOK {
		t.Fatalf("update: %d %#v", status, env)
	}
	var updated models.Skill
	keyed(t, env, "skill", &updated)
	if updated.Name != "Golang" || updated.Type != "Tools" {
		t.Fatalf("update must merge over stored fields, got %#v", updated)
	}

	status, env = s.call(t, http.MethodGet, "/api/skill", nil, false)
	if status != http.StatusOK {
		t.Fatalf("public list: %d", status)
	}
	var list []models.Skill
	keyed(t, env, "skills", &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(list))
	}

	status, env = s.call(t, http.MethodDelete, "/admin/skills/"+created.ID, nil, true)
	if status != http.StatusOK || env.Message != "Skill deleted successfully" {
		t.Fatalf("delete: %d %#v", status, env)
	}
	status, env = s.call(t, http.MethodGet, "/admin/skills/"+created.ID, nil, true)
	if status != http.StatusNotFound || env.Message != "Skill not found" {
		t.Fatalf("expected 404 after delete, got %d %#v", status, env)
	}
}

func TestEntities_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	status, env := s.call(t, http.MethodPost, "/admin/projects", map[string]any{"title": "x", "projectType": "hobby"}, true)
	if status != http.StatusBadRequest || env.Success {
		t.Fatalf("expected 400, got %d", status)
	}
	if env.Message != "Validation failed" || len(env.Errors) == 0 {
		t.Fatalf("expected field errors, got %#v", env)
	}
	if n, _ := s.repo.CountRecords(t.Context(), models.KindProject); n != 0 {
		t.Fatalf("invalid body must not be stored")
	}

	status, _ = s.call(t, http.MethodPut, "/admin/projects/missing", map[string]any{"title": "x"}, true)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", status)
	}
}

func TestEntities_ObjectiveSingleton(t *testing.T) {
	s := newTestServer(t)

	if status, _ := s.call(t, http.MethodGet, "/api/objective", nil, false); status != http.StatusNotFound {
		t.Fatalf("expected 404 without objective, got %d", status)
	}
	for _, bio := range []string{"first", "second"} {
		if status, env := s.call(t, http.MethodPost, "/admin/objective", map[string]any{"bio": bio}, true); status != http.StatusCreated {
			t.Fatalf("create objective: %d %#v", status, env)
		}
	}
	status, env := s.call(t, http.MethodGet, "/api/objective", nil, false)
	if status != http.StatusOK {
		t.Fatalf("get objective: %d", status)
	}
	var o models.Objective
	keyed(t, env, "objective", &o)
	if o.Bio != "second" {
		t.Fatalf("expected the latest objective, got %q", o.Bio)
	}
}

func TestUsers_ProfileAndList(t *testing.T) {
	s := newTestServer(t)

	if status, _ := s.call(t, http.MethodGet, "/api/user/profile", nil, false); status != http.StatusNotFound {
		t.Fatalf("expected 404 without users, got %d", status)
	}

	users := []map[string]any{
		{"firstName": "Bob", "lastName": "Builder", "role": "user"},
		{"firstName": "Ada", "lastName": "Lovelace", "role": "admin"},
		{"firstName": "Alan", "lastName": "Turing", "role": "user"},
	}
	for _, u := range users {
		if status, env := s.call(t, http.MethodPost, "/admin/users", u, true); status != http.StatusCreated {
			t.Fatalf("create user: %d %#v", status, env)
		}
	}

	_, env := s.call(t, http.MethodGet, "/api/user/profile", nil, false)
	var owner models.User
	keyed(t, env, "user", &owner)
	if owner.FirstName != "Ada" || owner.FullName != "Ada Lovelace" {
		t.Fatalf("expected the admin as owner, got %#v", owner)
	}

	_, env = s.call(t, http.MethodGet, "/api/user/profile/"+owner.ID, nil, false)
	var byID models.User
	keyed(t, env, "user", &byID)
	if byID.ID != owner.ID {
		t.Fatalf("unexpected profile by id %#v", byID)
	}

	status, env := s.call(t, http.MethodGet, "/api/user/list?page=1&limit=1&role=user", nil, false)
	if status != http.StatusOK {
		t.Fatalf("list users: %d", status)
	}
	var page models.UserPage
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Users) != 1 || page.Pagination.TotalUsers != 2 || page.Pagination.TotalPages != 2 || !page.Pagination.HasNextPage || page.Pagination.HasPrevPage {
		t.Fatalf("unexpected page %#v", page)
	}

	_, env = s.call(t, http.MethodGet, "/api/user/list?search=TUR", nil, false)
	page = models.UserPage{}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Users) != 1 || page.Users[0].LastName != "Turing" {
		t.Fatalf("unexpected search result %#v", page.Users)
	}

	status, env = s.call(t, http.MethodGet, "/api/user/list?page=2305843009213693953&limit=4", nil, false)
	if status != http.StatusOK {
		t.Fatalf("page past the end: %d %#v", status, env)
	}
	page = models.UserPage{}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Users) != 0 || page.Pagination.HasNextPage || !page.Pagination.HasPrevPage || page.Pagination.TotalUsers != 3 {
		t.Fatalf("unexpected page past the end %#v", page)
	}
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t)
	skills := []map[string]any{
		{"name": "Go", "type": "Programming Languages"},
		{"name": "Rust", "type": "Programming Languages"},
		{"name": "Git", "type": "Tools"},
	}
	for _, b := range skills {
		if status, _ := s.call(t, http.MethodPost, "/admin/skills", b, true); status != http.StatusCreated {
			t.Fatalf("create skill: %d", status)
		}
	}
	if status, _ := s.call(t, http.MethodPost, "/admin/objective", map[string]any{"bio": "hi"}, true); status != http.StatusCreated {
		t.Fatalf("create objective: %d", status)
	}

	status, env := s.call(t, http.MethodGet, "/admin/dashboard", nil, true)
	if status != http.StatusOK {
		t.Fatalf("dashboard: %d", status)
	}
	var d models.Dashboard
	if err := json.Unmarshal(env.Data, &d); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if d.Counts.Skills != 3 || d.Counts.Objectives != 1 || d.Counts.Users != 0 {
		t.Fatalf("unexpected counts %#v", d.Counts)
	}
	if len(d.Recent.Skills) != 3 || d.Recent.Skills[0].Name != "Git" {
		t.Fatalf("expected newest skills first, got %#v", d.Recent.Skills)
	}
	want := []models.GroupCount{{ID: "Programming Languages", Count: 2}, {ID: "Tools", Count: 1}}
	if len(d.Statistics.Skills) != 2 || d.Statistics.Skills[0] != want[0] || d.Statistics.Skills[1] != want[1] {
		t.Fatalf("unexpected statistics %#v", d.Statistics.Skills)
	}
}
