package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Profile serves the portfolio owner: the oldest admin, or the oldest user
// when there is no admin.
func (h *EntityHandler) Profile(w http.ResponseWriter, r *http.Request) {
	recs, err := h.repo.ListRecords(r.Context(), models.KindUser, repository.ListOptions{})
	if err != nil {
		storeError(w, models.KindUser, err)
		return
	}
	if len(recs) == 0 {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	owner := &recs[0]
	for i := range recs {
		if userRole(recs[i]) == models.RoleAdmin {
			owner = &recs[i]
			break
		}
	}
	h.respond(w, http.StatusOK, "", owner)
}

func (h *EntityHandler) ProfileByID(w http.ResponseWriter, r *http.Request) {
	rec, err := h.repo.GetRecord(r.Context(), models.KindUser, mux.Vars(r)["id"])
	if err != nil {
		storeError(w, models.KindUser, err)
		return
	}
	h.respond(w, http.StatusOK, "", rec)
}

// ListUsers pages through users, filtered by a case insensitive name search
// and an optional role.
func (h *EntityHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := positiveInt(q.Get("page"), 1)
	limit := min(positiveInt(q.Get("limit"), defaultPageSize), maxPageSize)
	search := strings.ToLower(strings.TrimSpace(q.Get("search")))
	role := models.Role(q.Get("role"))

	recs, err := h.repo.ListRecords(r.Context(), models.KindUser, repository.ListOptions{Newest: true})
	if err != nil {
		storeError(w, models.KindUser, err)
		return
	}
	docs, err := renderAll(recs)
	if err != nil {
		storeError(w, models.KindUser, err)
		return
	}

	matched := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		if role != "" && d["role"] != string(role) {
			continue
		}
		if search != "" {
			first, _ := d["firstName"].(string)
			last, _ := d["lastName"].(string)
			if !strings.Contains(strings.ToLower(first), search) && !strings.Contains(strings.ToLower(last), search) {
				continue
			}
		}
		matched = append(matched, d)
	}

	total := len(matched)
	pages := (total + limit - 1) / limit
	start := total
	if page <= pages {
		start = (page - 1) * limit
	}
	end := min(start+limit, total)

	writeData(w, http.StatusOK, "", map[string]any{
		"users": matched[start:end],
		"pagination": models.Pagination{
			CurrentPage: page,
			TotalPages:  pages,
			TotalUsers:  int64(total),
			HasNextPage: page < pages,
			HasPrevPage: page > 1,
		},
	})
}

func userRole(rec repository.Record) models.Role {
	var doc struct {
		Role models.Role `json:"role"`
	}
	_ = json.Unmarshal(rec.Body, &doc)
	return doc.Role
}

func positiveInt(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return def
}
