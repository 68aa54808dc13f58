package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/repository"
)

// RecentLimit is how many records of each kind the dashboard shows.
const RecentLimit = 5

// Dashboard serves entity counts, the most recent records and grouped statistics.
func (h *EntityHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts := map[string]int64{}
	for _, k := range models.Kinds {
		n, err := h.repo.CountRecords(ctx, k)
		if err != nil {
			storeError(w, k, err)
			return
		}
		counts[k.Plural()] = n
	}

	recent := map[string]any{}
	for _, k := range models.Kinds {
		if k == models.KindObjective {
			continue
		}
		recs, err := h.repo.ListRecords(ctx, k, repository.ListOptions{Newest: true, Limit: RecentLimit})
		if err != nil {
			storeError(w, k, err)
			return
		}
		docs, err := renderAll(recs)
		if err != nil {
			storeError(w, k, err)
			return
		}
		recent[k.Plural()] = docs
	}

	skills, err := h.groupBy(r, models.KindSkill, "type")
	if err != nil {
		storeError(w, models.KindSkill, err)
		return
	}
	projects, err := h.groupBy(r, models.KindProject, "projectType")
	if err != nil {
		storeError(w, models.KindProject, err)
		return
	}

	writeData(w, http.StatusOK, "", map[string]any{
		"counts":     counts,
		"recent":     recent,
		"statistics": models.Statistics{Skills: skills, ProjectsByType: projects},
	})
}

// groupBy counts the records of kind by the string value of field, largest
// group first.
func (h *EntityHandler) groupBy(r *http.Request, kind models.Kind, field string) ([]models.GroupCount, error) {
	recs, err := h.repo.ListRecords(r.Context(), kind, repository.ListOptions{})
	if err != nil {
		return nil, err
	}
	counts := map[string]int64{}
	for _, rec := range recs {
		var doc map[string]any
		if err := json.Unmarshal(rec.Body, &doc); err != nil {
			return nil, err
		}
		v, _ := doc[field].(string)
		counts[v]++
	}

	out := make([]models.GroupCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, models.GroupCount{ID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
