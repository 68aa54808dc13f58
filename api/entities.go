package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/garnizeh/portfolio/internal/validation"
	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/repository"
)

const maxJSONBody = 1 << 20

// server owned keys never taken from a request body; the upload endpoints
// own the stored file names
var reservedKeys = []string{"_id", "createdAt", "updatedAt", "fullName", "photo", "mainPhoto"}

// FileStore is where uploaded images live.
type FileStore interface {
	Save(ctx context.Context, original string, r io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
}

// EntityHandler serves the CRUD endpoints shared by every entity kind.
type EntityHandler struct {
	repo      repository.EntityRepo
	validator *validation.Validator
	files     FileStore

	// serializes read-modify-write of stored documents
	patchMu sync.Mutex
}

func NewEntityHandler(repo repository.EntityRepo, v *validation.Validator, files FileStore) *EntityHandler {
	return &EntityHandler{repo: repo, validator: v, files: files}
}

// render turns a stored record into its JSON document.
func render(rec *repository.Record) (map[string]any, error) {
	doc := map[string]any{}
	if err := json.Unmarshal(rec.Body, &doc); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", rec.Kind, rec.ID, err)
	}
	doc["_id"] = rec.ID
	doc["createdAt"] = time.UnixMilli(rec.Created).UTC().Format(time.RFC3339Nano)
	doc["updatedAt"] = time.UnixMilli(rec.Updated).UTC().Format(time.RFC3339Nano)
	if rec.Kind == models.KindUser {
		first, _ := doc["firstName"].(string)
		last, _ := doc["lastName"].(string)
		doc["fullName"] = first + " " + last
	}
	return doc, nil
}

func renderAll(recs []repository.Record) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(recs))
	for i := range recs {
		doc, err := render(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// readBody decodes a JSON object body, checks it against the kind's schema and
// drops server owned keys. It writes the error response itself and returns
// nil when the request was rejected.
func (h *EntityHandler) readBody(w http.ResponseWriter, r *http.Request, kind models.Kind, partial bool) map[string]any {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return nil
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil
	}
	for _, k := range reservedKeys {
		delete(doc, k)
	}
	clean, _ := json.Marshal(doc)

	errs, err := h.validator.Validate(r.Context(), kind, clean, partial)
	if err != nil {
		logger.Error("validate request", slog.String("kind", string(kind)), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return nil
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return nil
	}
	return doc
}

// storeError maps a repository error to a response.
func storeError(w http.ResponseWriter, kind models.Kind, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, kind.Title()+" not found")
		return
	}
	logger.Error("store", slog.String("kind", string(kind)), slog.Any("err", err))
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func (h *EntityHandler) List(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := h.repo.ListRecords(r.Context(), kind, repository.ListOptions{})
		if err != nil {
			storeError(w, kind, err)
			return
		}
		docs, err := renderAll(recs)
		if err != nil {
			storeError(w, kind, err)
			return
		}
		writeData(w, http.StatusOK, "", keyed(kind.Plural(), docs))
	}
}

func (h *EntityHandler) Get(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := h.repo.GetRecord(r.Context(), kind, mux.Vars(r)["id"])
		if err != nil {
			storeError(w, kind, err)
			return
		}
		h.respond(w, http.StatusOK, "", rec)
	}
}

// Latest serves the most recent record of kind, used for singletons.
func (h *EntityHandler) Latest(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := h.repo.ListRecords(r.Context(), kind, repository.ListOptions{Newest: true, Limit: 1})
		if err != nil {
			storeError(w, kind, err)
			return
		}
		if len(recs) == 0 {
			writeError(w, http.StatusNotFound, kind.Title()+" not found")
			return
		}
		h.respond(w, http.StatusOK, "", &recs[0])
	}
}

func (h *EntityHandler) Create(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := h.readBody(w, r, kind, false)
		if doc == nil {
			return
		}
		// a new record owns no gallery files yet
		delete(doc, "photos")
		body, err := json.Marshal(doc)
		if err != nil {
			storeError(w, kind, err)
			return
		}
		rec, err := h.repo.CreateRecord(r.Context(), kind, body)
		if err != nil {
			storeError(w, kind, err)
			return
		}
		logger.Info("entity created", slog.String("kind", string(kind)), slog.String("id", rec.ID))
		h.respond(w, http.StatusCreated, kind.Title()+" created successfully", rec)
	}
}

// Update merges the top level keys of the body over the stored record.
func (h *EntityHandler) Update(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		doc := h.readBody(w, r, kind, true)
		if doc == nil {
			return
		}
		var dropped []string
		rec, err := h.patch(r.Context(), kind, id, func(stored map[string]any) {
			if requested, ok := doc["photos"]; ok {
				doc["photos"], dropped = ownPhotos(stored["photos"], requested)
			}
			for k, v := range doc {
				stored[k] = v
			}
		})
		if err != nil {
			storeError(w, kind, err)
			return
		}
		h.removeFiles(r.Context(), dropped...)
		h.respond(w, http.StatusOK, kind.Title()+" updated successfully", rec)
	}
}

func (h *EntityHandler) Delete(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := mux.Vars(r)["id"]
		rec, err := h.repo.GetRecord(ctx, kind, id)
		if err != nil {
			storeError(w, kind, err)
			return
		}
		if err := h.repo.DeleteRecord(ctx, kind, id); err != nil {
			storeError(w, kind, err)
			return
		}
		h.removeFiles(ctx, photoNames(rec.Body)...)
		logger.Info("entity deleted", slog.String("kind", string(kind)), slog.String("id", id))
		writeData(w, http.StatusOK, kind.Title()+" deleted successfully", nil)
	}
}

// patch loads a record, lets fn edit its document and stores the result.
func (h *EntityHandler) patch(ctx context.Context, kind models.Kind, id string, fn func(doc map[string]any)) (*repository.Record, error) {
	h.patchMu.Lock()
	defer h.patchMu.Unlock()

	rec, err := h.repo.GetRecord(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	stored := map[string]any{}
	if err := json.Unmarshal(rec.Body, &stored); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", kind, id, err)
	}
	fn(stored)
	body, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}
	return h.repo.UpdateRecord(ctx, kind, id, body)
}

func (h *EntityHandler) respond(w http.ResponseWriter, status int, message string, rec *repository.Record) {
	doc, err := render(rec)
	if err != nil {
		storeError(w, rec.Kind, err)
		return
	}
	writeData(w, status, message, keyed(rec.Kind.Key(), doc))
}

func (h *EntityHandler) removeFiles(ctx context.Context, names ...string) {
	if h.files == nil {
		return
	}
	for _, n := range names {
		if n == "" {
			continue
		}
		if err := h.files.Delete(ctx, n); err != nil {
			logger.Warn("remove stored file", slog.String("name", n), slog.Any("err", err))
		}
	}
}

// ownPhotos keeps the requested gallery names the record already stores, in
// the requested order, and returns the stored names that were left out.
func ownPhotos(stored, requested any) (kept, dropped []string) {
	owned := map[string]bool{}
	for _, n := range stringList(stored) {
		owned[n] = true
	}
	kept = []string{}
	for _, n := range stringList(requested) {
		if owned[n] {
			kept = append(kept, n)
			delete(owned, n)
		}
	}
	for _, n := range stringList(stored) {
		if owned[n] {
			dropped = append(dropped, n)
		}
	}
	return kept, dropped
}

func stringList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// photoNames lists the stored file names referenced by a record body.
func photoNames(body json.RawMessage) []string {
	var doc struct {
		Photo     string   `json:"photo"`
		MainPhoto string   `json:"mainPhoto"`
		Photos    []string `json:"photos"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil
	}
	var out []string
	for _, n := range append([]string{doc.Photo, doc.MainPhoto}, doc.Photos...) {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
