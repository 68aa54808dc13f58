package api

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/portfolio/internal/storage"
	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/upload"
)

// MaxGalleryPhotos caps the competition gallery.
const MaxGalleryPhotos = 7

// UploadSingle stores the "image" part and records its name under field,
// replacing the previous file.
func (h *EntityHandler) UploadSingle(kind models.Kind, field string, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if !h.parseMultipart(w, r, kind, id, maxBytes) {
			return
		}
		headers := r.MultipartForm.File[upload.FieldSingle]
		if len(headers) == 0 {
			writeError(w, http.StatusBadRequest, "No file uploaded")
			return
		}

		names, ok := h.saveParts(w, r, headers[:1])
		if !ok {
			return
		}
		var previous string
		rec, err := h.patch(r.Context(), kind, id, func(doc map[string]any) {
			previous, _ = doc[field].(string)
			doc[field] = names[0]
		})
		if err != nil {
			h.removeFiles(r.Context(), names...)
			storeError(w, kind, err)
			return
		}
		h.removeFiles(r.Context(), previous)
		logger.Info("photo uploaded", slog.String("kind", string(kind)), slog.String("id", id), slog.String("file", names[0]))
		h.respond(w, http.StatusOK, "Photo uploaded successfully", rec)
	}
}

// UploadGallery stores the "images" parts as the new photos of a competition.
func (h *EntityHandler) UploadGallery(maxBytes int64) http.HandlerFunc {
	kind := models.KindCompetition
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if !h.parseMultipart(w, r, kind, id, maxBytes*MaxGalleryPhotos) {
			return
		}
		headers := r.MultipartForm.File[upload.FieldMultiple]
		if len(headers) == 0 {
			writeError(w, http.StatusBadRequest, "No files uploaded")
			return
		}
		if len(headers) > MaxGalleryPhotos {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Maximum %d photos allowed", MaxGalleryPhotos))
			return
		}

		names, ok := h.saveParts(w, r, headers)
		if !ok {
			return
		}
		var previous []string
		rec, err := h.patch(r.Context(), kind, id, func(doc map[string]any) {
			previous = stringList(doc["photos"])
			doc["photos"] = names
		})
		if err != nil {
			h.removeFiles(r.Context(), names...)
			storeError(w, kind, err)
			return
		}
		h.removeFiles(r.Context(), previous...)
		logger.Info("gallery uploaded", slog.String("id", id), slog.Int("files", len(names)))
		h.respond(w, http.StatusOK, "Photos uploaded successfully", rec)
	}
}

// parseMultipart checks the record exists before reading the form.
func (h *EntityHandler) parseMultipart(w http.ResponseWriter, r *http.Request, kind models.Kind, id string, maxBytes int64) bool {
	if _, err := h.repo.GetRecord(r.Context(), kind, id); err != nil {
		storeError(w, kind, err)
		return false
	}
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return false
	}
	return true
}

// saveParts stores every part or none of them.
func (h *EntityHandler) saveParts(w http.ResponseWriter, r *http.Request, headers []*multipart.FileHeader) ([]string, bool) {
	names := make([]string, 0, len(headers))
	for _, fh := range headers {
		name, err := h.savePart(r, fh)
		if err != nil {
			h.removeFiles(r.Context(), names...)
			switch {
			case errors.Is(err, storage.ErrUnsupportedType):
				writeError(w, http.StatusBadRequest, "Only image files are allowed")
			case errors.Is(err, storage.ErrTooLarge):
				writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			default:
				logger.Error("store upload", slog.String("file", fh.Filename), slog.Any("err", err))
				writeError(w, http.StatusInternalServerError, "Error uploading file")
			}
			return nil, false
		}
		names = append(names, name)
	}
	return names, true
}

func (h *EntityHandler) savePart(r *http.Request, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.files.Save(r.Context(), fh.Filename, f)
}
