package api

import (
	"net/http"
)

type SystemHandler struct{}

func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONRaw(w, map[string]string{"status": "ok", "service": "portfolio"})
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSONRaw(w, map[string]string{"version": version, "buildTime": buildTime})
	}
}
