package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/portfolio/internal/config"
	"github.com/garnizeh/portfolio/internal/validation"
	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/repository"
)

// Deps are the collaborators behind the routes.
type Deps struct {
	Repo      repository.EntityRepo
	Files     FileStore
	FilesDir  string
	Validator *validation.Validator
}

func SetupRoutes(cfg *config.Config, version, buildTime string, deps Deps) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(cfg.Admin.Username, cfg.Admin.PasswordHash, cfg.JWTSecret, cfg.TokenDuration)
	entities := NewEntityHandler(deps.Repo, deps.Validator, deps.Files)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods(http.MethodGet)
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods(http.MethodGet)
	if deps.FilesDir != "" {
		r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.FilesDir)))).Methods(http.MethodGet)
	}

	public := r.PathPrefix("/api").Subrouter()
	public.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/user/profile", entities.Profile).Methods(http.MethodGet)
	public.HandleFunc("/user/profile/{id}", entities.ProfileByID).Methods(http.MethodGet)
	public.HandleFunc("/user/list", entities.ListUsers).Methods(http.MethodGet)
	public.HandleFunc("/objective", entities.Latest(models.KindObjective)).Methods(http.MethodGet)
	for _, k := range models.Kinds {
		if k == models.KindUser || k == models.KindObjective {
			continue
		}
		public.HandleFunc("/"+k.PublicPath(), entities.List(k)).Methods(http.MethodGet)
	}

	// Admin routes
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))
	admin.HandleFunc("/dashboard", entities.Dashboard).Methods(http.MethodGet)
	for _, k := range models.Kinds {
		base := "/" + k.AdminPath()
		admin.HandleFunc(base, entities.List(k)).Methods(http.MethodGet)
		admin.HandleFunc(base, entities.Create(k)).Methods(http.MethodPost)
		admin.HandleFunc(base+"/{id}", entities.Get(k)).Methods(http.MethodGet)
		admin.HandleFunc(base+"/{id}", entities.Update(k)).Methods(http.MethodPut)
		admin.HandleFunc(base+"/{id}", entities.Delete(k)).Methods(http.MethodDelete)
	}

	maxUpload := cfg.Storage.MaxUploadBytes
	admin.HandleFunc("/users/{id}/upload-photo", entities.UploadSingle(models.KindUser, "photo", maxUpload)).Methods(http.MethodPost)
	admin.HandleFunc("/certificates/{id}/upload-photo", entities.UploadSingle(models.KindCertificate, "photo", maxUpload)).Methods(http.MethodPost)
	admin.HandleFunc("/competitions/{id}/upload-main-photo", entities.UploadSingle(models.KindCompetition, "mainPhoto", maxUpload)).Methods(http.MethodPost)
	admin.HandleFunc("/competitions/{id}/upload-photos", entities.UploadGallery(maxUpload)).Methods(http.MethodPost)

	return r
}
