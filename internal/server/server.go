// Package server exposes the project index to the presentation layer as a
// small JSON API.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/robertg761/showcase/internal/catalog"
	"github.com/robertg761/showcase/internal/readme"
)

// Server serves the project listing and per-project detail bundles
type Server struct {
	svc *catalog.Service
}

// New creates a new Server instance
func New(svc *catalog.Service) *Server {
	return &Server{svc: svc}
}

// Handler builds the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/projects", s.handleProjects)
	mux.HandleFunc("GET /api/projects/{slug}", s.handleProjectDetail)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type projectListResponse struct {
	Projects []catalog.Project `json:"projects"`
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.svc.Projects(r.Context())
	if err != nil {
		slog.Error("Failed to build project listing", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "project listing unavailable"})
		return
	}

	// An empty catalog is a valid state, not an error; the presentation
	// layer renders its own empty-state message.
	if projects == nil {
		projects = []catalog.Project{}
	}
	writeJSON(w, http.StatusOK, projectListResponse{Projects: projects})
}

type projectDetailResponse struct {
	*catalog.ProjectDetail
	Slug                string   `json:"slug"`
	Images              []string `json:"images"`
	ReadmeWithoutImages string   `json:"readmeWithoutImages"`
}

func (s *Server) handleProjectDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	detail, err := s.svc.ProjectDetail(r.Context(), slug)
	if err != nil {
		slog.Error("Failed to resolve project detail", "slug", slug, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "project detail unavailable"})
		return
	}
	if detail == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "project not found"})
		return
	}

	images := readme.ExtractImages(detail.Readme, s.svc.Owner(), detail.Repo.Name, detail.Branch)
	if images == nil {
		images = []string{}
	}

	writeJSON(w, http.StatusOK, projectDetailResponse{
		ProjectDetail:       detail,
		Slug:                catalog.ToSlug(detail.Repo.Name),
		Images:              images,
		ReadmeWithoutImages: readme.StripImages(detail.Readme),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
