package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/koltukutsu/listele/internal/project"
)

func (h *handlers) createProject(w http.ResponseWriter, r *http.Request) {
	var cfg project.Config
	if err := decodeJSON(r, &cfg); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Geçersiz istek."})
		return
	}

	acct := accountFrom(r.Context())
	p, err := h.Projects.Create(r.Context(), acct.ID, cfg)
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *handlers) listProjects(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r.Context())
	projects, err := h.Projects.List(r.Context(), acct.ID)
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	if projects == nil {
		projects = []project.Project{}
	}
	respondJSON(w, http.StatusOK, projects)
}

func (h *handlers) getProject(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r.Context())
	p, err := h.Projects.Get(r.Context(), acct.ID, chi.URLParam(r, "projectID"))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *handlers) updateProject(w http.ResponseWriter, r *http.Request) {
	var cfg project.Config
	if err := decodeJSON(r, &cfg); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Geçersiz istek."})
		return
	}

	acct := accountFrom(r.Context())
	projectID := chi.URLParam(r, "projectID")
	if err := h.Projects.UpdateConfig(r.Context(), acct.ID, projectID, cfg); err != nil {
		respondError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) publishProject(w http.ResponseWriter, r *http.Request) {
	h.setProjectStatus(w, r, h.Projects.Publish)
}

func (h *handlers) pauseProject(w http.ResponseWriter, r *http.Request) {
	h.setProjectStatus(w, r, h.Projects.Pause)
}

func (h *handlers) setProjectStatus(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, ownerID, projectID string) error) {
	acct := accountFrom(r.Context())
	if err := apply(r.Context(), acct.ID, chi.URLParam(r, "projectID")); err != nil {
		respondError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) deleteProject(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r.Context())
	if err := h.Projects.Delete(r.Context(), acct.ID, chi.URLParam(r, "projectID")); err != nil {
		respondError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
