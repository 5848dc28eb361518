package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"

	"blogforge/internal/apperr"
	"blogforge/internal/core"
	"blogforge/internal/logger"
	"blogforge/internal/publish"
)

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := s.store.CreateProject(r.Context(), req.Name, req.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ftpPath := publish.RemoteProjectDir(time.Now(), project.ID)
	if err := s.store.UpdateProjectFTPPath(r.Context(), project.ID, ftpPath); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	project.FTPPath = ftpPath

	// Prepare the remote directories; the host being down only warrants a
	// warning, they are created again on first upload.
	if err := s.transfer.EnsureDirs(r.Context(), path.Join(ftpPath, "images"), path.Join(ftpPath, "drafts")); err != nil {
		logger.Warn("remote folder creation failed", "project_id", project.ID, "error", err)
	}

	respondJSON(w, http.StatusCreated, project)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if projects == nil {
		projects = []core.Project{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"projects": projects,
		"total":    len(projects),
	})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.store.GetProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "프로젝트를 찾을 수 없습니다")
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	project, err := s.store.GetProject(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "프로젝트를 찾을 수 없습니다")
		return
	}

	if project.FTPPath != "" {
		if err := s.transfer.DeleteDirectory(r.Context(), project.FTPPath); err != nil {
			logger.Warn("remote folder deletion failed", "project_id", projectID, "error", err)
		}
	}

	if err := s.store.DeleteProject(r.Context(), projectID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			respondError(w, http.StatusNotFound, "프로젝트를 찾을 수 없습니다")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
