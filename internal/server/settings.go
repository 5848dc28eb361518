package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogforge/internal/apperr"
	"blogforge/internal/core"
)

func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "user_id query parameter required")
		return
	}

	value, err := s.store.GetUserSetting(r.Context(), userID, key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
}

func (s *Server) handleUpdateSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req updateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.SetUserSetting(r.Context(), req.UserID, key, req.Value); err != nil {
		respondError(w, http.StatusInternalServerError, "설정 저장 실패: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "key": key, "value": req.Value})
}

func (s *Server) handleListReferences(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "user_id query parameter required")
		return
	}

	sources, err := s.store.ListReferenceSources(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sources == nil {
		sources = []core.ReferenceSource{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"references": sources,
		"total":      len(sources),
	})
}

func (s *Server) handleAddReference(w http.ResponseWriter, r *http.Request) {
	var req addReferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	source, err := s.store.AddReferenceSource(r.Context(), &core.ReferenceSource{
		UserID:      req.UserID,
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, source)
}

func (s *Server) handleUpdateReference(w http.ResponseWriter, r *http.Request) {
	referenceID := chi.URLParam(r, "referenceID")

	var req updateReferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	source, err := s.store.UpdateReferenceSource(r.Context(), referenceID, core.ReferenceUpdate{
		Title:       req.Title,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			respondError(w, http.StatusNotFound, "참고 URL을 찾을 수 없습니다")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, source)
}

func (s *Server) handleDeleteReference(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteReferenceSource(r.Context(), chi.URLParam(r, "referenceID")); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			respondError(w, http.StatusNotFound, "참고 URL을 찾을 수 없습니다")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
