package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"blogforge/internal/core"
	"blogforge/internal/pipeline"
)

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	result, err := s.runner.Run(r.Context(), pipeline.Request{
		ProjectID: chi.URLParam(r, "projectID"),
		Keywords:  req.Keywords,
	})
	if err != nil {
		respondPipelineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleGenerateStream runs the pipeline while streaming checkpoint events
// over SSE. Keywords arrive comma-separated in the query string since
// EventSource cannot send a body.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	var keywords []string
	if raw := r.URL.Query().Get("keywords"); raw != "" {
		for _, kw := range strings.Split(raw, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events := s.runner.RunStream(r.Context(), pipeline.Request{
		ProjectID: chi.URLParam(r, "projectID"),
		Keywords:  keywords,
	})
	for event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
		flusher.Flush()
	}
}

func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
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

	content, err := s.store.GetContent(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if content == nil {
		respondJSON(w, http.StatusOK, core.Content{ProjectID: projectID, Tags: []string{}})
		return
	}
	respondJSON(w, http.StatusOK, content)
}
