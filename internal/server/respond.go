package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"blogforge/internal/apperr"
	"blogforge/internal/logger"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("response encoding failed", err)
	}
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, errorResponse{Detail: detail})
}

// respondPipelineError maps the pipeline's error taxonomy onto HTTP statuses.
func respondPipelineError(w http.ResponseWriter, err error) {
	var downloadErr *apperr.ImageDownloadError
	var analysisErr *apperr.AnalysisError
	var generationErr *apperr.GenerationError

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		respondError(w, http.StatusNotFound, "프로젝트를 찾을 수 없습니다")
	case errors.Is(err, apperr.ErrNoPhotos):
		respondError(w, http.StatusBadRequest, "업로드된 사진이 없습니다")
	case errors.Is(err, apperr.ErrNoImageURLs):
		respondError(w, http.StatusBadRequest, "유효한 이미지 URL이 없습니다")
	case errors.As(err, &downloadErr):
		respondError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &analysisErr):
		respondError(w, http.StatusInternalServerError, "이미지 분석 실패: "+analysisErr.Err.Error())
	case errors.As(err, &generationErr):
		respondError(w, http.StatusInternalServerError, "글 생성 실패: "+generationErr.Err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
