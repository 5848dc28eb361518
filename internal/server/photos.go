package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blogforge/internal/apperr"
	"blogforge/internal/core"
	"blogforge/internal/imaging"
	"blogforge/internal/logger"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
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
	if project.FTPPath == "" {
		respondError(w, http.StatusBadRequest, "FTP 경로가 설정되지 않았습니다")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		respondError(w, http.StatusBadRequest, "file field required")
		return
	}

	existing, err := s.store.ListPhotos(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	caption := r.FormValue("caption")
	category := categoryOrDefault(r.FormValue("category"))

	records := make([]*core.Photo, 0, len(headers))
	for i, header := range headers {
		file, err := header.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}

		optimized, info, err := imaging.Optimize(data, imaging.Options{
			MaxWidth:    s.imaging.MaxWidth,
			JPEGQuality: s.imaging.JPEGQuality,
			MaxBytes:    s.imaging.MaxBytes,
		})
		if err != nil {
			respondError(w, http.StatusBadRequest, "이미지 처리 실패: "+err.Error())
			return
		}
		logger.Info("photo optimized",
			"filename", header.Filename,
			"original_bytes", info.OriginalBytes, "optimized_bytes", info.OptimizedBytes)

		position := len(existing) + i + 1
		filename := photoFilename(header.Filename, position)
		remotePath := path.Join(project.FTPPath, "images", filename)
		ftpURL, err := s.transfer.UploadBytes(r.Context(), optimized, remotePath)
		if err != nil {
			respondError(w, http.StatusBadGateway, "FTP 업로드 실패: "+err.Error())
			return
		}

		records = append(records, &core.Photo{
			ProjectID:    projectID,
			Filename:     filename,
			FTPURL:       ftpURL,
			Caption:      caption,
			Category:     category,
			DisplayOrder: position,
		})
	}

	// A single file keeps the photo-object response; several insert in one
	// round trip and return the list.
	var body any
	if len(records) == 1 {
		photo, err := s.store.AddPhoto(r.Context(), records[0])
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		body = photo
	} else {
		photos, err := s.store.AddPhotosBatch(r.Context(), records)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		body = map[string]any{"photos": photos, "total": len(photos)}
	}

	if err := s.store.UpdateProjectStatus(r.Context(), projectID, core.StatusPhotosUploaded); err != nil {
		logger.Warn("status update failed", "project_id", projectID, "error", err)
	}

	respondJSON(w, http.StatusCreated, body)
}

// photoFilename builds a collision-safe remote name; uploads always land as
// JPEG regardless of the original extension.
func photoFilename(original string, position int) string {
	base := original
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "_" {
		base = "photo"
	}
	return fmt.Sprintf("%s_photo%d_%s.jpg", base, position, uuid.NewString()[:8])
}

func categoryOrDefault(category string) string {
	switch category {
	case "전시부스", "인테리어", "사인물", "기타":
		return category
	default:
		return "기타"
	}
}

func (s *Server) handleListPhotos(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	photos, err := s.store.ListPhotos(r.Context(), projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if photos == nil {
		photos = []core.Photo{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"photos": photos,
		"total":  len(photos),
	})
}

func (s *Server) handleUpdatePhoto(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "photoID")

	var req updatePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	photo, err := s.store.UpdatePhoto(r.Context(), photoID, core.PhotoUpdate{
		Caption:      req.Caption,
		Category:     req.Category,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			respondError(w, http.StatusNotFound, "사진을 찾을 수 없습니다")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, photo)
}

func (s *Server) handleReorderPhotos(w http.ResponseWriter, r *http.Request) {
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

	var req reorderPhotosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.ReorderPhotos(r.Context(), projectID, req.PhotoIDs); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleSearchPhotos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.PhotoFilter{
		Category: q.Get("category"),
		Keyword:  q.Get("keyword"),
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
		Page:     intQueryOr(q.Get("page"), 1),
		PageSize: intQueryOr(q.Get("page_size"), 20),
	}

	page, err := s.store.SearchPhotos(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func intQueryOr(value string, fallback int) int {
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return n
	}
	return fallback
}

// handleDownloadPhoto proxies the photo bytes from the static host so the
// browser gets an attachment instead of an inline image.
func (s *Server) handleDownloadPhoto(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "photoID")

	photo, err := s.store.GetPhoto(r.Context(), photoID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if photo == nil {
		respondError(w, http.StatusNotFound, "사진을 찾을 수 없습니다")
		return
	}
	if photo.FTPURL == "" {
		respondError(w, http.StatusBadRequest, "다운로드 URL이 없습니다")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, photo.FTPURL, nil)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp, err := s.client.Do(req)
	if err != nil {
		respondError(w, http.StatusBadGateway, "이미지를 가져올 수 없습니다")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respondError(w, http.StatusBadGateway, "이미지를 가져올 수 없습니다")
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	filename := photo.Filename
	if filename == "" {
		filename = "photo.jpg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.Warn("photo download aborted", "photo_id", photoID, "error", err)
	}
}

func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "photoID")

	photo, err := s.store.GetPhoto(r.Context(), photoID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if photo == nil {
		respondError(w, http.StatusNotFound, "사진을 찾을 수 없습니다")
		return
	}

	if remotePath := s.transfer.RemotePathFromURL(photo.FTPURL); remotePath != "" {
		if err := s.transfer.DeleteFile(r.Context(), remotePath); err != nil {
			logger.Warn("remote file deletion failed", "photo_id", photoID, "error", err)
		}
	}

	if err := s.store.DeletePhoto(r.Context(), photoID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			respondError(w, http.StatusNotFound, "사진을 찾을 수 없습니다")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
