// Package analyze turns a project's photos into structured blog material.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"blogforge/internal/apperr"
	"blogforge/internal/core"
	"blogforge/internal/llm"
	"blogforge/internal/logger"
)

const defaultMIMEType = "image/jpeg"

// ImageModel generates text from a prompt plus inline images.
type ImageModel interface {
	GenerateFromImages(ctx context.Context, prompt string, images []llm.ImagePart) (string, error)
	ModelName() string
}

// Analyzer downloads project photos and asks the model to describe them.
type Analyzer struct {
	model  ImageModel
	client *http.Client
}

func NewAnalyzer(model ImageModel, timeout time.Duration) *Analyzer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Analyzer{
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

// Analyze fetches every reachable image, sends them to the model in a
// single call, and parses the structured result. Individual download
// failures are skipped; if none succeed the model is never called.
func (a *Analyzer) Analyze(ctx context.Context, projectName string, imageURLs []string) (core.AnalysisResult, error) {
	images := a.downloadImages(ctx, imageURLs)
	if len(images) == 0 {
		return core.AnalysisResult{}, &apperr.ImageDownloadError{Attempted: len(imageURLs)}
	}

	text, err := a.model.GenerateFromImages(ctx, analysisPrompt(projectName), images)
	if err != nil {
		return core.AnalysisResult{}, &apperr.AnalysisError{Err: err}
	}

	var result core.AnalysisResult
	if err := json.Unmarshal([]byte(llm.ExtractJSONBlock(text)), &result); err != nil {
		return core.AnalysisResult{}, &apperr.AnalysisError{Err: fmt.Errorf("parse model response: %w", err)}
	}

	result.Diagnostics = core.AnalysisDiag{
		ImagesProcessed: len(images),
		Model:           a.model.ModelName(),
	}
	logger.Info("image analysis complete",
		"project", projectName, "images_processed", len(images), "keywords", len(result.MainKeywords))
	return result, nil
}

func (a *Analyzer) downloadImages(ctx context.Context, urls []string) []llm.ImagePart {
	var parts []llm.ImagePart
	for _, url := range urls {
		part, err := a.downloadImage(ctx, url)
		if err != nil {
			logger.Warn("image download failed", "url", url, "error", err)
			continue
		}
		parts = append(parts, part)
	}
	return parts
}

func (a *Analyzer) downloadImage(ctx context.Context, url string) (llm.ImagePart, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return llm.ImagePart{}, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return llm.ImagePart{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return llm.ImagePart{}, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.ImagePart{}, err
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = defaultMIMEType
	}
	return llm.ImagePart{MIMEType: mimeType, Data: data}, nil
}

func analysisPrompt(projectName string) string {
	return fmt.Sprintf(`이미지들을 분석해서 블로그 글 작성에 필요한 정보를 추출해주세요.
프로젝트: %s

JSON 형식으로 응답:
{
    "suggested_title": "추천 블로그 제목",
    "overall_theme": "전체 테마 설명",
    "main_keywords": ["키워드1", "키워드2", ...],
    "images": [
        {"description": "이미지 설명", "category": "전시부스|인테리어|사인물|기타", "caption": "추천 캡션"}
    ]
}`, projectName)
}
