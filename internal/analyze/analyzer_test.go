package analyze

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogforge/internal/apperr"
	"blogforge/internal/llm"
)

type mockImageModel struct {
	response string
	err      error

	calls      int
	lastPrompt string
	lastImages []llm.ImagePart
}

func (m *mockImageModel) GenerateFromImages(_ context.Context, prompt string, images []llm.ImagePart) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastImages = images
	return m.response, m.err
}

func (m *mockImageModel) ModelName() string { return "gemini-2.0-flash-exp" }

const analysisJSON = `{
	"suggested_title": "전시 부스 시공 후기",
	"overall_theme": "모던한 전시 공간",
	"main_keywords": ["전시부스", "시공"],
	"images": [
		{"description": "부스 전경", "category": "전시부스", "caption": "완성된 부스"},
		{"description": "간판", "category": "사인물", "caption": "메인 사인물"}
	]
}`

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/broken.jpg") {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/photo.png") {
			w.Header().Set("Content-Type", "image/png")
		}
		_, _ = w.Write([]byte{0xFF, 0xD8, 0xFF})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAnalyze(t *testing.T) {
	server := imageServer(t)
	model := &mockImageModel{response: analysisJSON}
	analyzer := NewAnalyzer(model, 5*time.Second)

	result, err := analyzer.Analyze(context.Background(), "강남 전시부스", []string{
		server.URL + "/1.jpg",
		server.URL + "/photo.png",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.SuggestedTitle != "전시 부스 시공 후기" {
		t.Errorf("title = %q", result.SuggestedTitle)
	}
	if len(result.Images) != 2 {
		t.Errorf("images = %d, want 2", len(result.Images))
	}
	if result.Diagnostics.ImagesProcessed != 2 {
		t.Errorf("images_processed = %d, want 2", result.Diagnostics.ImagesProcessed)
	}
	if result.Diagnostics.Model != "gemini-2.0-flash-exp" {
		t.Errorf("model = %q", result.Diagnostics.Model)
	}
	if !strings.Contains(model.lastPrompt, "강남 전시부스") {
		t.Error("prompt should name the project")
	}
	if model.lastImages[1].MIMEType != "image/png" {
		t.Errorf("mime = %q, want image/png", model.lastImages[1].MIMEType)
	}
}

func TestAnalyzeSkipsFailedDownloads(t *testing.T) {
	server := imageServer(t)
	model := &mockImageModel{response: analysisJSON}
	analyzer := NewAnalyzer(model, 5*time.Second)

	result, err := analyzer.Analyze(context.Background(), "p", []string{
		server.URL + "/broken.jpg",
		server.URL + "/ok.jpg",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Diagnostics.ImagesProcessed != 1 {
		t.Errorf("images_processed = %d, want 1", result.Diagnostics.ImagesProcessed)
	}
	if len(model.lastImages) != 1 {
		t.Errorf("model received %d images, want 1", len(model.lastImages))
	}
}

func TestAnalyzeAllDownloadsFailed(t *testing.T) {
	server := imageServer(t)
	model := &mockImageModel{response: analysisJSON}
	analyzer := NewAnalyzer(model, 5*time.Second)

	_, err := analyzer.Analyze(context.Background(), "p", []string{
		server.URL + "/broken.jpg",
		server.URL + "/also-broken.jpg/broken.jpg",
	})
	var dlErr *apperr.ImageDownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("err = %v, want ImageDownloadError", err)
	}
	if dlErr.Attempted != 2 {
		t.Errorf("attempted = %d, want 2", dlErr.Attempted)
	}
	if model.calls != 0 {
		t.Error("model must not be called when no image downloads")
	}
}

func TestAnalyzeDefaultMIMEType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil // suppress sniffing
		_, _ = w.Write([]byte{0x01})
	}))
	defer server.Close()

	model := &mockImageModel{response: analysisJSON}
	analyzer := NewAnalyzer(model, 5*time.Second)

	if _, err := analyzer.Analyze(context.Background(), "p", []string{server.URL}); err != nil {
		t.Fatal(err)
	}
	if model.lastImages[0].MIMEType != "image/jpeg" {
		t.Errorf("mime = %q, want image/jpeg fallback", model.lastImages[0].MIMEType)
	}
}

func TestAnalyzeFencedResponse(t *testing.T) {
	server := imageServer(t)
	model := &mockImageModel{response: "```json\n" + analysisJSON + "\n```"}
	analyzer := NewAnalyzer(model, 5*time.Second)

	result, err := analyzer.Analyze(context.Background(), "p", []string{server.URL + "/1.jpg"})
	if err != nil {
		t.Fatal(err)
	}
	if result.OverallTheme != "모던한 전시 공간" {
		t.Errorf("theme = %q", result.OverallTheme)
	}
}

func TestAnalyzeMalformedResponse(t *testing.T) {
	server := imageServer(t)
	model := &mockImageModel{response: "죄송하지만 분석할 수 없습니다."}
	analyzer := NewAnalyzer(model, 5*time.Second)

	_, err := analyzer.Analyze(context.Background(), "p", []string{server.URL + "/1.jpg"})
	var analysisErr *apperr.AnalysisError
	if !errors.As(err, &analysisErr) {
		t.Fatalf("err = %v, want AnalysisError", err)
	}
}

func TestAnalyzeModelError(t *testing.T) {
	server := imageServer(t)
	model := &mockImageModel{err: errors.New("quota exceeded")}
	analyzer := NewAnalyzer(model, 5*time.Second)

	_, err := analyzer.Analyze(context.Background(), "p", []string{server.URL + "/1.jpg"})
	var analysisErr *apperr.AnalysisError
	if !errors.As(err, &analysisErr) {
		t.Fatalf("err = %v, want AnalysisError", err)
	}
}
