// Package pipeline sequences one blog-generation request from project lookup
// to persisted, published content.
package pipeline

import (
	"context"
	"fmt"

	"blogforge/internal/apperr"
	"blogforge/internal/core"
	"blogforge/internal/generate"
	"blogforge/internal/logger"
)

// Store is the persistence surface the pipeline needs.
type Store interface {
	GetProject(ctx context.Context, id string) (*core.Project, error)
	ListPhotos(ctx context.Context, projectID string) ([]core.Photo, error)
	UpdateProjectStatus(ctx context.Context, id, status string) error
	SaveContent(ctx context.Context, projectID, title, contentHTML string, tags []string) (*core.Content, error)
}

// Analyzer describes a project's photos.
type Analyzer interface {
	Analyze(ctx context.Context, projectName string, imageURLs []string) (core.AnalysisResult, error)
}

// Generator writes the blog content.
type Generator interface {
	Generate(ctx context.Context, req generate.Request) (core.GeneratedContent, error)
}

// DraftPublisher stores a rendered draft page and returns its public URL.
type DraftPublisher interface {
	PublishDraft(ctx context.Context, ftpPath string, content core.GeneratedContent) (string, error)
}

// Pipeline runs the full generation sequence.
type Pipeline struct {
	store     Store
	analyzer  Analyzer
	generator Generator
	publisher DraftPublisher
}

func New(store Store, analyzer Analyzer, generator Generator, publisher DraftPublisher) *Pipeline {
	return &Pipeline{store: store, analyzer: analyzer, generator: generator, publisher: publisher}
}

// Request identifies the project to generate for. Keywords are optional; when
// empty, the analyzer's keywords take over.
type Request struct {
	ProjectID string
	Keywords  []string
}

// Result is what one successful run hands back to the caller. A publish
// failure is reported as a warning here, never as a run failure.
type Result struct {
	Content        *core.Content       `json:"content"`
	DebugTrace     *core.DebugTrace    `json:"debug,omitempty"`
	Analysis       core.AnalysisResult `json:"analysis"`
	DraftURL       string              `json:"html_url,omitempty"`
	PublishWarning string              `json:"publish_warning,omitempty"`
}

// Run executes the blocking variant: confirm project, prepare images, analyze,
// generate, persist and publish.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	result, err := p.run(ctx, req, nil)
	return result, err
}

// RunStream executes the same sequence but reports each completed checkpoint
// on the returned channel, closed after exactly one terminal event.
func (p *Pipeline) RunStream(ctx context.Context, req Request) <-chan Event {
	events := make(chan Event, TotalSteps+1)
	go func() {
		defer close(events)
		emit := func(e Event) {
			select {
			case events <- e:
			case <-ctx.Done():
			}
		}
		result, err := p.run(ctx, req, emit)
		if err != nil {
			emit(errorEvent(err))
			return
		}
		emit(completeEvent(result))
	}()
	return events
}

// run performs the sequence; emit, when non-nil, receives a progress event as
// each checkpoint completes.
func (p *Pipeline) run(ctx context.Context, req Request, emit func(Event)) (*Result, error) {
	progress := func(step int, message string) {
		if emit != nil {
			emit(progressEvent(step, message))
		}
	}

	project, err := p.store.GetProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if project == nil {
		return nil, apperr.ErrNotFound
	}
	progress(StepConfirmProject, "프로젝트 확인 완료")

	photos, err := p.store.ListPhotos(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	if len(photos) == 0 {
		return nil, apperr.ErrNoPhotos
	}
	var imageURLs []string
	for _, photo := range photos {
		if photo.FTPURL != "" {
			imageURLs = append(imageURLs, photo.FTPURL)
		}
	}
	if len(imageURLs) == 0 {
		return nil, apperr.ErrNoImageURLs
	}
	progress(StepPrepareImages, fmt.Sprintf("이미지 %d장 준비 완료", len(imageURLs)))

	if err := p.store.UpdateProjectStatus(ctx, project.ID, core.StatusAnalyzing); err != nil {
		logger.Warn("status update failed", "project_id", project.ID, "error", err)
	}

	analysis, err := p.analyzer.Analyze(ctx, project.Name, imageURLs)
	if err != nil {
		return nil, err
	}
	progress(StepAnalyzeImages, "이미지 분석 완료")

	keywords := req.Keywords
	if len(keywords) == 0 {
		keywords = analysis.MainKeywords
	}
	generated, err := p.generator.Generate(ctx, generate.Request{
		Analysis:    analysis,
		Keywords:    keywords,
		ProjectName: project.Name,
		ImageURLs:   imageURLs,
		UserID:      project.UserID,
	})
	if err != nil {
		return nil, err
	}
	progress(StepWriteContent, "글 작성 완료")

	content, err := p.store.SaveContent(ctx, project.ID, generated.Title, generated.ContentHTML, generated.Tags)
	if err != nil {
		return nil, fmt.Errorf("save content: %w", err)
	}

	result := &Result{
		Content:    content,
		DebugTrace: generated.DebugTrace,
		Analysis:   analysis,
	}
	if p.publisher != nil && project.FTPPath != "" {
		url, err := p.publisher.PublishDraft(ctx, project.FTPPath, generated)
		if err != nil {
			result.PublishWarning = err.Error()
			logger.Warn("draft publish failed", "project_id", project.ID, "error", err)
		} else {
			result.DraftURL = url
		}
	}

	if err := p.store.UpdateProjectStatus(ctx, project.ID, core.StatusGenerated); err != nil {
		logger.Warn("status update failed", "project_id", project.ID, "error", err)
	}
	progress(StepPersistPublish, "저장 및 발행 완료")

	logger.Info("generation pipeline finished",
		"project_id", project.ID, "title", generated.Title, "draft_url", result.DraftURL)
	return result, nil
}
