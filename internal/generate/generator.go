// Package generate composes the blog prompt, invokes the model, and repairs
// the produced HTML so every project photo appears in it.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blogforge/internal/apperr"
	"blogforge/internal/core"
	"blogforge/internal/llm"
	"blogforge/internal/logger"
)

const (
	personaPreviewLimit   = 200
	referencePreviewLimit = 300
)

// TextModel generates text from a plain prompt.
type TextModel interface {
	GenerateFromText(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

// PersonaLoader resolves the writing persona for a user.
type PersonaLoader interface {
	Load(ctx context.Context, userID string) (core.PersonaDebug, error)
}

// ReferenceCollector gathers reference-post excerpts for a user.
type ReferenceCollector interface {
	Collect(ctx context.Context, userID string) (core.ReferenceDebug, error)
}

// Generator produces the final blog content for one project.
type Generator struct {
	model      TextModel
	personas   PersonaLoader
	references ReferenceCollector
}

func NewGenerator(model TextModel, personas PersonaLoader, references ReferenceCollector) *Generator {
	return &Generator{model: model, personas: personas, references: references}
}

// Request carries one generation call's inputs. Keywords may be empty, in
// which case the analyzer's keywords (or the project name) take over upstream.
type Request struct {
	Analysis    core.AnalysisResult
	Keywords    []string
	ProjectName string
	ImageURLs   []string
	UserID      string
}

type modelOutput struct {
	Title       string   `json:"title"`
	ContentHTML string   `json:"content_html"`
	Tags        []string `json:"tags"`
}

// Generate builds the prompt, calls the model once, parses its JSON reply,
// and runs the image-completeness repair pass. Failures return a
// GenerationError carrying whatever trace had accumulated, so callers can
// still show partial diagnostics.
func (g *Generator) Generate(ctx context.Context, req Request) (core.GeneratedContent, error) {
	trace := &core.DebugTrace{
		Timestamp: time.Now(),
		UserID:    req.UserID,
		Model:     g.model.ModelName(),
	}

	mainKeyword := req.ProjectName
	if len(req.Keywords) > 0 {
		mainKeyword = req.Keywords[0]
	}

	var personaInfo core.PersonaDebug
	var refInfo core.ReferenceDebug
	if req.UserID != "" {
		if g.personas != nil {
			p, err := g.personas.Load(ctx, req.UserID)
			if err != nil {
				logger.Warn("persona load failed, writing without one", "error", err)
			} else {
				personaInfo = p
			}
		}
		if g.references != nil {
			r, err := g.references.Collect(ctx, req.UserID)
			if err != nil {
				logger.Warn("reference collection failed, writing without references", "error", err)
			} else {
				refInfo = r
			}
		}
	}
	trace.Persona = personaInfo
	trace.ReferenceURLs = refInfo
	trace.PromptSections = core.PromptSections{
		HasPersona:   personaInfo.HasPersona,
		HasReference: refInfo.URLsFetched > 0,
	}
	if personaInfo.HasPersona {
		trace.PromptSections.PersonaPreview = previewOf(personaInfo.Text, personaPreviewLimit)
	}
	if refInfo.URLsFetched > 0 {
		trace.PromptSections.ReferencePreview = previewOf(refInfo.Combined, referencePreviewLimit)
	}

	prompt := BuildPrompt(PromptInput{
		ProjectName: req.ProjectName,
		Theme:       req.Analysis.OverallTheme,
		MainKeyword: mainKeyword,
		ImageURLs:   req.ImageURLs,
		Persona:     personaInfo,
		Reference:   refInfo,
	})
	trace.FullPromptLength = len([]rune(prompt))

	text, err := g.model.GenerateFromText(ctx, prompt)
	if err != nil {
		return core.GeneratedContent{}, &apperr.GenerationError{Err: err, Trace: trace}
	}

	var out modelOutput
	if err := json.Unmarshal([]byte(llm.ExtractJSONBlock(text)), &out); err != nil {
		return core.GeneratedContent{}, &apperr.GenerationError{
			Err:   fmt.Errorf("parse model response: %w", err),
			Trace: trace,
		}
	}

	repaired, missing := RepairImageCompleteness(out.ContentHTML, req.ImageURLs)
	if len(missing) > 0 {
		logger.Warn("model omitted images, repaired",
			"project", req.ProjectName, "missing", len(missing), "total", len(req.ImageURLs))
	}

	logger.Info("blog content generated",
		"project", req.ProjectName, "title", out.Title,
		"tags", len(out.Tags), "prompt_length", trace.FullPromptLength)
	return core.GeneratedContent{
		Title:       out.Title,
		ContentHTML: repaired,
		Tags:        out.Tags,
		DebugTrace:  trace,
	}, nil
}

func previewOf(s string, limit int) string {
	runes := []rune(s)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + "..."
}
