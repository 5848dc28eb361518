// Package apperr defines the error taxonomy shared across the pipeline.
package apperr

import (
	"errors"
	"fmt"

	"blogforge/internal/core"
)

var (
	// ErrNotFound signals a missing record (project, photo, content).
	ErrNotFound = errors.New("not found")
	// ErrNoPhotos signals a project with no uploaded photos.
	ErrNoPhotos = errors.New("no uploaded photos")
	// ErrNoImageURLs signals photos that exist but carry no resolvable URL.
	ErrNoImageURLs = errors.New("no valid image urls")
	// ErrMissingAPIKey signals a missing model credential; nothing was attempted
	// on the network.
	ErrMissingAPIKey = errors.New("gemini api key not set")
)

// ImageDownloadError means every image in the batch failed to download; the
// generative model was never called.
type ImageDownloadError struct {
	Attempted int
}

func (e *ImageDownloadError) Error() string {
	return fmt.Sprintf("failed to download all %d images", e.Attempted)
}

// AnalysisError wraps a model-call or parse failure during image analysis.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string { return "image analysis failed: " + e.Err.Error() }
func (e *AnalysisError) Unwrap() error { return e.Err }

// GenerationError wraps a model-call or parse failure during content
// generation. The accumulated debug trace travels with the error so callers can
// surface partial diagnostics.
type GenerationError struct {
	Err   error
	Trace *core.DebugTrace
}

func (e *GenerationError) Error() string { return "content generation failed: " + e.Err.Error() }
func (e *GenerationError) Unwrap() error { return e.Err }
