// Package reference collects sample posts the generated copy should emulate.
package reference

import (
	"context"
	"fmt"
	"strings"

	"blogforge/internal/core"
	"blogforge/internal/fetch"
	"blogforge/internal/logger"
)

const (
	// maxSources caps how many reference posts are examined per run.
	maxSources = 5
	// fetchLimit bounds the text extracted from each page.
	fetchLimit = 3000
	// blockLimit bounds how much of each page makes it into the prompt.
	blockLimit = 2000
	// previewLimit bounds the diagnostic preview.
	previewLimit = 200
)

// SourceStore lists the reference URLs registered by a user.
type SourceStore interface {
	ListReferenceSources(ctx context.Context, userID string) ([]core.ReferenceSource, error)
}

// Aggregator fetches reference posts and folds them into prompt material.
type Aggregator struct {
	store   SourceStore
	fetcher *fetch.Fetcher
}

func NewAggregator(store SourceStore, fetcher *fetch.Fetcher) *Aggregator {
	return &Aggregator{store: store, fetcher: fetcher}
}

// Collect fetches up to maxSources registered references and returns the
// combined text plus one diagnostic entry per source examined. Fetch
// failures are recorded, never fatal.
func (a *Aggregator) Collect(ctx context.Context, userID string) (core.ReferenceDebug, error) {
	sources, err := a.store.ListReferenceSources(ctx, userID)
	if err != nil {
		return core.ReferenceDebug{}, fmt.Errorf("list reference sources: %w", err)
	}

	debug := core.ReferenceDebug{URLsFound: len(sources)}
	if len(sources) > maxSources {
		sources = sources[:maxSources]
	}

	var blocks []string
	for _, src := range sources {
		result := a.fetcher.FetchPage(ctx, src.URL, fetchLimit)

		detail := core.ReferenceDetail{
			URL:           src.URL,
			Title:         src.Title,
			Success:       result.Success,
			ContentLength: len([]rune(result.Content)),
			Error:         result.Error,
			Preview:       preview(result.Content),
		}
		debug.Details = append(debug.Details, detail)

		if !result.Success {
			logger.Warn("reference fetch failed", "url", src.URL, "error", result.Error)
			continue
		}
		debug.URLsFetched++
		if result.Content == "" {
			continue
		}

		label := src.Title
		if label == "" {
			label = src.URL
		}
		blocks = append(blocks, fmt.Sprintf("[참고글: %s]\n%s", label, fetch.Truncate(result.Content, blockLimit)))
	}

	debug.Combined = strings.Join(blocks, "\n\n---\n\n")
	logger.Debug("reference content collected",
		"found", debug.URLsFound, "fetched", debug.URLsFetched, "combined_length", len(debug.Combined))
	return debug, nil
}

// preview returns the first previewLimit runes with a trailing ellipsis.
// Every non-empty preview carries the ellipsis; empty content stays empty.
func preview(content string) string {
	if content == "" {
		return ""
	}
	runes := []rune(content)
	if len(runes) > previewLimit {
		runes = runes[:previewLimit]
	}
	return string(runes) + "..."
}
