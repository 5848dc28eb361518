package reference

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogforge/internal/core"
	"blogforge/internal/fetch"
)

type fakeSources struct {
	sources []core.ReferenceSource
}

func (f *fakeSources) ListReferenceSources(_ context.Context, _ string) ([]core.ReferenceSource, error) {
	return f.sources, nil
}

func newTestAggregator(sources []core.ReferenceSource) *Aggregator {
	return NewAggregator(&fakeSources{sources: sources}, fetch.New(5*time.Second, ""))
}

func TestCollectCapsAtFiveSources(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("<p>reference text</p>"))
	}))
	defer server.Close()

	var sources []core.ReferenceSource
	for i := 0; i < 8; i++ {
		sources = append(sources, core.ReferenceSource{URL: fmt.Sprintf("%s/%d", server.URL, i)})
	}

	debug, err := newTestAggregator(sources).Collect(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if hits != 5 {
		t.Errorf("fetched %d sources, want 5", hits)
	}
	if debug.URLsFound != 8 {
		t.Errorf("URLsFound = %d, want 8", debug.URLsFound)
	}
	if len(debug.Details) != 5 {
		t.Errorf("details = %d, want 5", len(debug.Details))
	}
}

func TestCollectRecordsFailuresAndContinues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing") {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("<p>좋은 글입니다</p>"))
	}))
	defer server.Close()

	sources := []core.ReferenceSource{
		{URL: server.URL + "/missing", Title: "없는 글"},
		{URL: server.URL + "/ok", Title: "좋은 글"},
	}

	debug, err := newTestAggregator(sources).Collect(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(debug.Details) != 2 {
		t.Fatalf("details = %d, want 2", len(debug.Details))
	}
	if debug.Details[0].Success {
		t.Error("first source should fail")
	}
	if debug.Details[0].Error != "HTTP 404" {
		t.Errorf("error = %q, want HTTP 404", debug.Details[0].Error)
	}
	if !debug.Details[1].Success {
		t.Error("second source should succeed")
	}
	if debug.URLsFetched != 1 {
		t.Errorf("URLsFetched = %d, want 1", debug.URLsFetched)
	}
	if !strings.Contains(debug.Combined, "좋은 글입니다") {
		t.Errorf("combined missing successful content: %q", debug.Combined)
	}
	if strings.Contains(debug.Combined, "없는 글") {
		t.Error("failed source should not appear in combined content")
	}
}

func TestCollectLabelsBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>본문</p>"))
	}))
	defer server.Close()

	sources := []core.ReferenceSource{
		{URL: server.URL + "/a", Title: "시공 후기"},
		{URL: server.URL + "/b"}, // no title, falls back to URL
	}

	debug, err := newTestAggregator(sources).Collect(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(debug.Combined, "[참고글: 시공 후기]\n본문") {
		t.Errorf("combined missing titled block: %q", debug.Combined)
	}
	if !strings.Contains(debug.Combined, "[참고글: "+server.URL+"/b]") {
		t.Errorf("combined missing URL-labeled block: %q", debug.Combined)
	}
	if !strings.Contains(debug.Combined, "\n\n---\n\n") {
		t.Errorf("blocks should be separated: %q", debug.Combined)
	}
}

func TestCollectPreviewTruncation(t *testing.T) {
	long := strings.Repeat("가", 500)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/long"):
			_, _ = w.Write([]byte("<p>" + long + "</p>"))
		case strings.HasSuffix(r.URL.Path, "/short"):
			_, _ = w.Write([]byte("<p>짧은 본문</p>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	sources := []core.ReferenceSource{
		{URL: server.URL + "/long"},
		{URL: server.URL + "/short"},
		{URL: server.URL + "/missing"},
	}
	debug, err := newTestAggregator(sources).Collect(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}

	detail := debug.Details[0]
	if want := strings.Repeat("가", 200) + "..."; detail.Preview != want {
		t.Errorf("preview = %d runes, want 200 + ellipsis", len([]rune(detail.Preview)))
	}
	if detail.ContentLength != 500 {
		t.Errorf("ContentLength = %d, want 500", detail.ContentLength)
	}

	// Short content still carries the ellipsis; only empty content skips it.
	if got := debug.Details[1].Preview; got != "짧은 본문..." {
		t.Errorf("short preview = %q, want ellipsis suffix", got)
	}
	if got := debug.Details[2].Preview; got != "" {
		t.Errorf("failed fetch preview = %q, want empty", got)
	}
}

func TestCollectNoSources(t *testing.T) {
	debug, err := newTestAggregator(nil).Collect(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if debug.URLsFound != 0 || debug.Combined != "" || len(debug.Details) != 0 {
		t.Errorf("empty source list should produce empty debug, got %+v", debug)
	}
}
