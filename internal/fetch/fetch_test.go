package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchPageStripsMarkup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
			<title>Test Page</title>
			<style>body { color: red; }</style>
			<script>console.log("noise");</script>
		</head><body>
			<!-- a comment -->
			<noscript>enable javascript</noscript>
			<h1>Hello</h1>
			<p>World   of
			text</p>
		</body></html>`))
	}))
	defer server.Close()

	f := New(5*time.Second, "")
	result := f.FetchPage(context.Background(), server.URL, 0)

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	for _, banned := range []string{"console.log", "color: red", "enable javascript", "a comment", "<"} {
		if strings.Contains(result.Content, banned) {
			t.Errorf("content should not contain %q, got %q", banned, result.Content)
		}
	}
	if !strings.Contains(result.Content, "Hello") || !strings.Contains(result.Content, "World of text") {
		t.Errorf("content missing visible text, got %q", result.Content)
	}
}

func TestFetchPageNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := New(5*time.Second, "")
	result := f.FetchPage(context.Background(), server.URL, 3000)

	if result.Success {
		t.Error("expected failure for 404")
	}
	if result.Error != "HTTP 404" {
		t.Errorf("error = %q, want %q", result.Error, "HTTP 404")
	}
	if result.Content != "" {
		t.Errorf("content should be empty, got %q", result.Content)
	}
}

func TestFetchPageEmptyBodyIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	f := New(5*time.Second, "")
	result := f.FetchPage(context.Background(), server.URL, 3000)

	if !result.Success {
		t.Fatalf("empty 200 body should be success, got error %q", result.Error)
	}
	if result.Content != "" {
		t.Errorf("content = %q, want empty", result.Content)
	}
}

func TestFetchPageTransportError(t *testing.T) {
	f := New(time.Second, "")
	result := f.FetchPage(context.Background(), "http://127.0.0.1:1", 3000)

	if result.Success {
		t.Error("expected transport failure")
	}
	if result.Error == "" {
		t.Error("expected error message")
	}
}

func TestFetchPageSendsBrowserHeaders(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<p>ok</p>"))
	}))
	defer server.Close()

	f := New(5*time.Second, "")
	f.FetchPage(context.Background(), server.URL, 100)

	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Errorf("User-Agent = %q, want browser-like", gotUA)
	}
}

func TestFetchPageFollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<p>final destination</p>"))
	}))
	defer target.Close()
	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer redirector.Close()

	f := New(5*time.Second, "")
	result := f.FetchPage(context.Background(), redirector.URL, 100)

	if !result.Success || !strings.Contains(result.Content, "final destination") {
		t.Errorf("redirect not followed: %+v", result)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("한국어 텍스트입니다", 3); got != "한국어" {
		t.Errorf("Truncate by runes = %q, want %q", got, "한국어")
	}
	if got := Truncate("short", 100); got != "short" {
		t.Errorf("Truncate below limit = %q", got)
	}
	if got := Truncate("nolimit", 0); got != "nolimit" {
		t.Errorf("Truncate with no limit = %q", got)
	}
}
