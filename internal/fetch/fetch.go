// Package fetch retrieves and sanitizes plain text from reference URLs.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultUserAgent mimics a desktop browser; several blog hosts reject
// obviously non-browser agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Result is the outcome of one page fetch. Success reflects transport only:
// a 200 response with an empty body is still a success with empty content.
type Result struct {
	URL     string `json:"url"`
	Content string `json:"content"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Fetcher performs bounded, redirect-following GETs and reduces pages to
// whitespace-normalized plain text. It never retries; a failed source simply
// contributes nothing.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// New creates a Fetcher with the given timeout and user agent. Zero values
// fall back to 30s and DefaultUserAgent.
func New(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// FetchPage GETs the URL and returns its visible text truncated to maxLen
// characters. Non-200 statuses and transport errors yield Success=false with
// the reason in Error.
func (f *Fetcher) FetchPage(ctx context.Context, url string, maxLen int) Result {
	result := Result{URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := f.client.Do(req)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
		return result
	}

	text, err := extractText(resp)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Content = Truncate(text, maxLen)
	result.Success = true
	return result
}

// extractText reduces an HTML response to visible text: script, style and
// noscript subtrees are dropped (comments never surface through the parser),
// remaining markup is stripped, and whitespace runs collapse to single spaces.
func extractText(resp *http.Response) (string, error) {
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}

// Truncate cuts s to at most maxLen characters (runes, not bytes — most of
// the fetched text is Korean). maxLen <= 0 means no limit.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
