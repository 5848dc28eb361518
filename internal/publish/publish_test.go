package publish

import (
	"context"
	"strings"
	"testing"
	"time"

	"blogforge/internal/config"
	"blogforge/internal/core"
)

func TestPublicURL(t *testing.T) {
	client := NewClient(config.FTP{BaseURL: "https://example.cafe24.com"})

	tests := []struct {
		remote string
		want   string
	}{
		{"/www/blog/2026_08_28_p1/photo.jpg", "https://example.cafe24.com/blog/2026_08_28_p1/photo.jpg"},
		{"/www/blog/2026_08_28_p1/drafts/blog_20260828_120000.html", "https://example.cafe24.com/blog/2026_08_28_p1/drafts/blog_20260828_120000.html"},
		{"/other/file.txt", "https://example.cafe24.com/other/file.txt"},
	}
	for _, tt := range tests {
		if got := client.PublicURL(tt.remote); got != tt.want {
			t.Errorf("PublicURL(%q) = %q, want %q", tt.remote, got, tt.want)
		}
	}
}

func TestPublicURLTrailingSlashBase(t *testing.T) {
	client := NewClient(config.FTP{BaseURL: "https://example.cafe24.com/"})
	got := client.PublicURL("/www/blog/x/a.jpg")
	if got != "https://example.cafe24.com/blog/x/a.jpg" {
		t.Errorf("got %q", got)
	}
}

func TestRemotePathFromURL(t *testing.T) {
	client := NewClient(config.FTP{BaseURL: "https://example.cafe24.com"})

	if got := client.RemotePathFromURL("https://example.cafe24.com/blog/x/a.jpg"); got != "/www/blog/x/a.jpg" {
		t.Errorf("got %q", got)
	}
	if got := client.RemotePathFromURL("https://elsewhere.com/blog/x/a.jpg"); got != "" {
		t.Errorf("foreign url should map to empty, got %q", got)
	}
}

func TestRemoteProjectDir(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	got := RemoteProjectDir(now, "abc-123")
	if got != "/www/blog/2026_08_28_abc-123" {
		t.Errorf("got %q", got)
	}
}

func TestDraftFilename(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 30, 5, 0, time.UTC)
	if got := DraftFilename(now); got != "blog_20260828_143005.html" {
		t.Errorf("got %q", got)
	}
}

func TestRenderDraftPage(t *testing.T) {
	page := string(RenderDraftPage("원목가구 <시공>", "<article><p>본문</p></article>", []string{"가구", "원목"}))

	if !strings.Contains(page, "<title>원목가구 &lt;시공&gt;</title>") {
		t.Error("title should be escaped")
	}
	if !strings.Contains(page, "<article><p>본문</p></article>") {
		t.Error("content html should pass through unescaped")
	}
	if !strings.Contains(page, `<span class="tag">#가구</span>`) || !strings.Contains(page, `<span class="tag">#원목</span>`) {
		t.Error("tags should render as spans")
	}
	if !strings.Contains(page, "Noto Sans KR") {
		t.Error("page should carry the preview styles")
	}
	if !strings.Contains(page, `lang="ko"`) {
		t.Error("page should declare korean")
	}
}

type captureUploader struct {
	data []byte
	path string
}

func (c *captureUploader) UploadBytes(_ context.Context, data []byte, remotePath string) (string, error) {
	c.data = data
	c.path = remotePath
	return "https://example.cafe24.com" + remotePath, nil
}

func TestPublishDraft(t *testing.T) {
	uploader := &captureUploader{}
	pub := NewDraftPublisher(uploader)
	pub.now = func() time.Time { return time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC) }

	url, err := pub.PublishDraft(context.Background(), "/www/blog/2026_08_28_p1", core.GeneratedContent{
		Title:       "제목",
		ContentHTML: "<article></article>",
		Tags:        []string{"태그"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if uploader.path != "/www/blog/2026_08_28_p1/drafts/blog_20260828_090000.html" {
		t.Errorf("remote path = %q", uploader.path)
	}
	if !strings.Contains(string(uploader.data), "<h1>제목</h1>") {
		t.Error("uploaded page missing title")
	}
	if !strings.HasSuffix(url, "blog_20260828_090000.html") {
		t.Errorf("url = %q", url)
	}
}
