package publish

import (
	"context"
	"path"
	"time"

	"blogforge/internal/core"
)

// Uploader is the transfer surface the draft publisher needs.
type Uploader interface {
	UploadBytes(ctx context.Context, data []byte, remotePath string) (string, error)
}

// DraftPublisher renders generated content into a preview page and stores it
// under the project's drafts directory.
type DraftPublisher struct {
	uploader Uploader
	now      func() time.Time
}

func NewDraftPublisher(uploader Uploader) *DraftPublisher {
	return &DraftPublisher{uploader: uploader, now: time.Now}
}

// PublishDraft uploads the rendered page and returns its public URL.
func (p *DraftPublisher) PublishDraft(ctx context.Context, ftpPath string, content core.GeneratedContent) (string, error) {
	page := RenderDraftPage(content.Title, content.ContentHTML, content.Tags)
	remotePath := path.Join(ftpPath, "drafts", DraftFilename(p.now()))
	return p.uploader.UploadBytes(ctx, page, remotePath)
}
