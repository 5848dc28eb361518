package publish

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// RemoteProjectDir returns the dated remote directory assigned to a project,
// e.g. /www/blog/2026_08_28_<id>.
func RemoteProjectDir(now time.Time, projectID string) string {
	return fmt.Sprintf("/www/blog/%s_%s", now.Format("2006_01_02"), projectID)
}

// DraftFilename returns the timestamped name for a draft page.
func DraftFilename(now time.Time) string {
	return fmt.Sprintf("blog_%s.html", now.Format("20060102_150405"))
}

// RenderDraftPage wraps generated content in a standalone preview document.
func RenderDraftPage(title, contentHTML string, tags []string) []byte {
	var tagSpans strings.Builder
	for _, tag := range tags {
		fmt.Fprintf(&tagSpans, `<span class="tag">#%s</span>`, html.EscapeString(tag))
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="ko">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: 'Noto Sans KR', sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
        img { max-width: 100%%; height: auto; }
        .tags { margin-top: 20px; }
        .tag { display: inline-block; background: #e0e0e0; padding: 5px 10px; margin: 5px; border-radius: 15px; }
    </style>
</head>
<body>
    <h1>%s</h1>
    %s
    <div class="tags">
        %s
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(title), contentHTML, tagSpans.String())

	return []byte(page)
}
