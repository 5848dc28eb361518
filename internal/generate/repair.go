package generate

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractImageSources returns every img src attribute found in the HTML, in
// document order. Malformed markup yields whatever the parser can recover.
func ExtractImageSources(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var sources []string
	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("src"); ok && src != "" {
			sources = append(sources, src)
		}
	})
	return sources
}

// missingImages returns the required URLs absent from the HTML, preserving
// their original order.
func missingImages(required []string, html string) []string {
	present := make(map[string]bool)
	for _, src := range ExtractImageSources(html) {
		present[src] = true
	}

	var missing []string
	for _, url := range required {
		if !present[url] {
			missing = append(missing, url)
		}
	}
	return missing
}

// RepairImageCompleteness guarantees that every required image URL appears in
// the HTML. Missing ones get a minimal figure with an empty caption, inserted
// as a batch before the closing article tag, or appended when that tag is
// absent. Running the pass again on its own output changes nothing.
func RepairImageCompleteness(html string, required []string) (string, []string) {
	missing := missingImages(required, html)
	if len(missing) == 0 {
		return html, nil
	}

	var b strings.Builder
	for _, url := range missing {
		position := indexOf(required, url) + 1
		fmt.Fprintf(&b, `<figure><img src="%s" alt="photo %d"><figcaption></figcaption></figure>`, url, position)
	}
	block := b.String()

	if idx := strings.LastIndex(html, "</article>"); idx >= 0 {
		return html[:idx] + block + html[idx:], missing
	}
	return html + block, missing
}

func indexOf(urls []string, target string) int {
	for i, url := range urls {
		if url == target {
			return i
		}
	}
	return -1
}
