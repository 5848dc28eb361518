package generate

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractImageSources(t *testing.T) {
	html := `<article>
		<figure><img src="https://cdn.example.com/a.jpg" alt="a"><figcaption>첫번째</figcaption></figure>
		<p>text</p>
		<figure><img class="wide" src='https://cdn.example.com/b.jpg' alt="b"></figure>
	</article>`

	got := ExtractImageSources(html)
	want := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sources = %v, want %v", got, want)
	}
}

func TestRepairInsertsMissingImages(t *testing.T) {
	required := []string{
		"https://cdn.example.com/1.jpg",
		"https://cdn.example.com/2.jpg",
		"https://cdn.example.com/3.jpg",
	}
	html := `<article><p>글</p><figure><img src="https://cdn.example.com/1.jpg" alt="one"><figcaption>하나</figcaption></figure></article>`

	repaired, missing := RepairImageCompleteness(html, required)

	if want := []string{required[1], required[2]}; !reflect.DeepEqual(missing, want) {
		t.Errorf("missing = %v, want %v", missing, want)
	}
	got := ExtractImageSources(repaired)
	if !reflect.DeepEqual(got, required) {
		t.Errorf("repaired sources = %v, want all of %v", got, required)
	}
	if !strings.HasSuffix(repaired, "</article>") {
		t.Error("insertion must land before the closing article tag")
	}
	if !strings.Contains(repaired, `alt="photo 2"`) || !strings.Contains(repaired, `alt="photo 3"`) {
		t.Error("inserted figures should carry positional alt text")
	}
	if !strings.Contains(repaired, "<figcaption></figcaption>") {
		t.Error("inserted figures should have empty captions")
	}
}

func TestRepairAppendsWithoutClosingTag(t *testing.T) {
	required := []string{"https://cdn.example.com/1.jpg"}
	repaired, missing := RepairImageCompleteness("<p>잘린 출력", required)

	if len(missing) != 1 {
		t.Fatalf("missing = %v", missing)
	}
	if !strings.HasPrefix(repaired, "<p>잘린 출력") {
		t.Error("original content must be preserved")
	}
	if got := ExtractImageSources(repaired); len(got) != 1 || got[0] != required[0] {
		t.Errorf("sources = %v", got)
	}
}

func TestRepairIdempotent(t *testing.T) {
	required := []string{
		"https://cdn.example.com/1.jpg",
		"https://cdn.example.com/2.jpg",
	}
	once, _ := RepairImageCompleteness("<article></article>", required)
	twice, missing := RepairImageCompleteness(once, required)

	if len(missing) != 0 {
		t.Errorf("second pass found missing images: %v", missing)
	}
	if once != twice {
		t.Error("second pass must not change the output")
	}
}

func TestRepairCompleteOutputUntouched(t *testing.T) {
	required := []string{"https://cdn.example.com/1.jpg"}
	html := `<article><figure><img src="https://cdn.example.com/1.jpg" alt=""><figcaption></figcaption></figure></article>`

	repaired, missing := RepairImageCompleteness(html, required)
	if missing != nil {
		t.Errorf("missing = %v, want nil", missing)
	}
	if repaired != html {
		t.Error("complete output must pass through unchanged")
	}
}
