package llm

import "strings"

// ExtractJSONBlock strips a Markdown code fence from a model response before
// JSON decoding. Models wrap structured output three ways: a fence labeled
// "json", an unlabeled fence, or no fence at all; all three reduce to the inner
// text, trimmed. Malformed fences (no closing ```) fall back to everything
// after the opening fence.
func ExtractJSONBlock(response string) string {
	text := response

	switch {
	case strings.Contains(text, "```json"):
		text = after(text, "```json")
		text = before(text, "```")
	case strings.Contains(text, "```"):
		text = after(text, "```")
		text = before(text, "```")
	}

	return strings.TrimSpace(text)
}

func after(s, marker string) string {
	if i := strings.Index(s, marker); i >= 0 {
		return s[i+len(marker):]
	}
	return s
}

func before(s, marker string) string {
	if i := strings.Index(s, marker); i >= 0 {
		return s[:i]
	}
	return s
}
