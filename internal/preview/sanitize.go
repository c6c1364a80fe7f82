package preview

import (
	"html"
	"regexp"

	"github.com/itkodovaya/site-builder/internal/domain"
)

// unsafePatterns is the closed set of substrings/patterns the detector
// matches. Render applies them only to an external renderer's raw output;
// a match discards that output in favour of the built-in renderer and does
// not abort the preview. Built-in section content is HTML-escaped by
// sanitizeSection and is not scanned.
var unsafePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)<iframe`),
	regexp.MustCompile(`(?i)<object`),
	regexp.MustCompile(`(?i)<embed`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
}

// containsUnsafeContent scans raw (an external renderer's output) for the
// unsafe-content patterns.
func containsUnsafeContent(raw []byte) bool {
	for _, p := range unsafePatterns {
		if p.Match(raw) {
			return true
		}
	}
	return false
}

// sanitizeSection HTML-escapes every string reachable from a section's
// props, recursively through maps and slices, and returns a copy safe to
// embed or serialize. The section's id and type are not attacker-controlled
// template input and pass through unescaped.
func sanitizeSection(s domain.ConfigSection) domain.ConfigSection {
	return domain.ConfigSection{
		ID:    s.ID,
		Type:  s.Type,
		Props: sanitizeValue(s.Props).(map[string]any),
	}
}

func sanitizeValue(v any) any {
	switch t := v.(type) {
	case string:
		return escapeString(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = sanitizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = sanitizeValue(val)
		}
		return out
	default:
		return v
	}
}

// escapeString escapes the five characters the contract names (& < > " ').
func escapeString(s string) string {
	return html.EscapeString(s)
}
