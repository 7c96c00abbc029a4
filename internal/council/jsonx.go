package council

import "strings"

// Model output that should be structured data often arrives wrapped in
// prose or markdown fencing. Stage 2 and Stage 3 share these extraction
// helpers but keep their repair policies distinct: Stage 2 silently drops
// a reviewer whose sheet will not parse, Stage 3 substitutes a single
// placeholder idea.

// extractObject returns the span from the first '{' to the last '}' in s.
// The span parse tolerates surrounding prose and code fences without
// caring which the model used.
func extractObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// stripCodeFences removes leading/trailing markdown code-fence markers.
// Used before the chairman's strict full-document parse, which is
// intentionally less forgiving than extractObject.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
