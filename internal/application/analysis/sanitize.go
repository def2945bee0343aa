package analysis

import "strings"

// Model responses routinely arrive wrapped in markdown fences or with prose
// around the JSON. Sanitization is textual only: it removes known wrapping
// noise and validates nothing.

// StripFences removes fenced-code markers (with or without a language tag)
// anywhere in the text and trims surrounding whitespace. Running it on
// already-clean text is a no-op, so it is safe to apply unconditionally.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ExtractJSON is the aggressive second pass: it cuts the text down to the
// outermost JSON value by locating the first opening brace/bracket and the
// last matching closer. Used only after a plain parse of the fence-stripped
// text has failed.
func ExtractJSON(s string) string {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return s
	}
	return s[start : end+1]
}
