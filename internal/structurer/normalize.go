package structurer

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	openingFence = regexp.MustCompile("^```\\w*\\n?")
	closingFence = regexp.MustCompile("\\n?```$")
)

// bracketPairs are tried in priority order: arrays first, then objects.
var bracketPairs = [][2]byte{{'[', ']'}, {'{', '}'}}

// Normalize recovers a single well-formed JSON value from an LLM reply that
// may be wrapped in markdown fences or surrounded by prose.
//
// It returns the text unchanged if it already parses, otherwise the first
// balanced [...] or {...} candidate that parses. When nothing parses the
// trimmed text is returned and the caller surfaces the parse error.
func Normalize(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		text = openingFence.ReplaceAllString(text, "")
		text = closingFence.ReplaceAllString(text, "")
		text = strings.TrimSpace(text)
	}

	if json.Valid([]byte(text)) {
		return text
	}

	for _, pair := range bracketPairs {
		if candidate, ok := balancedCandidate(text, pair[0], pair[1]); ok {
			return candidate
		}
	}

	return text
}

// balancedCandidate scans from the first open byte, tracking depth and
// skipping brackets inside string literals. The first balanced span is
// returned if it is valid JSON; if it is not, this bracket kind is abandoned.
func balancedCandidate(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				candidate := text[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, true
				}
				return "", false
			}
		}
	}

	// Unbalanced, e.g. a truncated reply.
	return "", false
}
