package llmtool

import "strings"

// ExtractJSON returns the first balanced {...} object in text, starting at
// the first '{'. Braces inside JSON strings do not count towards depth.
func ExtractJSON(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", &ExtractionError{Reason: "no JSON object found in response"}
	}
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", &ExtractionError{Reason: "unmatched brackets in JSON"}
}
