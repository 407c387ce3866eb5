package address

import "encoding/json"

// ExtractJSONObject returns the first balanced JSON object embedded in free
// text, scanning brace depth while honoring string literals and escapes.
// This is the single boundary for decoding model prose; it reports failure
// instead of erroring so callers decide what a miss means.
func ExtractJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

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
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				candidate := s[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, true
				}
				// keep scanning past an invalid block
				start = -1
			}
		}
	}

	return "", false
}
