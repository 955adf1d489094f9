package caster

import "strings"

const (
	openingBrackets = "([{"
	closingBrackets = ")]}"
)

// SplitList splits raw on the literal separator and trims every part. Empty
// parts are kept so positions stay aligned; see CompactList.
func SplitList(raw string, separator string) []string {
	parts := strings.Split(raw, separator)
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// CompactList drops empty parts.
func CompactList(parts []string) []string {
	compacted := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			compacted = append(compacted, part)
		}
	}
	return compacted
}

// StripWrapping removes a leading run of ( [ { and a trailing run of ) ] } so
// items may be written as "(HAN*SGN)".
func StripWrapping(token string) string {
	token = strings.TrimLeft(token, openingBrackets)
	return strings.TrimRight(token, closingBrackets)
}

// TokenAt returns tokens[index], or "" when index is out of range.
func TokenAt(tokens []string, index int) string {
	if index < 0 || index >= len(tokens) {
		return ""
	}
	return tokens[index]
}
