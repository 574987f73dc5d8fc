package advisory

import (
	"encoding/json"
	"strconv"
	"strings"
)

// fieldPaths is the ordered list of places a usable free-text answer
// may live in an advisory response. The upstream schema is not under
// our control, so extraction takes the first present non-empty string.
var fieldPaths = []string{
	"recommendation",
	"insight",
	"message",
	"text",
	"result",
	"output",
	"response",
	"content",
	"data.recommendation",
	"data.insight",
	"candidates.0.content.parts.0.text",
}

// ExtractText pulls the first usable free-text field out of a raw JSON
// advisory response. Returns "" when nothing usable is found.
func ExtractText(body []byte) string {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		// a bare non-JSON body may still be usable prose
		s := strings.TrimSpace(string(body))
		if s != "" && !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "[") {
			return s
		}
		return ""
	}

	// a JSON string at top level is already the answer
	if s, ok := doc.(string); ok {
		return strings.TrimSpace(s)
	}

	for _, path := range fieldPaths {
		if s := lookupPath(doc, path); strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// lookupPath walks a dotted path through maps and slices. Numeric
// segments index into arrays.
func lookupPath(doc any, path string) string {
	cur := doc
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return ""
			}
			cur = v
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return ""
			}
			cur = node[idx]
		default:
			return ""
		}
	}
	s, _ := cur.(string)
	return s
}
