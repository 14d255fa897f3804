package search

import "strings"

// Span marks one case-insensitive occurrence of the query inside a text
// field, as byte offsets into the original string.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Highlight returns the spans of every non-overlapping, case-insensitive
// occurrence of query within text. It is a pure text function, independent
// of the fetch path. An empty query or text yields no spans.
//
// Matching is done on the lowercased byte representation; offsets are valid
// for the original text as long as lowercasing does not change byte length,
// which holds for the ASCII queries this search accepts.
func Highlight(text, query string) []Span {
	if text == "" || query == "" {
		return nil
	}

	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	var spans []Span
	start := 0
	for {
		idx := strings.Index(lowerText[start:], lowerQuery)
		if idx == -1 {
			break
		}
		abs := start + idx
		spans = append(spans, Span{Start: abs, End: abs + len(lowerQuery)})
		start = abs + len(lowerQuery)
	}
	return spans
}

// Matches reports whether query occurs case-insensitively in text
func Matches(text, query string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}

// FieldHighlights computes spans for every displayed field of a result.
// Fields without an occurrence are omitted, so a result matched on its
// subtitle or metadata still carries emphasis targets.
func FieldHighlights(title, subtitle string, metadata map[string]string, query string) map[string][]Span {
	highlights := make(map[string][]Span)
	if spans := Highlight(title, query); len(spans) > 0 {
		highlights["title"] = spans
	}
	if spans := Highlight(subtitle, query); len(spans) > 0 {
		highlights["subtitle"] = spans
	}
	for key, value := range metadata {
		if spans := Highlight(value, query); len(spans) > 0 {
			highlights["metadata."+key] = spans
		}
	}
	if len(highlights) == 0 {
		return nil
	}
	return highlights
}
