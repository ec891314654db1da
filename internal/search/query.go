package search

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"rulebook-api/internal/content"
)

// snippetWidth is the maximum number of runes in a result snippet.
const snippetWidth = 160

// Category restricts a query to one collection, or to all of them.
type Category string

const (
	CategoryAll       Category = "all"
	CategoryRule      Category = "rule"
	CategoryCasebook  Category = "casebook"
	CategoryGuideline Category = "guideline"
	CategoryProtocol  Category = "protocol"
	CategoryDiagram   Category = "diagram"
	CategoryGesture   Category = "gesture"
)

var categoryKinds = map[Category][]content.Kind{
	CategoryAll:       slices.Clone(content.Kinds),
	CategoryRule:      {content.KindRule},
	CategoryCasebook:  {content.KindCase},
	CategoryGuideline: {content.KindDefinition, content.KindGuideline},
	CategoryProtocol:  {content.KindProtocol},
	CategoryDiagram:   {content.KindDiagram},
	CategoryGesture:   {content.KindGesture},
}

// ParseCategory validates a category name. An empty name means all
// categories; plural forms ("rules", "guidelines") are accepted.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return CategoryAll, nil
	}
	if _, ok := categoryKinds[Category(name)]; ok {
		return Category(name), nil
	}
	if singular := strings.TrimSuffix(name, "s"); singular != name {
		if _, ok := categoryKinds[Category(singular)]; ok {
			return Category(singular), nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Kinds returns a copy of the record kinds scanned for this category, in
// priority order.
func (c Category) Kinds() []content.Kind {
	return slices.Clone(categoryKinds[c])
}

// Result is a display-ready projection of a matching record.
type Result struct {
	Kind             content.Kind `json:"kind"`
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Snippet          string       `json:"snippet"`
	SecondarySnippet string       `json:"secondary_snippet,omitempty"`
	Source           any          `json:"source"`
}

// Search returns every record of the category visible under env whose
// searchable fields contain text, case-insensitively. Results follow the
// fixed kind priority order and, within a kind, repository order. A blank
// query returns no results.
func (ix *Index) Search(text string, env content.Environment, category Category) []Result {
	results := []Result{}
	query := strings.TrimSpace(text)
	if query == "" {
		return results
	}
	needle := strings.ToLower(query)

	for _, kind := range categoryKinds[category] {
		for _, e := range ix.entries[kind] {
			if !ix.visible(e.rec, env) || !e.matches(needle) {
				continue
			}
			results = append(results, project(e.rec, needle))
		}
	}
	return results
}

func project(rec content.Record, needle string) Result {
	return Result{
		Kind:             rec.Kind,
		ID:               rec.Kind.Prefix() + "-" + rec.ID.String(),
		Title:            rec.Title,
		Snippet:          snippet(rec.Primary, needle, snippetWidth),
		SecondarySnippet: snippet(rec.Secondary, needle, snippetWidth),
		Source:           rec.Source,
	}
}

// snippet cuts a window of at most width runes out of text, centred on the
// first occurrence of needle when there is one.
func snippet(text, needle string, width int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}

	start := 0
	if at := indexFold(runes, []rune(needle)); at >= 0 {
		start = at - width/3
		if start < 0 {
			start = 0
		}
	}
	end := start + width
	if end > len(runes) {
		end = len(runes)
		start = end - width
	}

	out := string(runes[start:end])
	if start > 0 {
		out = "…" + out
	}
	if end < len(runes) {
		out += "…"
	}
	return out
}

// indexFold finds needle (already lower-case) in haystack, ignoring case.
func indexFold(haystack, needle []rune) int {
	if len(needle) == 0 {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, r := range needle {
			if unicode.ToLower(haystack[i+j]) != r {
				continue outer
			}
		}
		return i
	}
	return -1
}
