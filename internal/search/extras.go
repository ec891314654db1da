package search

import (
	"strings"

	"rulebook-api/internal/content"
)

// FilterExtras narrows a list of extras by kind and tags. An extra passes the
// tag filter when it carries any of the requested tags (OR semantics); an
// empty tag list or kind disables that filter. Order is preserved.
func FilterExtras(extras []content.Extra, tags []string, kind content.ExtraKind) []content.Extra {
	wanted := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			wanted[tag] = struct{}{}
		}
	}

	out := make([]content.Extra, 0, len(extras))
	for _, extra := range extras {
		if kind != "" && extra.Kind != kind {
			continue
		}
		if len(wanted) > 0 && !hasAnyTag(extra.Tags, wanted) {
			continue
		}
		out = append(out, extra)
	}
	return out
}

func hasAnyTag(tags []string, wanted map[string]struct{}) bool {
	for _, tag := range tags {
		if _, ok := wanted[strings.ToLower(tag)]; ok {
			return true
		}
	}
	return false
}
