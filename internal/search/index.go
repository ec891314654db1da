// Package search implements the in-memory content index and the faceted
// substring search over rules, casebook entries, guidelines, definitions,
// protocols, diagrams and gestures.
//
// An Index is immutable once built. Switching environments or reloading
// content means building a new Index and replacing the old one wholesale.
package search

import (
	"fmt"
	"strings"

	"rulebook-api/internal/content"
)

// BuildError is returned by Build when the collaborator handed over a
// collection that is present but null.
type BuildError struct {
	Kind content.Kind
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build index: collection %q is null", e.Kind)
}

// entry is an indexed record with its searchable text pre-lowered.
type entry struct {
	rec     content.Record
	lowered []string
}

func (e entry) matches(needle string) bool {
	for _, text := range e.lowered {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

type idSet map[content.ID]struct{}

// Index is the queryable union of all content collections.
type Index struct {
	entries      map[content.Kind][]entry
	ruleIDsByEnv map[content.Environment]idSet
	caseIDsByEnv map[content.Environment]idSet
}

// Build indexes the given collections. A kind missing from the map is
// treated as empty; a kind mapped to a nil list fails with *BuildError.
// The input records are copied and never modified.
func Build(collections map[content.Kind][]content.Record) (*Index, error) {
	for kind, recs := range collections {
		if recs == nil {
			return nil, &BuildError{Kind: kind}
		}
	}

	ix := &Index{
		entries:      make(map[content.Kind][]entry, len(collections)),
		ruleIDsByEnv: make(map[content.Environment]idSet),
		caseIDsByEnv: make(map[content.Environment]idSet),
	}

	for kind, recs := range collections {
		entries := make([]entry, len(recs))
		for i, rec := range recs {
			rec.Fields = append([]content.Field(nil), rec.Fields...)
			rec.RuleIDs = append([]content.ID(nil), rec.RuleIDs...)
			lowered := make([]string, len(rec.Fields))
			for j, f := range rec.Fields {
				lowered[j] = strings.ToLower(f.Text)
			}
			entries[i] = entry{rec: rec, lowered: lowered}
		}
		ix.entries[kind] = entries
	}

	for _, kind := range []content.Kind{content.KindRule, content.KindCasebookRule} {
		for _, e := range ix.entries[kind] {
			if e.rec.Environment == "" {
				continue
			}
			set, ok := ix.ruleIDsByEnv[e.rec.Environment]
			if !ok {
				set = make(idSet)
				ix.ruleIDsByEnv[e.rec.Environment] = set
			}
			set[e.rec.ID] = struct{}{}
		}
	}

	for env, rules := range ix.ruleIDsByEnv {
		cases := make(idSet)
		for _, e := range ix.entries[content.KindCase] {
			for _, ruleID := range e.rec.RuleIDs {
				if _, ok := rules[ruleID]; ok {
					cases[e.rec.ID] = struct{}{}
					break
				}
			}
		}
		ix.caseIDsByEnv[env] = cases
	}

	return ix, nil
}

// visible reports whether a record belongs to env. Cases are visible when
// one of their referenced rules is; records without an environment never are.
func (ix *Index) visible(rec content.Record, env content.Environment) bool {
	if rec.Kind == content.KindCase {
		_, ok := ix.caseIDsByEnv[env][rec.ID]
		return ok
	}
	return rec.Environment != "" && rec.Environment == env
}

// Stats summarizes the index contents.
type Stats struct {
	Records              map[content.Kind]int        `json:"records"`
	RuleIDsByEnvironment map[content.Environment]int `json:"rule_ids_by_environment"`
	CaseIDsByEnvironment map[content.Environment]int `json:"case_ids_by_environment"`
}

// Stats returns record counts per kind and linkage sizes per environment.
func (ix *Index) Stats() Stats {
	s := Stats{
		Records:              make(map[content.Kind]int, len(ix.entries)),
		RuleIDsByEnvironment: make(map[content.Environment]int, len(ix.ruleIDsByEnv)),
		CaseIDsByEnvironment: make(map[content.Environment]int, len(ix.caseIDsByEnv)),
	}
	for kind, entries := range ix.entries {
		s.Records[kind] = len(entries)
	}
	for env, set := range ix.ruleIDsByEnv {
		s.RuleIDsByEnvironment[env] = len(set)
	}
	for env, set := range ix.caseIDsByEnv {
		s.CaseIDsByEnvironment[env] = len(set)
	}
	return s
}
