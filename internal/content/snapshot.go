package content

// KindCasebookRule tags rules that are only referenced by casebook entries.
// They feed the case/environment linkage and are never searched themselves.
const KindCasebookRule Kind = "casebook_rule"

// Snapshot is the bulk content listing consumed by the search index.
type Snapshot struct {
	Rules          []Rule       `json:"rules"`
	CasebookRules  []Rule       `json:"casebook_rules"`
	Cases          []Case       `json:"cases"`
	Definitions    []Definition `json:"definitions"`
	Guidelines     []Guideline  `json:"guidelines"`
	GameProtocols  []Protocol   `json:"game_protocols"`
	OtherProtocols []Protocol   `json:"other_protocols"`
	Diagrams       []Diagram    `json:"diagrams"`
	Gestures       []Gesture    `json:"gestures"`

	// NullCollections lists the kinds the backend answered with null
	// instead of a list.
	NullCollections []Kind `json:"null_collections,omitempty"`
}

// Collections normalizes the snapshot into kind-keyed record lists.
// A nil collection is left out of the result and therefore counts as empty.
// Kinds listed in NullCollections are present with a nil list.
func (s *Snapshot) Collections() map[Kind][]Record {
	var protocols []Protocol
	if s.GameProtocols != nil || s.OtherProtocols != nil {
		protocols = make([]Protocol, 0, len(s.GameProtocols)+len(s.OtherProtocols))
		protocols = append(protocols, s.GameProtocols...)
		protocols = append(protocols, s.OtherProtocols...)
	}

	out := make(map[Kind][]Record, 8)
	add := func(kind Kind, records []Record) {
		if records != nil {
			out[kind] = records
		}
	}
	add(KindRule, normalize(s.Rules, FromRule))
	add(KindCasebookRule, normalize(s.CasebookRules, casebookRule))
	add(KindCase, normalize(s.Cases, FromCase))
	add(KindDefinition, normalize(s.Definitions, FromDefinition))
	add(KindGuideline, normalize(s.Guidelines, FromGuideline))
	add(KindProtocol, normalize(protocols, FromProtocol))
	add(KindDiagram, normalize(s.Diagrams, FromDiagram))
	add(KindGesture, normalize(s.Gestures, FromGesture))

	for _, kind := range s.NullCollections {
		out[kind] = nil
	}
	return out
}

// MarkNullCollections records every nil collection as a null answer from
// the backend. Call it only after all collections have been filled.
func (s *Snapshot) MarkNullCollections() {
	nils := []struct {
		kind Kind
		null bool
	}{
		{KindRule, s.Rules == nil},
		{KindCasebookRule, s.CasebookRules == nil},
		{KindCase, s.Cases == nil},
		{KindDefinition, s.Definitions == nil},
		{KindGuideline, s.Guidelines == nil},
		{KindProtocol, s.GameProtocols == nil && s.OtherProtocols == nil},
		{KindDiagram, s.Diagrams == nil},
		{KindGesture, s.Gestures == nil},
	}
	s.NullCollections = nil
	for _, n := range nils {
		if n.null {
			s.NullCollections = append(s.NullCollections, n.kind)
		}
	}
}

func casebookRule(r Rule) Record {
	rec := FromRule(r)
	rec.Kind = KindCasebookRule
	return rec
}

// Counts returns the number of rows per collection.
func (s *Snapshot) Counts() map[string]int {
	return map[string]int{
		"rules":           len(s.Rules),
		"casebook_rules":  len(s.CasebookRules),
		"cases":           len(s.Cases),
		"definitions":     len(s.Definitions),
		"guidelines":      len(s.Guidelines),
		"game_protocols":  len(s.GameProtocols),
		"other_protocols": len(s.OtherProtocols),
		"diagrams":        len(s.Diagrams),
		"gestures":        len(s.Gestures),
	}
}
