package content

import (
	"strconv"
	"strings"
)

// Field is one searchable (name, text) pair of a record.
type Field struct {
	Name string
	Text string
}

// Record is the normalized, kind-tagged projection of one backend row.
// Source holds the concrete variant (Rule, Case, ...).
type Record struct {
	Kind        Kind
	ID          ID
	Environment Environment // empty for cases, which inherit it through RuleIDs
	Fields      []Field
	Title       string
	Primary     string
	Secondary   string
	RuleIDs     []ID
	ArticleID   ID
	Source      any
}

// fields builds the searchable field list, dropping empty columns so that a
// row missing a column is only skipped for that column.
func fields(pairs ...string) []Field {
	out := make([]Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			continue
		}
		out = append(out, Field{Name: pairs[i], Text: pairs[i+1]})
	}
	return out
}

func joinTitle(number, title string) string {
	switch {
	case number == "":
		return title
	case title == "":
		return number
	default:
		return number + " " + title
	}
}

// FromRule normalizes a rule row.
func FromRule(r Rule) Record {
	return Record{
		Kind:        KindRule,
		ID:          r.ID,
		Environment: r.Environment,
		Fields:      fields("rule_n", r.Number, "title", r.Title, "text", r.Text, "notes", r.Notes),
		Title:       joinTitle(r.Number, r.Title),
		Primary:     r.Text,
		Secondary:   r.Notes,
		ArticleID:   r.ArticleID,
		Source:      r,
	}
}

// FromCase normalizes a casebook row.
func FromCase(c Case) Record {
	title := c.Title
	if title == "" {
		title = "Case " + strconv.Itoa(c.CaseNumber)
	}
	return Record{
		Kind:      KindCase,
		ID:        c.ID,
		Fields:    fields("case_title", c.Title, "case_text", c.Text, "case_ruling", c.Ruling),
		Title:     title,
		Primary:   c.Text,
		Secondary: c.Ruling,
		RuleIDs:   c.RuleRefs,
		Source:    c,
	}
}

// FromGuideline normalizes a referee guideline row.
func FromGuideline(g Guideline) Record {
	return Record{
		Kind:        KindGuideline,
		ID:          g.ID,
		Environment: g.Environment,
		Fields:      fields("title", g.Title, "content", g.Content),
		Title:       g.Title,
		Primary:     g.Content,
		RuleIDs:     g.RuleIDs,
		ArticleID:   g.ArticleID,
		Source:      g,
	}
}

// FromDefinition normalizes a definition row. Definitions share the
// guideline category but name their columns term/definition.
func FromDefinition(d Definition) Record {
	return Record{
		Kind:        KindDefinition,
		ID:          d.ID,
		Environment: d.Environment,
		Fields:      fields("term", d.Term, "definition", d.Definition),
		Title:       d.Term,
		Primary:     d.Definition,
		Source:      d,
	}
}

// FromProtocol normalizes a protocol row.
func FromProtocol(p Protocol) Record {
	return Record{
		Kind:        KindProtocol,
		ID:          p.ID,
		Environment: p.Environment,
		Fields:      fields("title", p.Title, "content", p.Content),
		Title:       p.Title,
		Primary:     p.Content,
		Source:      p,
	}
}

// FromDiagram normalizes a diagram row.
func FromDiagram(d Diagram) Record {
	return Record{
		Kind:        KindDiagram,
		ID:          d.ID,
		Environment: d.Environment,
		Fields:      fields("title", d.Title, "description", d.Description),
		Title:       d.Title,
		Primary:     d.Description,
		Source:      d,
	}
}

// FromGesture normalizes a referee gesture row.
func FromGesture(g Gesture) Record {
	return Record{
		Kind:        KindGesture,
		ID:          g.ID,
		Environment: g.Environment,
		Fields:      fields("name", g.Name, "description", g.Description),
		Title:       g.Name,
		Primary:     g.Description,
		Source:      g,
	}
}

// normalize maps a list of rows onto records. A nil input stays nil so a
// missing collection can be told apart from an empty one.
func normalize[T any](rows []T, fn func(T) Record) []Record {
	if rows == nil {
		return nil
	}
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = fn(row)
	}
	return out
}
