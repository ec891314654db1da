package content

import "time"

// Chapter is the root level of the rulebook tree.
type Chapter struct {
	ID          ID          `json:"id"`
	Number      string      `json:"chapter_n"`
	Title       string      `json:"title"`
	Environment Environment `json:"environment"`
}

// Article groups rules inside a chapter.
type Article struct {
	ID        ID     `json:"id"`
	ChapterID ID     `json:"chapter_id"`
	Number    string `json:"article_n"`
	Title     string `json:"title"`
}

// Rule is a single numbered rule of the rulebook.
type Rule struct {
	ID          ID          `json:"id"`
	ArticleID   ID          `json:"article_id"`
	Number      string      `json:"rule_n"`
	Title       string      `json:"title"`
	Text        string      `json:"text"`
	Notes       string      `json:"notes,omitempty"`
	Environment Environment `json:"environment"`
}

// Case is a casebook clarification attached to one or more rules.
// Cases carry no environment of their own; they inherit it from the rules
// they reference.
type Case struct {
	ID         ID     `json:"id"`
	CaseNumber int    `json:"case_number"`
	RuleRefs   []ID   `json:"rule_refs"`
	Title      string `json:"case_title,omitempty"`
	Text       string `json:"case_text"`
	Ruling     string `json:"case_ruling"`
}

// Guideline is a referee guideline attached to an article and some of its rules.
type Guideline struct {
	ID          ID          `json:"id"`
	ArticleID   ID          `json:"article_id"`
	RuleIDs     []ID        `json:"rule_ids"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	Environment Environment `json:"environment"`
}

// Definition is a glossary entry of the rulebook.
type Definition struct {
	ID          ID          `json:"id"`
	Term        string      `json:"term"`
	Definition  string      `json:"definition"`
	Environment Environment `json:"environment"`
}

// ProtocolGroup separates game protocols from the other protocols.
type ProtocolGroup string

const (
	ProtocolGame  ProtocolGroup = "game"
	ProtocolOther ProtocolGroup = "other"
)

// Protocol is a match or referee protocol.
type Protocol struct {
	ID          ID            `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	Group       ProtocolGroup `json:"protocol_group"`
	Environment Environment   `json:"environment"`
}

// Protocols is the grouped protocol listing of one environment.
type Protocols struct {
	Game  []Protocol `json:"game_protocols"`
	Other []Protocol `json:"other_protocols"`
}

// Diagram is a court or procedure diagram.
type Diagram struct {
	ID          ID          `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ImageURL    string      `json:"image_url"`
	Environment Environment `json:"environment"`
}

// Gesture is a referee hand signal.
type Gesture struct {
	ID          ID          `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ImageURL    string      `json:"image_url"`
	Environment Environment `json:"environment"`
}

// ExtraKind identifies supplementary content.
type ExtraKind string

const (
	ExtraNews       ExtraKind = "news"
	ExtraMultimedia ExtraKind = "multimedia"
)

// Extra is supplementary news or multimedia content. Extras have no
// environment and never take part in the rulebook search.
type Extra struct {
	ID        ID        `json:"id"`
	Kind      ExtraKind `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	URL       string    `json:"url,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
