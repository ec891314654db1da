package disclosure

import (
	"fmt"
	"strings"

	"rulebook-api/internal/content"
)

// Level is a depth of the rulebook tree.
type Level string

const (
	LevelChapter Level = "chapter"
	LevelArticle Level = "article"
	LevelRule    Level = "rule"
)

// ParseLevel validates a level name; plural forms are accepted.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")) {
	case LevelChapter:
		return LevelChapter, nil
	case LevelArticle:
		return LevelArticle, nil
	case LevelRule:
		return LevelRule, nil
	}
	return "", fmt.Errorf("unknown tree level %q", s)
}

// State is the expand/collapse state of a node.
type State string

const (
	StateCollapsed State = "collapsed"
	StateExpanding State = "expanding"
	StateExpanded  State = "expanded"
)

// NodeKey identifies a node. Ids are only unique within a level.
type NodeKey struct {
	Level Level
	ID    content.ID
}

func (k NodeKey) String() string {
	return string(k.Level) + ":" + string(k.ID)
}

// ChapterKey, ArticleKey and RuleKey build keys for the three levels.
func ChapterKey(id content.ID) NodeKey { return NodeKey{Level: LevelChapter, ID: id} }
func ArticleKey(id content.ID) NodeKey { return NodeKey{Level: LevelArticle, ID: id} }
func RuleKey(id content.ID) NodeKey    { return NodeKey{Level: LevelRule, ID: id} }

type node struct {
	key      NodeKey
	parentID content.ID
	state    State
	record   any
	// children stays nil until fetched. Rules have no children and are
	// created with an empty, fetched list.
	children []NodeKey
	fetched  bool
}

// NodeView is a read-only snapshot of a node. Children are included only
// while the node is expanded.
type NodeView struct {
	Level    Level      `json:"level"`
	ID       content.ID `json:"id"`
	ParentID content.ID `json:"parent_id,omitempty"`
	State    State      `json:"state"`
	Record   any        `json:"record"`
	Children []NodeView `json:"children,omitempty"`

	// Rule annotations.
	CaseNumbers []int          `json:"case_numbers,omitempty"`
	CasesOpen   bool           `json:"cases_open,omitempty"`
	Cases       []content.Case `json:"cases,omitempty"`

	// Article annotations. HasGuidelines is nil until the article was expanded.
	HasGuidelines  *bool               `json:"has_guidelines,omitempty"`
	GuidelinesOpen bool                `json:"guidelines_open,omitempty"`
	Guidelines     []content.Guideline `json:"guidelines,omitempty"`
}

// CaseAccordion is the state of a rule's casebook sub-accordion.
type CaseAccordion struct {
	RuleID content.ID     `json:"rule_id"`
	Open   bool           `json:"open"`
	Cases  []content.Case `json:"cases,omitempty"`
}

// GuidelineAccordion is the state of an article's guideline sub-accordion.
type GuidelineAccordion struct {
	ArticleID  content.ID          `json:"article_id"`
	Open       bool                `json:"open"`
	Guidelines []content.Guideline `json:"guidelines,omitempty"`
}

// Stats counts underlying repository calls per tier and the callers whose
// result came from a flight shared with at least one other caller.
type Stats struct {
	Nodes     int          `json:"nodes"`
	Fetches   map[Tier]int `json:"fetches"`
	Coalesced int          `json:"coalesced"`
}
