// Package content defines the rulebook data model shared by the repository
// implementations, the search index and the disclosure cache.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is an opaque record identifier, unique within its collection.
// The hosted backend uses integer keys; everything above the repository
// layer treats them as strings.
type ID string

// String returns the identifier as a plain string.
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both JSON numbers and JSON strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Int64 returns the identifier as an integer, for backends keyed by integers.
func (id ID) Int64() (int64, error) {
	return strconv.ParseInt(string(id), 10, 64)
}

// IDs converts a list of identifiers to plain strings.
func IDs(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// Environment is the top-level scope partition of the rulebook.
type Environment string

const (
	EnvironmentIndoor Environment = "indoor"
	EnvironmentBeach  Environment = "beach"
)

// Environments lists every environment in display order.
var Environments = []Environment{EnvironmentIndoor, EnvironmentBeach}

// ParseEnvironment validates an environment tag.
func ParseEnvironment(s string) (Environment, error) {
	switch env := Environment(strings.ToLower(strings.TrimSpace(s))); env {
	case EnvironmentIndoor, EnvironmentBeach:
		return env, nil
	default:
		return "", fmt.Errorf("unknown environment %q", s)
	}
}

// Kind discriminates the variants of Record.
type Kind string

const (
	KindRule       Kind = "rule"
	KindCase       Kind = "casebook"
	KindGuideline  Kind = "guideline"
	KindDefinition Kind = "definition"
	KindProtocol   Kind = "protocol"
	KindDiagram    Kind = "diagram"
	KindGesture    Kind = "gesture"
)

// Kinds lists every searchable kind in scan priority order.
var Kinds = []Kind{KindRule, KindCase, KindDefinition, KindGuideline, KindProtocol, KindDiagram, KindGesture}

// Prefix returns the prefix used for display identifiers of this kind.
func (k Kind) Prefix() string {
	switch k {
	case KindCase:
		return "case"
	default:
		return string(k)
	}
}
