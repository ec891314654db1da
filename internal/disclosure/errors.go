package disclosure

import (
	"errors"
	"fmt"
)

// ErrUnknownNode is returned when a node is toggled before its parent has
// enumerated it.
var ErrUnknownNode = errors.New("unknown node")

// Tier names the loading step that failed.
type Tier string

const (
	TierChapters           Tier = "chapters"
	TierChildren           Tier = "children"
	TierCaseExistence      Tier = "case-existence"
	TierGuidelineExistence Tier = "guideline-existence"
	TierCaseDetails        Tier = "case-details"
	TierGuidelineDetails   Tier = "guideline-details"
)

// LoadError wraps a repository failure with the node and tier that failed,
// so that callers can offer a retry of that one node.
type LoadError struct {
	NodeID string
	Tier   Tier
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s for %s: %v", e.Tier, e.NodeID, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
