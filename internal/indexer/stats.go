package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"rulebook-api/internal/content"
	"rulebook-api/internal/search"
)

// IndexStats describes the currently published search index.
type IndexStats struct {
	// BuiltAt is when the build started.
	BuiltAt time.Time `json:"built_at"`
	// Duration is how long loading and building took.
	Duration time.Duration `json:"duration_ns"`
	// Counts is the number of rows per snapshot collection.
	Counts map[string]int `json:"counts"`
	// Records is the number of indexed records per kind.
	Records map[content.Kind]int `json:"records"`
	// RuleIDsByEnvironment is the number of rule ids known per environment.
	RuleIDsByEnvironment map[content.Environment]int `json:"rule_ids_by_environment"`
	// CaseIDsByEnvironment is the number of cases visible per environment.
	CaseIDsByEnvironment map[content.Environment]int `json:"case_ids_by_environment"`
	// Version fingerprints the snapshot content; it changes whenever the
	// indexed content does.
	Version string `json:"version"`
}

func newIndexStats(snap *content.Snapshot, ixStats search.Stats, builtAt time.Time, d time.Duration) IndexStats {
	return IndexStats{
		BuiltAt:              builtAt,
		Duration:             d,
		Counts:               snap.Counts(),
		Records:              ixStats.Records,
		RuleIDsByEnvironment: ixStats.RuleIDsByEnvironment,
		CaseIDsByEnvironment: ixStats.CaseIDsByEnvironment,
		Version:              snapshotVersion(snap),
	}
}

// snapshotVersion hashes the JSON form of the snapshot. 16 hex chars.
func snapshotVersion(snap *content.Snapshot) string {
	data, err := json.Marshal(snap)
	if err != nil {
		return ""
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])[:16]
}
