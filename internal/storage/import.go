package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"rulebook-api/internal/content"
)

// Dataset is a full content export: the tree levels plus the bulk snapshot.
// It is the on-disk seed format of the SQLite backend.
type Dataset struct {
	Chapters []content.Chapter `json:"chapters"`
	Articles []content.Article `json:"articles"`
	content.Snapshot
	Extras []content.Extra `json:"extras"`
}

// LoadDataset reads a JSON dataset file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return &ds, nil
}

// Import upserts a dataset in one transaction. Rows keep their ids, so
// importing the same dataset twice is a no-op.
func (r *ContentRepo) Import(ctx context.Context, ds *Dataset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range ds.Chapters {
		if err := upsert(ctx, tx, "chapters", chapterColumns, c.ID, c.Number, c.Title, c.Environment); err != nil {
			return err
		}
	}
	for _, a := range ds.Articles {
		if err := upsert(ctx, tx, "articles", articleColumns, a.ID, a.ChapterID, a.Number, a.Title); err != nil {
			return err
		}
	}
	for table, rules := range map[string][]content.Rule{"rules": ds.Rules, "casebook_rules": ds.CasebookRules} {
		for _, rule := range rules {
			if err := upsert(ctx, tx, table, ruleColumns, rule.ID, rule.ArticleID, rule.Number, rule.Title, rule.Text, rule.Notes, rule.Environment); err != nil {
				return err
			}
		}
	}
	for _, c := range ds.Cases {
		refs, err := json.Marshal(content.IDs(c.RuleRefs))
		if err != nil {
			return fmt.Errorf("failed to encode rule refs: %w", err)
		}
		if err := upsert(ctx, tx, "casebook", caseColumns, c.ID, c.CaseNumber, string(refs), c.Title, c.Text, c.Ruling); err != nil {
			return err
		}
	}
	for _, d := range ds.Definitions {
		if err := upsert(ctx, tx, "definitions", definitionColumns, d.ID, d.Term, d.Definition, d.Environment); err != nil {
			return err
		}
	}
	for _, g := range ds.Guidelines {
		ids, err := json.Marshal(content.IDs(g.RuleIDs))
		if err != nil {
			return fmt.Errorf("failed to encode rule ids: %w", err)
		}
		if err := upsert(ctx, tx, "guidelines", guidelineColumns, g.ID, g.ArticleID, string(ids), g.Title, g.Content, g.Environment); err != nil {
			return err
		}
	}
	for _, group := range [][]content.Protocol{ds.GameProtocols, ds.OtherProtocols} {
		for _, p := range group {
			if err := upsert(ctx, tx, "protocols", protocolColumns, p.ID, p.Title, p.Content, p.Group, p.Environment); err != nil {
				return err
			}
		}
	}
	for _, d := range ds.Diagrams {
		if err := upsert(ctx, tx, "diagrams", diagramColumns, d.ID, d.Title, d.Description, d.ImageURL, d.Environment); err != nil {
			return err
		}
	}
	for _, g := range ds.Gestures {
		if err := upsert(ctx, tx, "gestures", gestureColumns, g.ID, g.Name, g.Description, g.ImageURL, g.Environment); err != nil {
			return err
		}
	}
	for _, e := range ds.Extras {
		tags, err := encodeTags(e.Tags)
		if err != nil {
			return err
		}
		if err := upsert(ctx, tx, "extras", extraColumns, e.ID, e.Kind, e.Title, e.Body, e.URL, tags, e.CreatedAt, e.UpdatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

func upsert(ctx context.Context, tx *sql.Tx, table, columns string, values ...any) error {
	cols := strings.Split(columns, ", ")
	marks := make([]string, len(cols))
	sets := make([]string, 0, len(cols)-1)
	for i, col := range cols {
		marks[i] = "?"
		if col != "id" {
			sets = append(sets, col+" = excluded."+col)
		}
	}
	query := "INSERT INTO " + table + " (" + columns + ") VALUES (" + strings.Join(marks, ", ") + ")" +
		" ON CONFLICT (id) DO UPDATE SET " + strings.Join(sets, ", ")
	if _, err := tx.ExecContext(ctx, query, values...); err != nil {
		return fmt.Errorf("failed to import into %s: %w", table, err)
	}
	return nil
}
