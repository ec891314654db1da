package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"rulebook-api/internal/content"
	"rulebook-api/internal/repository"
)

// ContentRepo serves rulebook content from SQLite.
// It implements repository.Repository and repository.ExtrasStore.
type ContentRepo struct {
	db *sql.DB
}

var (
	_ repository.Repository  = (*ContentRepo)(nil)
	_ repository.ExtrasStore = (*ContentRepo)(nil)
)

// NewContentRepo creates a new ContentRepo.
func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{db: db}
}

// rowScanner is satisfied by *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// queryAll runs query and scans every row with scan. The result is never nil.
func queryAll[T any](ctx context.Context, db *sql.DB, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanChapter(s rowScanner) (content.Chapter, error) {
	var c content.Chapter
	err := s.Scan(&c.ID, &c.Number, &c.Title, &c.Environment)
	return c, err
}

func scanArticle(s rowScanner) (content.Article, error) {
	var a content.Article
	err := s.Scan(&a.ID, &a.ChapterID, &a.Number, &a.Title)
	return a, err
}

func scanRule(s rowScanner) (content.Rule, error) {
	var r content.Rule
	err := s.Scan(&r.ID, &r.ArticleID, &r.Number, &r.Title, &r.Text, &r.Notes, &r.Environment)
	return r, err
}

func scanCase(s rowScanner) (content.Case, error) {
	var (
		c    content.Case
		refs string
	)
	if err := s.Scan(&c.ID, &c.CaseNumber, &refs, &c.Title, &c.Text, &c.Ruling); err != nil {
		return c, err
	}
	if err := json.Unmarshal([]byte(refs), &c.RuleRefs); err != nil {
		return c, fmt.Errorf("case %s rule_refs: %w", c.ID, err)
	}
	return c, nil
}

func scanGuideline(s rowScanner) (content.Guideline, error) {
	var (
		g   content.Guideline
		ids string
	)
	if err := s.Scan(&g.ID, &g.ArticleID, &ids, &g.Title, &g.Content, &g.Environment); err != nil {
		return g, err
	}
	if err := json.Unmarshal([]byte(ids), &g.RuleIDs); err != nil {
		return g, fmt.Errorf("guideline %s rule_ids: %w", g.ID, err)
	}
	return g, nil
}

func scanDefinition(s rowScanner) (content.Definition, error) {
	var d content.Definition
	err := s.Scan(&d.ID, &d.Term, &d.Definition, &d.Environment)
	return d, err
}

func scanProtocol(s rowScanner) (content.Protocol, error) {
	var p content.Protocol
	err := s.Scan(&p.ID, &p.Title, &p.Content, &p.Group, &p.Environment)
	return p, err
}

func scanDiagram(s rowScanner) (content.Diagram, error) {
	var d content.Diagram
	err := s.Scan(&d.ID, &d.Title, &d.Description, &d.ImageURL, &d.Environment)
	return d, err
}

func scanGesture(s rowScanner) (content.Gesture, error) {
	var g content.Gesture
	err := s.Scan(&g.ID, &g.Name, &g.Description, &g.ImageURL, &g.Environment)
	return g, err
}

const (
	chapterColumns    = "id, chapter_n, title, environment"
	articleColumns    = "id, chapter_id, article_n, title"
	ruleColumns       = "id, article_id, rule_n, title, text, notes, environment"
	caseColumns       = "id, case_number, rule_refs, case_title, case_text, case_ruling"
	guidelineColumns  = "id, article_id, rule_ids, title, content, environment"
	definitionColumns = "id, term, definition, environment"
	protocolColumns   = "id, title, content, protocol_group, environment"
	diagramColumns    = "id, title, description, image_url, environment"
	gestureColumns    = "id, name, description, image_url, environment"
)

// placeholders returns "?, ?, ?" for n values and the ids as arguments.
func placeholders(ids []content.ID) (string, []any) {
	marks := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		marks[i] = "?"
		args[i] = id.String()
	}
	return strings.Join(marks, ", "), args
}

func (r *ContentRepo) ListChapters(ctx context.Context, env content.Environment) ([]content.Chapter, error) {
	chapters, err := queryAll(ctx, r.db, scanChapter,
		"SELECT "+chapterColumns+" FROM chapters WHERE environment = ? ORDER BY rowid", env)
	if err != nil {
		return nil, repository.Wrap("list_chapters", err)
	}
	return chapters, nil
}

func (r *ContentRepo) ListArticles(ctx context.Context, chapterID content.ID) ([]content.Article, error) {
	articles, err := queryAll(ctx, r.db, scanArticle,
		"SELECT "+articleColumns+" FROM articles WHERE chapter_id = ? ORDER BY rowid", chapterID)
	if err != nil {
		return nil, repository.Wrap("list_articles", err)
	}
	return articles, nil
}

func (r *ContentRepo) ListRules(ctx context.Context, articleID content.ID) ([]content.Rule, error) {
	rules, err := queryAll(ctx, r.db, scanRule,
		"SELECT "+ruleColumns+" FROM rules WHERE article_id = ? ORDER BY rowid", articleID)
	if err != nil {
		return nil, repository.Wrap("list_rules", err)
	}
	return rules, nil
}

// CheckCaseExistence answers from the rule_refs arrays without loading
// case text.
func (r *ContentRepo) CheckCaseExistence(ctx context.Context, ruleIDs []content.ID) (map[content.ID][]int, error) {
	refs := make(map[content.ID][]int)
	if len(ruleIDs) == 0 {
		return refs, nil
	}

	marks, args := placeholders(ruleIDs)
	type ref struct {
		ruleID     content.ID
		caseNumber int
	}
	rows, err := queryAll(ctx, r.db, func(s rowScanner) (ref, error) {
		var x ref
		err := s.Scan(&x.ruleID, &x.caseNumber)
		return x, err
	}, `SELECT j.value, c.case_number
		FROM casebook c, json_each(c.rule_refs) j
		WHERE j.value IN (`+marks+`)
		ORDER BY c.case_number, c.rowid`, args...)
	if err != nil {
		return nil, repository.Wrap("check_case_existence", err)
	}

	for _, x := range rows {
		refs[x.ruleID] = append(refs[x.ruleID], x.caseNumber)
	}
	return refs, nil
}

func (r *ContentRepo) FetchCaseDetails(ctx context.Context, ruleIDs []content.ID) ([]content.Case, error) {
	if len(ruleIDs) == 0 {
		return []content.Case{}, nil
	}
	marks, args := placeholders(ruleIDs)
	cases, err := queryAll(ctx, r.db, scanCase,
		`SELECT `+caseColumns+` FROM casebook c
		WHERE EXISTS (SELECT 1 FROM json_each(c.rule_refs) j WHERE j.value IN (`+marks+`))
		ORDER BY c.case_number, c.rowid`, args...)
	if err != nil {
		return nil, repository.Wrap("fetch_case_details", err)
	}
	return cases, nil
}

// guidelineWhere matches guidelines of the article or of any of its rules.
func guidelineWhere(articleID content.ID, ruleIDs []content.ID) (string, []any) {
	if len(ruleIDs) == 0 {
		return "g.article_id = ?", []any{articleID.String()}
	}
	marks, args := placeholders(ruleIDs)
	where := "g.article_id = ? OR EXISTS (SELECT 1 FROM json_each(g.rule_ids) j WHERE j.value IN (" + marks + "))"
	return where, append([]any{articleID.String()}, args...)
}

func (r *ContentRepo) CheckGuidelineExistence(ctx context.Context, articleID content.ID, ruleIDs []content.ID) (bool, error) {
	where, args := guidelineWhere(articleID, ruleIDs)
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM guidelines g WHERE "+where+")", args...).Scan(&exists)
	if err != nil {
		return false, repository.Wrap("check_guideline_existence", err)
	}
	return exists, nil
}

func (r *ContentRepo) FetchGuidelineDetails(ctx context.Context, articleID content.ID, ruleIDs []content.ID) ([]content.Guideline, error) {
	where, args := guidelineWhere(articleID, ruleIDs)
	guidelines, err := queryAll(ctx, r.db, scanGuideline,
		"SELECT "+guidelineColumns+" FROM guidelines g WHERE "+where+" ORDER BY g.rowid", args...)
	if err != nil {
		return nil, repository.Wrap("fetch_guideline_details", err)
	}
	return guidelines, nil
}

func (r *ContentRepo) ListDefinitions(ctx context.Context, env content.Environment) ([]content.Definition, error) {
	defs, err := queryAll(ctx, r.db, scanDefinition,
		"SELECT "+definitionColumns+" FROM definitions WHERE environment = ? ORDER BY term COLLATE NOCASE", env)
	if err != nil {
		return nil, repository.Wrap("list_definitions", err)
	}
	return defs, nil
}

func (r *ContentRepo) ListDiagrams(ctx context.Context, env content.Environment) ([]content.Diagram, error) {
	diagrams, err := queryAll(ctx, r.db, scanDiagram,
		"SELECT "+diagramColumns+" FROM diagrams WHERE environment = ? ORDER BY rowid", env)
	if err != nil {
		return nil, repository.Wrap("list_diagrams", err)
	}
	return diagrams, nil
}

func (r *ContentRepo) ListGestures(ctx context.Context, env content.Environment) ([]content.Gesture, error) {
	gestures, err := queryAll(ctx, r.db, scanGesture,
		"SELECT "+gestureColumns+" FROM gestures WHERE environment = ? ORDER BY rowid", env)
	if err != nil {
		return nil, repository.Wrap("list_gestures", err)
	}
	return gestures, nil
}

func (r *ContentRepo) ListProtocols(ctx context.Context, env content.Environment) (*content.Protocols, error) {
	query := "SELECT " + protocolColumns + " FROM protocols WHERE environment = ? AND protocol_group = ? ORDER BY rowid"
	game, err := queryAll(ctx, r.db, scanProtocol, query, env, content.ProtocolGame)
	if err != nil {
		return nil, repository.Wrap("list_protocols", err)
	}
	other, err := queryAll(ctx, r.db, scanProtocol, query, env, content.ProtocolOther)
	if err != nil {
		return nil, repository.Wrap("list_protocols", err)
	}
	return &content.Protocols{Game: game, Other: other}, nil
}

// ListAllForSearch reads every searchable table concurrently.
func (r *ContentRepo) ListAllForSearch(ctx context.Context) (*content.Snapshot, error) {
	snap := &content.Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Rules, err = queryAll(gctx, r.db, scanRule, "SELECT "+ruleColumns+" FROM rules ORDER BY rowid")
		return err
	})
	g.Go(func() (err error) {
		snap.CasebookRules, err = queryAll(gctx, r.db, scanRule, "SELECT "+ruleColumns+" FROM casebook_rules ORDER BY rowid")
		return err
	})
	g.Go(func() (err error) {
		snap.Cases, err = queryAll(gctx, r.db, scanCase, "SELECT "+caseColumns+" FROM casebook ORDER BY rowid")
		return err
	})
	g.Go(func() (err error) {
		snap.Definitions, err = queryAll(gctx, r.db, scanDefinition, "SELECT "+definitionColumns+" FROM definitions ORDER BY rowid")
		return err
	})
	g.Go(func() (err error) {
		snap.Guidelines, err = queryAll(gctx, r.db, scanGuideline, "SELECT "+guidelineColumns+" FROM guidelines ORDER BY rowid")
		return err
	})
	g.Go(func() (err error) {
		snap.GameProtocols, err = queryAll(gctx, r.db, scanProtocol,
			"SELECT "+protocolColumns+" FROM protocols WHERE protocol_group = ? ORDER BY rowid", content.ProtocolGame)
		return err
	})
	g.Go(func() (err error) {
		snap.OtherProtocols, err = queryAll(gctx, r.db, scanProtocol,
			"SELECT "+protocolColumns+" FROM protocols WHERE protocol_group <> ? ORDER BY rowid", content.ProtocolGame)
		return err
	})
	g.Go(func() (err error) {
		snap.Diagrams, err = queryAll(gctx, r.db, scanDiagram, "SELECT "+diagramColumns+" FROM diagrams ORDER BY rowid")
		return err
	})
	g.Go(func() (err error) {
		snap.Gestures, err = queryAll(gctx, r.db, scanGesture, "SELECT "+gestureColumns+" FROM gestures ORDER BY rowid")
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, repository.Wrap("list_all_for_search", err)
	}
	return snap, nil
}

// Ping checks the database connection.
func (r *ContentRepo) Ping(ctx context.Context) error {
	return repository.Wrap("ping", r.db.PingContext(ctx))
}
