// Package supabase implements the content repository, the extras store and
// token verification on top of a hosted Supabase project (PostgREST tables
// and GoTrue auth).
package supabase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
	"golang.org/x/sync/errgroup"

	"rulebook-api/internal/content"
	"rulebook-api/internal/contextutil"
	"rulebook-api/internal/repository"
)

// Table names.
const (
	tableChapters      = "chapters"
	tableArticles      = "articles"
	tableRules         = "rules"
	tableCasebookRules = "casebook_rules"
	tableCasebook      = "casebook"
	tableDefinitions   = "definitions"
	tableGuidelines    = "guidelines"
	tableProtocols     = "protocols"
	tableDiagrams      = "diagrams"
	tableGestures      = "gestures"
	tableExtras        = "extras"
)

var ascending = &postgrest.OrderOpts{Ascending: true}

// Repository reads rulebook content from Supabase.
type Repository struct {
	client *supabase.Client
}

var (
	_ repository.Repository  = (*Repository)(nil)
	_ repository.ExtrasStore = (*Repository)(nil)
)

// NewClient creates a Supabase client for the project at url.
func NewClient(url, key string) (*supabase.Client, error) {
	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return client, nil
}

// New creates a Repository.
func New(client *supabase.Client) *Repository {
	return &Repository{client: client}
}

// getLogger retrieves the logger from context or returns default logger.
func (r *Repository) getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContext(ctx)
}

func (r *Repository) ListChapters(ctx context.Context, env content.Environment) ([]content.Chapter, error) {
	var chapters []content.Chapter
	_, err := r.client.From(tableChapters).
		Select("*", "", false).
		Eq("environment", string(env)).
		Order("id", ascending).
		ExecuteTo(&chapters)
	if err != nil {
		return nil, repository.Wrap("list_chapters", err)
	}
	return orEmpty(chapters), nil
}

func (r *Repository) ListArticles(ctx context.Context, chapterID content.ID) ([]content.Article, error) {
	var articles []content.Article
	_, err := r.client.From(tableArticles).
		Select("*", "", false).
		Eq("chapter_id", chapterID.String()).
		Order("id", ascending).
		ExecuteTo(&articles)
	if err != nil {
		return nil, repository.Wrap("list_articles", err)
	}
	return orEmpty(articles), nil
}

func (r *Repository) ListRules(ctx context.Context, articleID content.ID) ([]content.Rule, error) {
	var rules []content.Rule
	_, err := r.client.From(tableRules).
		Select("*", "", false).
		Eq("article_id", articleID.String()).
		Order("id", ascending).
		ExecuteTo(&rules)
	if err != nil {
		return nil, repository.Wrap("list_rules", err)
	}
	return orEmpty(rules), nil
}

// CheckCaseExistence selects only the case numbers and references of the
// cases overlapping the rules, in a single request.
func (r *Repository) CheckCaseExistence(ctx context.Context, ruleIDs []content.ID) (map[content.ID][]int, error) {
	refs := make(map[content.ID][]int)
	if len(ruleIDs) == 0 {
		return refs, nil
	}

	var rows []content.Case
	_, err := r.client.From(tableCasebook).
		Select("id,case_number,rule_refs", "", false).
		Filter("rule_refs", "ov", pgArray(ruleIDs)).
		Order("case_number", ascending).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.Wrap("check_case_existence", err)
	}

	wanted := make(map[content.ID]struct{}, len(ruleIDs))
	for _, id := range ruleIDs {
		wanted[id] = struct{}{}
	}
	for _, row := range rows {
		for _, ref := range row.RuleRefs {
			if _, ok := wanted[ref]; ok {
				refs[ref] = append(refs[ref], row.CaseNumber)
			}
		}
	}
	r.getLogger(ctx).DebugContext(ctx, "Checked case existence", "rules", len(ruleIDs), "with_cases", len(refs))
	return refs, nil
}

func (r *Repository) FetchCaseDetails(ctx context.Context, ruleIDs []content.ID) ([]content.Case, error) {
	if len(ruleIDs) == 0 {
		return []content.Case{}, nil
	}
	var cases []content.Case
	_, err := r.client.From(tableCasebook).
		Select("*", "", false).
		Filter("rule_refs", "ov", pgArray(ruleIDs)).
		Order("case_number", ascending).
		ExecuteTo(&cases)
	if err != nil {
		return nil, repository.Wrap("fetch_case_details", err)
	}
	return orEmpty(cases), nil
}

func (r *Repository) CheckGuidelineExistence(ctx context.Context, articleID content.ID, ruleIDs []content.ID) (bool, error) {
	var rows []struct {
		ID content.ID `json:"id"`
	}
	_, err := r.client.From(tableGuidelines).
		Select("id", "", false).
		Or(guidelineFilter(articleID, ruleIDs), "").
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return false, repository.Wrap("check_guideline_existence", err)
	}
	return len(rows) > 0, nil
}

func (r *Repository) FetchGuidelineDetails(ctx context.Context, articleID content.ID, ruleIDs []content.ID) ([]content.Guideline, error) {
	var guidelines []content.Guideline
	_, err := r.client.From(tableGuidelines).
		Select("*", "", false).
		Or(guidelineFilter(articleID, ruleIDs), "").
		Order("id", ascending).
		ExecuteTo(&guidelines)
	if err != nil {
		return nil, repository.Wrap("fetch_guideline_details", err)
	}
	return orEmpty(guidelines), nil
}

func (r *Repository) ListDefinitions(ctx context.Context, env content.Environment) ([]content.Definition, error) {
	defs, err := listByEnv[content.Definition](r, tableDefinitions, env, "term")
	if err != nil {
		return nil, repository.Wrap("list_definitions", err)
	}
	return defs, nil
}

func (r *Repository) ListDiagrams(ctx context.Context, env content.Environment) ([]content.Diagram, error) {
	diagrams, err := listByEnv[content.Diagram](r, tableDiagrams, env, "id")
	if err != nil {
		return nil, repository.Wrap("list_diagrams", err)
	}
	return diagrams, nil
}

func (r *Repository) ListGestures(ctx context.Context, env content.Environment) ([]content.Gesture, error) {
	gestures, err := listByEnv[content.Gesture](r, tableGestures, env, "id")
	if err != nil {
		return nil, repository.Wrap("list_gestures", err)
	}
	return gestures, nil
}

// ListProtocols reads the whole protocols table and filters it here, since
// older rows tag their environment as rules_type or protocol_filter instead
// of environment.
func (r *Repository) ListProtocols(ctx context.Context, env content.Environment) (*content.Protocols, error) {
	all, err := r.allProtocols()
	if err != nil {
		return nil, repository.Wrap("list_protocols", err)
	}
	out := &content.Protocols{Game: []content.Protocol{}, Other: []content.Protocol{}}
	for _, p := range all {
		if p.Environment != env {
			continue
		}
		if p.Group == content.ProtocolGame {
			out.Game = append(out.Game, p)
		} else {
			out.Other = append(out.Other, p)
		}
	}
	return out, nil
}

// ListAllForSearch fetches every searchable table concurrently.
func (r *Repository) ListAllForSearch(ctx context.Context) (*content.Snapshot, error) {
	snap := &content.Snapshot{}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Rules, err = listAll[content.Rule](r, tableRules)
		return err
	})
	g.Go(func() (err error) {
		snap.CasebookRules, err = listAll[content.Rule](r, tableCasebookRules)
		return err
	})
	g.Go(func() (err error) {
		snap.Cases, err = listAll[content.Case](r, tableCasebook)
		return err
	})
	g.Go(func() (err error) {
		snap.Definitions, err = listAll[content.Definition](r, tableDefinitions)
		return err
	})
	g.Go(func() (err error) {
		snap.Guidelines, err = listAll[content.Guideline](r, tableGuidelines)
		return err
	})
	g.Go(func() error {
		protocols, err := r.allProtocols()
		if err != nil {
			return err
		}
		if protocols == nil {
			return nil
		}
		snap.GameProtocols = []content.Protocol{}
		snap.OtherProtocols = []content.Protocol{}
		for _, p := range protocols {
			if p.Group == content.ProtocolGame {
				snap.GameProtocols = append(snap.GameProtocols, p)
			} else {
				snap.OtherProtocols = append(snap.OtherProtocols, p)
			}
		}
		return nil
	})
	g.Go(func() (err error) {
		snap.Diagrams, err = listAll[content.Diagram](r, tableDiagrams)
		return err
	})
	g.Go(func() (err error) {
		snap.Gestures, err = listAll[content.Gesture](r, tableGestures)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, repository.Wrap("list_all_for_search", err)
	}
	snap.MarkNullCollections()
	r.getLogger(ctx).InfoContext(ctx, "Loaded search snapshot from supabase", "counts", snap.Counts())
	return snap, nil
}

// Ping issues the cheapest possible query.
func (r *Repository) Ping(ctx context.Context) error {
	var rows []struct {
		ID content.ID `json:"id"`
	}
	_, err := r.client.From(tableChapters).Select("id", "", false).Limit(1, "").ExecuteTo(&rows)
	return repository.Wrap("ping", err)
}

// protocolRow accepts every spelling of the protocol environment column.
type protocolRow struct {
	content.Protocol
	RulesType      content.Environment `json:"rules_type"`
	ProtocolFilter content.Environment `json:"protocol_filter"`
}

func (r *Repository) allProtocols() ([]content.Protocol, error) {
	var rows []protocolRow
	_, err := r.client.From(tableProtocols).
		Select("*", "", false).
		Order("id", ascending).
		ExecuteTo(&rows)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, nil
	}
	out := make([]content.Protocol, len(rows))
	for i, row := range rows {
		p := row.Protocol
		if p.Environment == "" {
			p.Environment = row.RulesType
		}
		if p.Environment == "" {
			p.Environment = row.ProtocolFilter
		}
		p.Environment = content.Environment(strings.ToLower(string(p.Environment)))
		out[i] = p
	}
	return out, nil
}

// listAll keeps a null response nil so the index build can reject it.
func listAll[T any](r *Repository, table string) ([]T, error) {
	var rows []T
	_, err := r.client.From(table).
		Select("*", "", false).
		Order("id", ascending).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return rows, nil
}

func listByEnv[T any](r *Repository, table string, env content.Environment, orderBy string) ([]T, error) {
	var rows []T
	_, err := r.client.From(table).
		Select("*", "", false).
		Eq("environment", string(env)).
		Order(orderBy, ascending).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return orEmpty(rows), nil
}

func guidelineFilter(articleID content.ID, ruleIDs []content.ID) string {
	filter := "article_id.eq." + articleID.String()
	if len(ruleIDs) > 0 {
		filter += ",rule_ids.ov." + pgArray(ruleIDs)
	}
	return filter
}

// pgArray renders ids as a Postgres array literal.
func pgArray(ids []content.ID) string {
	return "{" + strings.Join(content.IDs(ids), ",") + "}"
}

func orEmpty[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
