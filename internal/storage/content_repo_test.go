package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"rulebook-api/internal/content"
	"rulebook-api/internal/repository"
)

func setupContentRepo(t *testing.T) *ContentRepo {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return NewContentRepo(db)
}

func testDataset() *Dataset {
	return &Dataset{
		Chapters: []content.Chapter{
			{ID: "c1", Number: "1", Title: "Facilities", Environment: content.EnvironmentIndoor},
			{ID: "c2", Number: "1", Title: "Facilities", Environment: content.EnvironmentBeach},
		},
		Articles: []content.Article{
			{ID: "a1", ChapterID: "c1", Number: "1", Title: "Playing Area"},
			{ID: "a2", ChapterID: "c1", Number: "12", Title: "Service"},
		},
		Snapshot: content.Snapshot{
			Rules: []content.Rule{
				{ID: "r1", ArticleID: "a1", Number: "1.1", Title: "Court Dimensions", Text: "18 x 9 m", Environment: content.EnvironmentIndoor},
				{ID: "r2", ArticleID: "a2", Number: "12.1", Title: "Service", Text: "The first hit", Environment: content.EnvironmentIndoor},
				{ID: "r3", ArticleID: "a2", Number: "12.2", Title: "Service Order", Environment: content.EnvironmentIndoor},
			},
			CasebookRules: []content.Rule{
				{ID: "cr1", Number: "12", Title: "Service", Environment: content.EnvironmentBeach},
			},
			Cases: []content.Case{
				{ID: "k2", CaseNumber: 7, RuleRefs: []content.ID{"r2"}, Text: "Server tosses twice", Ruling: "Fault"},
				{ID: "k1", CaseNumber: 3, RuleRefs: []content.ID{"r2", "r3"}, Text: "Screening", Ruling: "Fault"},
				{ID: "k3", CaseNumber: 9, RuleRefs: []content.ID{"cr1"}, Text: "Beach case", Ruling: "Replay"},
			},
			Definitions: []content.Definition{
				{ID: "d2", Term: "service zone", Definition: "Behind the end line", Environment: content.EnvironmentIndoor},
				{ID: "d1", Term: "Attack line", Definition: "3 m from the net", Environment: content.EnvironmentIndoor},
			},
			Guidelines: []content.Guideline{
				{ID: "g1", ArticleID: "a2", RuleIDs: []content.ID{}, Title: "Service tempo", Environment: content.EnvironmentIndoor},
				{ID: "g2", ArticleID: "a9", RuleIDs: []content.ID{"r1"}, Title: "Line judges", Environment: content.EnvironmentIndoor},
			},
			GameProtocols: []content.Protocol{
				{ID: "p1", Title: "Coin toss", Group: content.ProtocolGame, Environment: content.EnvironmentIndoor},
			},
			OtherProtocols: []content.Protocol{
				{ID: "p2", Title: "Timeouts", Group: content.ProtocolOther, Environment: content.EnvironmentIndoor},
				{ID: "p3", Title: "Beach warmup", Group: content.ProtocolOther, Environment: content.EnvironmentBeach},
			},
			Diagrams: []content.Diagram{
				{ID: "dg1", Title: "Court", ImageURL: "/img/court.png", Environment: content.EnvironmentIndoor},
			},
			Gestures: []content.Gesture{
				{ID: "ge1", Name: "Ball in", Environment: content.EnvironmentBeach},
			},
		},
	}
}

func importTestDataset(t *testing.T, repo *ContentRepo) {
	t.Helper()
	if err := repo.Import(context.Background(), testDataset()); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
}

func TestContentRepo_Tree(t *testing.T) {
	repo := setupContentRepo(t)
	importTestDataset(t, repo)
	ctx := context.Background()

	chapters, err := repo.ListChapters(ctx, content.EnvironmentIndoor)
	if err != nil {
		t.Fatalf("ListChapters() error = %v", err)
	}
	if len(chapters) != 1 || chapters[0].ID != "c1" {
		t.Errorf("ListChapters() = %v, want [c1]", chapters)
	}

	articles, err := repo.ListArticles(ctx, "c1")
	if err != nil {
		t.Fatalf("ListArticles() error = %v", err)
	}
	if len(articles) != 2 || articles[0].ID != "a1" || articles[1].ID != "a2" {
		t.Errorf("ListArticles() = %v, want [a1 a2]", articles)
	}

	rules, err := repo.ListRules(ctx, "a2")
	if err != nil {
		t.Fatalf("ListRules() error = %v", err)
	}
	if len(rules) != 2 || rules[0].ID != "r2" || rules[1].ID != "r3" {
		t.Errorf("ListRules() = %v, want [r2 r3]", rules)
	}

	empty, err := repo.ListRules(ctx, "missing")
	if err != nil {
		t.Fatalf("ListRules() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListRules(missing) = %#v, want empty non-nil", empty)
	}
}

func TestContentRepo_CheckCaseExistence(t *testing.T) {
	repo := setupContentRepo(t)
	importTestDataset(t, repo)

	tests := []struct {
		name    string
		ruleIDs []content.ID
		want    map[content.ID][]int
	}{
		{
			name:    "shared case",
			ruleIDs: []content.ID{"r1", "r2", "r3"},
			want:    map[content.ID][]int{"r2": {3, 7}, "r3": {3}},
		},
		{
			name:    "no cases",
			ruleIDs: []content.ID{"r1"},
			want:    map[content.ID][]int{},
		},
		{
			name:    "no rules",
			ruleIDs: nil,
			want:    map[content.ID][]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.CheckCaseExistence(context.Background(), tt.ruleIDs)
			if err != nil {
				t.Fatalf("CheckCaseExistence() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CheckCaseExistence() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentRepo_FetchCaseDetails(t *testing.T) {
	repo := setupContentRepo(t)
	importTestDataset(t, repo)

	cases, err := repo.FetchCaseDetails(context.Background(), []content.ID{"r2", "r3"})
	if err != nil {
		t.Fatalf("FetchCaseDetails() error = %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("FetchCaseDetails() returned %d cases, want 2 (no duplicates)", len(cases))
	}
	if cases[0].CaseNumber != 3 || cases[1].CaseNumber != 7 {
		t.Errorf("cases = %v, want ordered by case number", cases)
	}
	if !reflect.DeepEqual(cases[0].RuleRefs, []content.ID{"r2", "r3"}) {
		t.Errorf("RuleRefs = %v", cases[0].RuleRefs)
	}
}

func TestContentRepo_Guidelines(t *testing.T) {
	repo := setupContentRepo(t)
	importTestDataset(t, repo)
	ctx := context.Background()

	tests := []struct {
		name      string
		articleID content.ID
		ruleIDs   []content.ID
		wantIDs   []content.ID
	}{
		{name: "by article", articleID: "a2", ruleIDs: []content.ID{"r2", "r3"}, wantIDs: []content.ID{"g1"}},
		{name: "by rule", articleID: "a1", ruleIDs: []content.ID{"r1"}, wantIDs: []content.ID{"g2"}},
		{name: "article without rules", articleID: "a3", ruleIDs: nil, wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists, err := repo.CheckGuidelineExistence(ctx, tt.articleID, tt.ruleIDs)
			if err != nil {
				t.Fatalf("CheckGuidelineExistence() error = %v", err)
			}
			if exists != (len(tt.wantIDs) > 0) {
				t.Errorf("CheckGuidelineExistence() = %v, want %v", exists, len(tt.wantIDs) > 0)
			}

			got, err := repo.FetchGuidelineDetails(ctx, tt.articleID, tt.ruleIDs)
			if err != nil {
				t.Fatalf("FetchGuidelineDetails() error = %v", err)
			}
			var ids []content.ID
			for _, g := range got {
				ids = append(ids, g.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("FetchGuidelineDetails() ids = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestContentRepo_Listings(t *testing.T) {
	repo := setupContentRepo(t)
	importTestDataset(t, repo)
	ctx := context.Background()

	defs, err := repo.ListDefinitions(ctx, content.EnvironmentIndoor)
	if err != nil {
		t.Fatalf("ListDefinitions() error = %v", err)
	}
	if len(defs) != 2 || defs[0].ID != "d1" {
		t.Errorf("ListDefinitions() = %v, want ordered by term", defs)
	}

	protocols, err := repo.ListProtocols(ctx, content.EnvironmentIndoor)
	if err != nil {
		t.Fatalf("ListProtocols() error = %v", err)
	}
	if len(protocols.Game) != 1 || len(protocols.Other) != 1 || protocols.Other[0].ID != "p2" {
		t.Errorf("ListProtocols() = %+v", protocols)
	}

	diagrams, err := repo.ListDiagrams(ctx, content.EnvironmentBeach)
	if err != nil {
		t.Fatalf("ListDiagrams() error = %v", err)
	}
	if len(diagrams) != 0 {
		t.Errorf("ListDiagrams(beach) = %v, want none", diagrams)
	}

	gestures, err := repo.ListGestures(ctx, content.EnvironmentBeach)
	if err != nil {
		t.Fatalf("ListGestures() error = %v", err)
	}
	if len(gestures) != 1 || gestures[0].Name != "Ball in" {
		t.Errorf("ListGestures(beach) = %v", gestures)
	}
}

func TestContentRepo_ListAllForSearch(t *testing.T) {
	repo := setupContentRepo(t)
	importTestDataset(t, repo)

	snap, err := repo.ListAllForSearch(context.Background())
	if err != nil {
		t.Fatalf("ListAllForSearch() error = %v", err)
	}

	counts := map[string]int{
		"rules":           len(snap.Rules),
		"casebook_rules":  len(snap.CasebookRules),
		"cases":           len(snap.Cases),
		"definitions":     len(snap.Definitions),
		"guidelines":      len(snap.Guidelines),
		"game_protocols":  len(snap.GameProtocols),
		"other_protocols": len(snap.OtherProtocols),
		"diagrams":        len(snap.Diagrams),
		"gestures":        len(snap.Gestures),
	}
	want := map[string]int{
		"rules": 3, "casebook_rules": 1, "cases": 3, "definitions": 2, "guidelines": 2,
		"game_protocols": 1, "other_protocols": 2, "diagrams": 1, "gestures": 1,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("ListAllForSearch() counts = %v, want %v", counts, want)
	}
	if snap.Cases[0].ID != "k2" {
		t.Errorf("cases should keep import order, got %v first", snap.Cases[0].ID)
	}
}

func TestContentRepo_ImportIdempotent(t *testing.T) {
	repo := setupContentRepo(t)
	importTestDataset(t, repo)

	ds := testDataset()
	ds.Rules[0].Title = "Playing Court"
	if err := repo.Import(context.Background(), ds); err != nil {
		t.Fatalf("second Import() error = %v", err)
	}

	rules, err := repo.ListRules(context.Background(), "a1")
	if err != nil {
		t.Fatalf("ListRules() error = %v", err)
	}
	if len(rules) != 1 || rules[0].Title != "Playing Court" {
		t.Errorf("ListRules() = %v, want updated single rule", rules)
	}

	articles, err := repo.ListArticles(context.Background(), "c1")
	if err != nil {
		t.Fatalf("ListArticles() error = %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("re-import should keep articles, got %d", len(articles))
	}
}

func TestContentRepo_ImportRejectsOrphanArticle(t *testing.T) {
	repo := setupContentRepo(t)

	ds := &Dataset{Articles: []content.Article{{ID: "a1", ChapterID: "nope"}}}
	if err := repo.Import(context.Background(), ds); err == nil {
		t.Fatal("Import() should fail on an article without chapter")
	}

	articles, err := repo.ListArticles(context.Background(), "nope")
	if err != nil {
		t.Fatalf("ListArticles() error = %v", err)
	}
	if len(articles) != 0 {
		t.Error("failed import should roll back")
	}
}

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	body := `{
		"chapters": [{"id": 1, "chapter_n": "1", "title": "Facilities", "environment": "indoor"}],
		"rules": [{"id": 10, "article_id": 5, "rule_n": "1.1", "title": "Court", "text": "", "environment": "indoor"}],
		"cases": [{"id": 3, "case_number": 1, "rule_refs": [10], "case_text": "t", "case_ruling": "r"}]
	}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ds, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if len(ds.Chapters) != 1 || ds.Chapters[0].ID != "1" {
		t.Errorf("Chapters = %v", ds.Chapters)
	}
	if len(ds.Rules) != 1 || ds.Rules[0].ArticleID != "5" {
		t.Errorf("Rules = %v", ds.Rules)
	}

	if _, err := LoadDataset(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadDataset() should fail for a missing file")
	}
}

func TestContentRepo_Ping(t *testing.T) {
	repo := setupContentRepo(t)
	if err := repo.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	_ = repo.db.Close()
	err := repo.Ping(context.Background())
	var repoErr *repository.Error
	if !errors.As(err, &repoErr) || repoErr.Op != "ping" {
		t.Errorf("Ping() after close = %v, want repository.Error{Op: ping}", err)
	}
}
