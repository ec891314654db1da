package supabase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"rulebook-api/internal/content"
	"rulebook-api/internal/repository"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeBackend serves canned PostgREST table responses and records the
// query of the last request per table.
type fakeBackend struct {
	mu      sync.Mutex
	tables  map[string]string
	status  map[string]int
	queries map[string]url.Values
	methods map[string]string
}

func newFakeBackend(t *testing.T, tables map[string]string) (*fakeBackend, *Repository) {
	t.Helper()
	if tables == nil {
		tables = map[string]string{}
	}
	fb := &fakeBackend{
		tables:  tables,
		status:  map[string]int{},
		queries: map[string]url.Values{},
		methods: map[string]string{},
	}
	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "service-key")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return fb, New(client)
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if r.URL.Path == "/auth/v1/user" {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":401,"msg":"invalid JWT"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"0b5f4d3c-6c3a-4a0e-9f5e-3f1f5d7f6c11","email":"ref@example.com","role":"authenticated","app_metadata":{"role":"admin"}}`))
		return
	}

	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	fb.queries[table] = r.URL.Query()
	fb.methods[table] = r.Method

	if status, ok := fb.status[table]; ok {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"code":"XX000","message":"backend exploded","details":"","hint":""}`))
		return
	}
	body, ok := fb.tables[table]
	if !ok {
		body = "[]"
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (fb *fakeBackend) setTable(table, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.tables[table] = body
}

func (fb *fakeBackend) setStatus(table string, status int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.status[table] = status
}

func (fb *fakeBackend) method(table string) string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.methods[table]
}

func (fb *fakeBackend) query(table string) url.Values {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.queries[table]
}

func TestRepository_ListChapters(t *testing.T) {
	fb, repo := newFakeBackend(t, map[string]string{
		"chapters": `[{"id":1,"chapter_n":"1","title":"Facilities","environment":"indoor"},{"id":2,"chapter_n":"2","title":"Participants","environment":"indoor"}]`,
	})

	chapters, err := repo.ListChapters(context.Background(), content.EnvironmentIndoor)
	if err != nil {
		t.Fatalf("ListChapters() error = %v", err)
	}
	if len(chapters) != 2 || chapters[0].ID != "1" || chapters[1].Title != "Participants" {
		t.Errorf("ListChapters() = %+v", chapters)
	}

	q := fb.query("chapters")
	if got := q.Get("environment"); got != "eq.indoor" {
		t.Errorf("environment filter = %q, want eq.indoor", got)
	}
	if got := q.Get("order"); !strings.HasPrefix(got, "id.asc") {
		t.Errorf("order = %q, want id.asc", got)
	}
}

func TestRepository_CheckCaseExistence(t *testing.T) {
	fb, repo := newFakeBackend(t, map[string]string{
		"casebook": `[{"id":9,"case_number":3,"rule_refs":[1,7]},{"id":10,"case_number":4,"rule_refs":[2]},{"id":11,"case_number":5,"rule_refs":[1]}]`,
	})

	refs, err := repo.CheckCaseExistence(context.Background(), []content.ID{"1", "2", "3"})
	if err != nil {
		t.Fatalf("CheckCaseExistence() error = %v", err)
	}

	tests := []struct {
		rule content.ID
		want []int
	}{
		{rule: "1", want: []int{3, 5}},
		{rule: "2", want: []int{4}},
		{rule: "3", want: nil},
		{rule: "7", want: nil},
	}
	for _, tt := range tests {
		got := refs[tt.rule]
		if len(got) != len(tt.want) {
			t.Errorf("refs[%s] = %v, want %v", tt.rule, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("refs[%s] = %v, want %v", tt.rule, got, tt.want)
			}
		}
	}

	q := fb.query("casebook")
	if got := q.Get("rule_refs"); got != "ov.{1,2,3}" {
		t.Errorf("rule_refs filter = %q, want ov.{1,2,3}", got)
	}
	if got := q.Get("select"); got != "id,case_number,rule_refs" {
		t.Errorf("select = %q, want only the existence columns", got)
	}
}

func TestRepository_CheckCaseExistence_NoRules(t *testing.T) {
	fb, repo := newFakeBackend(t, nil)

	refs, err := repo.CheckCaseExistence(context.Background(), nil)
	if err != nil || len(refs) != 0 {
		t.Errorf("CheckCaseExistence(nil) = %v, %v", refs, err)
	}
	if fb.query("casebook") != nil {
		t.Error("no request expected for an empty rule list")
	}
}

func TestRepository_GuidelineExistence(t *testing.T) {
	fb, repo := newFakeBackend(t, map[string]string{
		"guidelines": `[{"id":4}]`,
	})

	ok, err := repo.CheckGuidelineExistence(context.Background(), "12", []content.ID{"1", "2"})
	if err != nil || !ok {
		t.Fatalf("CheckGuidelineExistence() = %v, %v", ok, err)
	}

	q := fb.query("guidelines")
	if got := q.Get("or"); got != "(article_id.eq.12,rule_ids.ov.{1,2})" {
		t.Errorf("or filter = %q", got)
	}
	if got := q.Get("limit"); got != "1" {
		t.Errorf("limit = %q, want 1", got)
	}
}

func TestRepository_ListProtocols(t *testing.T) {
	_, repo := newFakeBackend(t, map[string]string{
		"protocols": `[
			{"id":1,"title":"Coin toss","protocol_group":"game","environment":"indoor"},
			{"id":2,"title":"Warm-up","protocol_group":"game","rules_type":"Beach"},
			{"id":3,"title":"Medical","protocol_group":"other","protocol_filter":"indoor"}
		]`,
	})

	tests := []struct {
		env       content.Environment
		wantGame  []string
		wantOther []string
	}{
		{env: content.EnvironmentIndoor, wantGame: []string{"1"}, wantOther: []string{"3"}},
		{env: content.EnvironmentBeach, wantGame: []string{"2"}, wantOther: []string{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.env), func(t *testing.T) {
			got, err := repo.ListProtocols(context.Background(), tt.env)
			if err != nil {
				t.Fatalf("ListProtocols() error = %v", err)
			}
			if ids := protocolIDs(got.Game); strings.Join(ids, ",") != strings.Join(tt.wantGame, ",") {
				t.Errorf("game = %v, want %v", ids, tt.wantGame)
			}
			if ids := protocolIDs(got.Other); strings.Join(ids, ",") != strings.Join(tt.wantOther, ",") {
				t.Errorf("other = %v, want %v", ids, tt.wantOther)
			}
		})
	}
}

func protocolIDs(ps []content.Protocol) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID.String()
	}
	return ids
}

func TestRepository_ListAllForSearch(t *testing.T) {
	_, repo := newFakeBackend(t, map[string]string{
		"rules":          `[{"id":1,"rule_n":"1.1","title":"Court Dimensions","environment":"indoor"}]`,
		"casebook_rules": `[]`,
		"casebook":       `[{"id":9,"case_number":3,"rule_refs":[1],"case_text":"A ball lands on the line","case_ruling":"In"}]`,
		"definitions":    `[]`,
		"guidelines":     `[]`,
		"protocols":      `[{"id":1,"title":"Coin toss","protocol_group":"game","environment":"indoor"}]`,
		"diagrams":       `[]`,
		"gestures":       `null`,
	})

	snap, err := repo.ListAllForSearch(context.Background())
	if err != nil {
		t.Fatalf("ListAllForSearch() error = %v", err)
	}
	if len(snap.Rules) != 1 || len(snap.Cases) != 1 || len(snap.GameProtocols) != 1 {
		t.Errorf("snapshot counts = %v", snap.Counts())
	}
	if snap.OtherProtocols == nil || snap.Diagrams == nil {
		t.Error("empty tables should decode to empty lists")
	}
	if snap.Gestures != nil {
		t.Error("a null table should stay nil")
	}
	if len(snap.NullCollections) != 1 || snap.NullCollections[0] != content.KindGesture {
		t.Errorf("NullCollections = %v, want [gesture]", snap.NullCollections)
	}
}

func TestRepository_BackendError(t *testing.T) {
	fb, repo := newFakeBackend(t, nil)
	fb.setStatus("rules", http.StatusInternalServerError)

	_, err := repo.ListRules(context.Background(), "1")
	var repoErr *repository.Error
	if !errors.As(err, &repoErr) {
		t.Fatalf("ListRules() error = %v, want *repository.Error", err)
	}
	if repoErr.Op != "list_rules" {
		t.Errorf("Op = %q, want list_rules", repoErr.Op)
	}
}

func TestRepository_Extras(t *testing.T) {
	fb, repo := newFakeBackend(t, map[string]string{
		"extras": `[{"id":5,"kind":"news","title":"Season opener","body":"**Bold**","tags":["indoor"],"created_at":"2026-09-01T10:00:00Z","updated_at":"2026-09-01T10:00:00Z"}]`,
	})
	ctx := context.Background()

	extras, err := repo.ListExtras(ctx)
	if err != nil || len(extras) != 1 || extras[0].ID != "5" {
		t.Fatalf("ListExtras() = %v, %v", extras, err)
	}
	if got := fb.query("extras").Get("order"); !strings.HasPrefix(got, "created_at.desc") {
		t.Errorf("order = %q, want created_at.desc", got)
	}

	created, err := repo.CreateExtra(ctx, &content.Extra{Kind: content.ExtraNews, Title: "Season opener"})
	if err != nil || created.ID != "5" {
		t.Fatalf("CreateExtra() = %v, %v", created, err)
	}
	if m := fb.method("extras"); m != http.MethodPost {
		t.Errorf("method = %s, want POST", m)
	}

	if err := repo.DeleteExtra(ctx, "5"); err != nil {
		t.Fatalf("DeleteExtra() error = %v", err)
	}
	if got := fb.query("extras").Get("id"); got != "eq.5" {
		t.Errorf("id filter = %q, want eq.5", got)
	}

	fb.setTable("extras", "[]")
	if _, err := repo.GetExtra(ctx, "404"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetExtra() error = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteExtra(ctx, "404"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("DeleteExtra() error = %v, want ErrNotFound", err)
	}
}

func TestVerifier_VerifyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc((&fakeBackend{
		queries: map[string]url.Values{},
		methods: map[string]string{},
		status:  map[string]int{},
	}).serve))
	defer srv.Close()

	client, err := NewClient(srv.URL, "anon-key")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	v := NewVerifier(client)

	tests := []struct {
		name      string
		token     string
		wantAdmin bool
		wantErr   bool
	}{
		{name: "valid admin token", token: "good-token", wantAdmin: true},
		{name: "rejected token", token: "bad-token", wantErr: true},
		{name: "missing token", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := v.VerifyToken(context.Background(), tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("VerifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, repository.ErrUnauthorized) {
					t.Errorf("error = %v, want ErrUnauthorized", err)
				}
				return
			}
			if user.IsAdmin() != tt.wantAdmin || user.Email != "ref@example.com" {
				t.Errorf("user = %+v", user)
			}
		})
	}
}
