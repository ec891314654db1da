package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func newMigratedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "rulebook.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "file in existing directory",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "rulebook.db") },
		},
		{
			name:    "missing data directory",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing", "rulebook.db") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.path(t))
			if tt.wantErr {
				if err == nil {
					_ = db.Close()
					t.Fatal("New() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer func() { _ = db.Close() }()

			if got := db.Stats().MaxOpenConnections; got != 25 {
				t.Errorf("MaxOpenConnections = %d, want 25", got)
			}
		})
	}
}

func TestNew_ForeignKeysOnEveryConnection(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "rulebook.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	// Hold two connections at once so the pool has to open a second one.
	tx1, err := db.Begin()
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	defer func() { _ = tx1.Rollback() }()
	tx2, err := db.Begin()
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	defer func() { _ = tx2.Rollback() }()

	for i, tx := range []*sql.Tx{tx1, tx2} {
		var enabled int
		if err := tx.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
			t.Fatalf("PRAGMA foreign_keys #%d error = %v", i, err)
		}
		if enabled != 1 {
			t.Errorf("connection #%d foreign_keys = %d, want 1", i, enabled)
		}
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newMigratedDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	objects := []struct {
		kind string
		name string
	}{
		{"table", "chapters"},
		{"table", "articles"},
		{"table", "rules"},
		{"table", "casebook_rules"},
		{"table", "casebook"},
		{"table", "definitions"},
		{"table", "guidelines"},
		{"table", "protocols"},
		{"table", "diagrams"},
		{"table", "gestures"},
		{"table", "extras"},
		{"index", "idx_articles_chapter"},
		{"index", "idx_rules_article"},
		{"index", "idx_guidelines_article"},
	}
	for _, obj := range objects {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?", obj.kind, obj.name).Scan(&count)
		if err != nil {
			t.Fatalf("lookup %s %s: %v", obj.kind, obj.name, err)
		}
		if count != 1 {
			t.Errorf("%s %s count = %d, want 1", obj.kind, obj.name, count)
		}
	}
}

func TestMigrate_ChapterDeleteCascades(t *testing.T) {
	db := newMigratedDB(t)

	mustExec(t, db, "INSERT INTO chapters (id, chapter_n, title, environment) VALUES ('c1', '1', 'Facilities', 'indoor')")
	mustExec(t, db, "INSERT INTO articles (id, chapter_id, article_n, title) VALUES ('a1', 'c1', '1', 'Playing area')")

	if _, err := db.Exec("INSERT INTO articles (id, chapter_id) VALUES ('a2', 'missing')"); err == nil {
		t.Error("article with unknown chapter should be rejected")
	}

	mustExec(t, db, "DELETE FROM chapters WHERE id = 'c1'")

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count); err != nil {
		t.Fatalf("count articles: %v", err)
	}
	if count != 0 {
		t.Errorf("articles after chapter delete = %d, want 0", count)
	}
}

func TestMigrate_ArrayColumnsDefaultToEmptyList(t *testing.T) {
	db := newMigratedDB(t)

	mustExec(t, db, "INSERT INTO casebook (id, case_number) VALUES ('9', 3)")
	mustExec(t, db, "INSERT INTO guidelines (id, environment) VALUES ('g1', 'beach')")
	mustExec(t, db, "INSERT INTO extras (id, kind, title, created_at, updated_at) VALUES ('e1', 'news', 'Opener', datetime('now'), datetime('now'))")

	columns := []struct {
		query string
	}{
		{"SELECT rule_refs FROM casebook WHERE id = '9'"},
		{"SELECT rule_ids FROM guidelines WHERE id = 'g1'"},
		{"SELECT tags FROM extras WHERE id = 'e1'"},
	}
	for _, col := range columns {
		var got string
		if err := db.QueryRow(col.query).Scan(&got); err != nil {
			t.Fatalf("%s: %v", col.query, err)
		}
		if got != "[]" {
			t.Errorf("%s = %q, want []", col.query, got)
		}
	}
}

func TestMigrate_RequiresEnvironment(t *testing.T) {
	db := newMigratedDB(t)

	for _, table := range []string{"chapters", "rules", "definitions", "diagrams", "gestures"} {
		if _, err := db.Exec("INSERT INTO " + table + " (id) VALUES ('x')"); err == nil {
			t.Errorf("%s row without environment should be rejected", table)
		}
	}
}

func mustExec(t *testing.T, db *sql.DB, query string) {
	t.Helper()
	if _, err := db.Exec(query); err != nil {
		t.Fatalf("%s: %v", query, err)
	}
}
