package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// Foreign keys are enabled on every pooled connection through the DSN.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
//
// Array columns (rule_refs, rule_ids, tags) hold JSON arrays of strings.
// Listings follow rowid, i.e. import order.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS chapters (
			id TEXT PRIMARY KEY,
			chapter_n TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			environment TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			chapter_id TEXT NOT NULL,
			article_n TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			FOREIGN KEY (chapter_id) REFERENCES chapters(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_articles_chapter ON articles(chapter_id);`,
		`CREATE TABLE IF NOT EXISTS rules (
			id TEXT PRIMARY KEY,
			article_id TEXT NOT NULL DEFAULT '',
			rule_n TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			environment TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rules_article ON rules(article_id);`,
		`CREATE TABLE IF NOT EXISTS casebook_rules (
			id TEXT PRIMARY KEY,
			article_id TEXT NOT NULL DEFAULT '',
			rule_n TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			environment TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS casebook (
			id TEXT PRIMARY KEY,
			case_number INTEGER NOT NULL,
			rule_refs TEXT NOT NULL DEFAULT '[]',
			case_title TEXT NOT NULL DEFAULT '',
			case_text TEXT NOT NULL DEFAULT '',
			case_ruling TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS definitions (
			id TEXT PRIMARY KEY,
			term TEXT NOT NULL DEFAULT '',
			definition TEXT NOT NULL DEFAULT '',
			environment TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS guidelines (
			id TEXT PRIMARY KEY,
			article_id TEXT NOT NULL DEFAULT '',
			rule_ids TEXT NOT NULL DEFAULT '[]',
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			environment TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_guidelines_article ON guidelines(article_id);`,
		`CREATE TABLE IF NOT EXISTS protocols (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			protocol_group TEXT NOT NULL,
			environment TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS diagrams (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			environment TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS gestures (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			environment TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS extras (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
