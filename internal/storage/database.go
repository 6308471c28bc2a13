package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite); cascading deletes
	// from recipe to ingredients/instructions depend on this.
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
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
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS recipe (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL UNIQUE,
			category_id INTEGER NOT NULL,
			preparation_time INTEGER NOT NULL,
			description TEXT NOT NULL,
			servings INTEGER NOT NULL,
			date_in DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS ingredients (
			recipe_id INTEGER NOT NULL,
			quantity REAL NOT NULL,
			measurement TEXT NOT NULL,
			ingredient TEXT NOT NULL,
			comment_ TEXT NOT NULL DEFAULT '',
			count INTEGER NOT NULL,
			FOREIGN KEY (recipe_id) REFERENCES recipe(id) ON DELETE CASCADE,
			UNIQUE (recipe_id, ingredient) ON CONFLICT REPLACE
		);`,
		`CREATE TABLE IF NOT EXISTS instructions (
			recipe_id INTEGER NOT NULL,
			instruction TEXT NOT NULL,
			count INTEGER NOT NULL,
			FOREIGN KEY (recipe_id) REFERENCES recipe(id) ON DELETE CASCADE,
			UNIQUE (recipe_id, instruction) ON CONFLICT REPLACE
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
