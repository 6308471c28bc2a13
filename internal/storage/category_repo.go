package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// CategoryRepo provides methods for category operations.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo creates a new CategoryRepo.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// ReplaceAll replaces the complete category set inside one transaction.
// The server is the source of truth for ids, so rows are written verbatim.
func (r *CategoryRepo) ReplaceAll(ctx context.Context, categories []Category) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM categories"); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	for _, cat := range categories {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO categories (id, name) VALUES (?, ?)", cat.ID, cat.Name,
		); err != nil {
			return fmt.Errorf("failed to insert category %q: %w", cat.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category replace: %w", err)
	}
	return nil
}

// ListAll returns all categories ordered by name ascending.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var categories []Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return categories, nil
}
