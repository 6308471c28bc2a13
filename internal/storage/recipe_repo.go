package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// dateLayout is the DATETIME format used for the date_in column.
const dateLayout = "2006-01-02 15:04:05"

// RecipeRepo provides methods for recipe operations.
type RecipeRepo struct {
	db *sql.DB
}

// NewRecipeRepo creates a new RecipeRepo.
func NewRecipeRepo(db *sql.DB) *RecipeRepo {
	return &RecipeRepo{db: db}
}

// ReplaceAll replaces the complete recipe set inside one transaction.
// All existing recipe, ingredient and instruction rows are deleted first,
// then every recipe and its children are inserted. On any failure the
// transaction is rolled back, so a partial set is never visible.
func (r *RecipeRepo) ReplaceAll(ctx context.Context, recipes []Recipe) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Children first so the delete works even with foreign keys off.
	for _, stmt := range []string{
		"DELETE FROM instructions",
		"DELETE FROM ingredients",
		"DELETE FROM recipe",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear recipe tables: %w", err)
		}
	}

	for _, recipe := range recipes {
		if err := insertRecipe(ctx, tx, recipe); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe replace: %w", err)
	}
	return nil
}

// insertRecipe inserts one recipe row plus its ingredient and instruction
// rows, assigning sequence numbers from slice order.
func insertRecipe(ctx context.Context, tx *sql.Tx, recipe Recipe) error {
	dateIn := recipe.DateIn
	if dateIn.IsZero() {
		dateIn = time.Now().UTC()
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO recipe (title, category_id, preparation_time, description, servings, date_in)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		recipe.Title, recipe.CategoryID, recipe.PreparationTime,
		recipe.Description, recipe.Servings, dateIn.Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert recipe %q: %w", recipe.Title, err)
	}

	recipeID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read recipe id for %q: %w", recipe.Title, err)
	}

	for i, ing := range recipe.Ingredients {
		count := ing.Count
		if count == 0 {
			count = i + 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ingredients (recipe_id, quantity, measurement, ingredient, comment_, count)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			recipeID, ing.Quantity, ing.Measurement, ing.Name, ing.Comment, count,
		); err != nil {
			return fmt.Errorf("failed to insert ingredient %q for recipe %q: %w", ing.Name, recipe.Title, err)
		}
	}

	for i, step := range recipe.Instructions {
		count := step.Count
		if count == 0 {
			count = i + 1
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO instructions (recipe_id, instruction, count) VALUES (?, ?, ?)",
			recipeID, step.Text, count,
		); err != nil {
			return fmt.Errorf("failed to insert instruction for recipe %q: %w", recipe.Title, err)
		}
	}

	return nil
}

// ListAll returns every recipe ordered by title ascending, with ingredients
// and instructions loaded in their stored sequence order.
func (r *RecipeRepo) ListAll(ctx context.Context) ([]Recipe, error) {
	return r.list(ctx,
		`SELECT id, title, category_id, preparation_time, description, servings, date_in
		 FROM recipe ORDER BY title ASC`)
}

// ListByCategory returns the recipes stored under the given category id,
// ordered by title ascending.
func (r *RecipeRepo) ListByCategory(ctx context.Context, categoryID int64) ([]Recipe, error) {
	return r.list(ctx,
		`SELECT id, title, category_id, preparation_time, description, servings, date_in
		 FROM recipe WHERE category_id = ? ORDER BY title ASC`, categoryID)
}

// GetByTitle returns a single recipe by its unique title.
// Returns ErrNotFound if no such recipe exists.
func (r *RecipeRepo) GetByTitle(ctx context.Context, title string) (*Recipe, error) {
	recipes, err := r.list(ctx,
		`SELECT id, title, category_id, preparation_time, description, servings, date_in
		 FROM recipe WHERE title = ?`, title)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, ErrNotFound
	}
	return &recipes[0], nil
}

func (r *RecipeRepo) list(ctx context.Context, query string, args ...any) ([]Recipe, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var recipes []Recipe
	for rows.Next() {
		var recipe Recipe
		var dateInStr string
		if err := rows.Scan(&recipe.ID, &recipe.Title, &recipe.CategoryID,
			&recipe.PreparationTime, &recipe.Description, &recipe.Servings, &dateInStr); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}

		recipe.DateIn, err = parseDate(dateInStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date_in: %w", err)
		}

		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for i := range recipes {
		if err := r.loadChildren(ctx, &recipes[i]); err != nil {
			return nil, err
		}
	}

	return recipes, nil
}

// loadChildren loads the ingredient and instruction rows for one recipe,
// ordered by their stored sequence number.
func (r *RecipeRepo) loadChildren(ctx context.Context, recipe *Recipe) error {
	ingRows, err := r.db.QueryContext(ctx,
		`SELECT quantity, measurement, ingredient, comment_, count
		 FROM ingredients WHERE recipe_id = ? ORDER BY count ASC`, recipe.ID)
	if err != nil {
		return fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer func() {
		_ = ingRows.Close()
	}()

	for ingRows.Next() {
		var ing Ingredient
		if err := ingRows.Scan(&ing.Quantity, &ing.Measurement, &ing.Name, &ing.Comment, &ing.Count); err != nil {
			return fmt.Errorf("failed to scan ingredient: %w", err)
		}
		recipe.Ingredients = append(recipe.Ingredients, ing)
	}
	if err := ingRows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	stepRows, err := r.db.QueryContext(ctx,
		"SELECT instruction, count FROM instructions WHERE recipe_id = ? ORDER BY count ASC", recipe.ID)
	if err != nil {
		return fmt.Errorf("failed to query instructions: %w", err)
	}
	defer func() {
		_ = stepRows.Close()
	}()

	for stepRows.Next() {
		var step Instruction
		if err := stepRows.Scan(&step.Text, &step.Count); err != nil {
			return fmt.Errorf("failed to scan instruction: %w", err)
		}
		recipe.Instructions = append(recipe.Instructions, step)
	}
	if err := stepRows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}

	return nil
}

// CountByCategory returns the number of recipes stored under a category id.
func (r *RecipeRepo) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipe WHERE category_id = ?", categoryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

// LastUpdated returns the most recent date_in value in the store.
// On an empty store it returns the Unix epoch, which serves as the
// lower bound for the first incremental fetch.
func (r *RecipeRepo) LastUpdated(ctx context.Context) (time.Time, error) {
	var dateInStr sql.NullString
	err := r.db.QueryRowContext(ctx, "SELECT MAX(date_in) FROM recipe").Scan(&dateInStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query last updated: %w", err)
	}
	if !dateInStr.Valid {
		return time.Unix(0, 0).UTC(), nil
	}

	latest, err := parseDate(dateInStr.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse last updated: %w", err)
	}
	return latest, nil
}

// DeleteAll unconditionally clears the recipe, ingredients and instructions
// tables in one transaction. Irreversible.
func (r *RecipeRepo) DeleteAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range []string{
		"DELETE FROM instructions",
		"DELETE FROM ingredients",
		"DELETE FROM recipe",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear recipe tables: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// parseDate parses a DATETIME column value.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err == nil {
		return t, nil
	}
	// SQLite may hand back RFC3339 depending on how the value was written.
	return time.Parse(time.RFC3339, s)
}
