package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_fetchers.go -package=mocks recipebox/internal/service RecipeFetcher,CategoryFetcher
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_stores.go -package=mocks recipebox/internal/service RecipeStore,CategoryStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_services.go -package=mocks recipebox/internal/service CatalogService,SyncService

import (
	"context"
	"time"

	"recipebox/internal/remote"
	"recipebox/internal/storage"
)

// RecipeFetcher fetches recipe data from the upstream service.
// This interface is defined from the service layer's perspective (consumer-first).
type RecipeFetcher interface {
	// FetchRecipes returns every recipe changed since the given watermark.
	FetchRecipes(ctx context.Context, since time.Time) (*remote.RecipesPayload, error)
}

// CategoryFetcher fetches category data from the upstream service.
type CategoryFetcher interface {
	// FetchCategories returns the complete category list.
	FetchCategories(ctx context.Context) ([]remote.Category, error)
}

// RecipeStore is the local persistence contract for recipes.
type RecipeStore interface {
	// ReplaceAll transactionally replaces the complete recipe set.
	ReplaceAll(ctx context.Context, recipes []storage.Recipe) error
	// ListAll returns every recipe ordered by title ascending.
	ListAll(ctx context.Context) ([]storage.Recipe, error)
	// ListByCategory returns the recipes under one category id, title ascending.
	ListByCategory(ctx context.Context, categoryID int64) ([]storage.Recipe, error)
	// GetByTitle returns one recipe by its unique title, or storage.ErrNotFound.
	GetByTitle(ctx context.Context, title string) (*storage.Recipe, error)
	// CountByCategory returns the recipe count for one category id.
	CountByCategory(ctx context.Context, categoryID int64) (int, error)
	// LastUpdated returns the newest date_in value, Unix epoch when empty.
	LastUpdated(ctx context.Context) (time.Time, error)
	// DeleteAll clears all recipe data.
	DeleteAll(ctx context.Context) error
}

// CategoryStore is the local persistence contract for categories.
type CategoryStore interface {
	// ReplaceAll transactionally replaces the complete category set.
	ReplaceAll(ctx context.Context, categories []storage.Category) error
	// ListAll returns all categories ordered by name ascending.
	ListAll(ctx context.Context) ([]storage.Category, error)
}
