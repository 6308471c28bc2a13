package service

import (
	"context"
	"errors"

	"recipebox/internal/cache"
	"recipebox/internal/contextutil"
	"recipebox/internal/storage"
)

// CatalogService serves cached reads for the presentation layer. No method
// here touches the network.
type CatalogService interface {
	// Catalog returns the recipes matching a category filter, title ascending.
	// The sentinel "All" filter (or an empty filter) returns every recipe.
	Catalog(ctx context.Context, filter string) ([]storage.Recipe, error)
	// Recipe returns one recipe by its unique title, or ErrNotFound.
	Recipe(ctx context.Context, title string) (*storage.Recipe, error)
	// Counts returns the recipe count per known category name.
	Counts(ctx context.Context) (map[string]int, error)
	// CategoryNames returns the ordered category names, sentinel first.
	CategoryNames() []string
	// LastUpdated formats the store's watermark per the given time layout.
	LastUpdated(ctx context.Context, layout string) (string, error)
	// DeleteAll clears all recipe data. Irreversible.
	DeleteAll(ctx context.Context) error
}

type catalogService struct {
	store      RecipeStore
	categories *cache.Categories
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store RecipeStore, categories *cache.Categories) CatalogService {
	return &catalogService{store: store, categories: categories}
}

// Catalog returns recipes for a filter; see CatalogService.
func (s *catalogService) Catalog(ctx context.Context, filter string) ([]storage.Recipe, error) {
	var (
		recipes []storage.Recipe
		err     error
	)

	// An unknown filter resolves to the sentinel id, which means no filter.
	id := s.categories.IDOf(filter)
	if filter == "" || id == cache.AllCategoryID {
		recipes, err = s.store.ListAll(ctx)
	} else {
		recipes, err = s.store.ListByCategory(ctx, id)
	}
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to read catalog", "filter", filter, "error", err)
		return nil, WrapError(err, "failed to read catalog")
	}

	resolveCategoryNames(recipes, s.categories)
	return recipes, nil
}

// Recipe returns one recipe by title; see CatalogService.
func (s *catalogService) Recipe(ctx context.Context, title string) (*storage.Recipe, error) {
	recipe, err := s.store.GetByTitle(ctx, title)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, WrapError(err, "failed to read recipe")
	}
	recipe.Category = s.categories.NameOf(recipe.CategoryID)
	return recipe, nil
}

// Counts runs one count query per known category; see CatalogService.
func (s *catalogService) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, cat := range s.categories.Entries() {
		n, err := s.store.CountByCategory(ctx, cat.ID)
		if err != nil {
			return nil, WrapError(err, "failed to count recipes")
		}
		counts[cat.Name] = n
	}
	return counts, nil
}

// CategoryNames returns the cache's ordered name list.
func (s *catalogService) CategoryNames() []string {
	return s.categories.Names()
}

// LastUpdated formats the watermark; see CatalogService. On an empty store
// the watermark is the Unix epoch, so the result is that fixed instant
// rendered in the requested layout.
func (s *catalogService) LastUpdated(ctx context.Context, layout string) (string, error) {
	latest, err := s.store.LastUpdated(ctx)
	if err != nil {
		return "", WrapError(err, "failed to read last updated")
	}
	return latest.Format(layout), nil
}

// DeleteAll clears all recipe data; see CatalogService.
func (s *catalogService) DeleteAll(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return WrapError(err, "failed to delete recipes")
	}
	return nil
}
