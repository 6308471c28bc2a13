package service

import (
	"context"
	"sync/atomic"

	"recipebox/internal/cache"
	"recipebox/internal/contextutil"
	"recipebox/internal/remote"
	"recipebox/internal/storage"
)

// SyncResult is the single outcome of one sync attempt. Message is the
// human-readable text shown to the user; Err carries the typed cause for
// callers that need to branch on it. Recipes holds the refreshed catalog
// when the sync changed the store.
type SyncResult struct {
	Message   string
	Refreshed bool
	Recipes   []storage.Recipe
	Err       error
}

// SyncService runs one kind of sync against the upstream service.
// Trigger never overlaps two syncs of the same kind.
type SyncService interface {
	// Sync runs one synchronous sync cycle and returns its outcome.
	Sync(ctx context.Context) SyncResult
	// Trigger runs Sync on a background goroutine and invokes onComplete
	// exactly once with the outcome. onComplete may be nil.
	Trigger(ctx context.Context, onComplete func(SyncResult))
}

// recipeSyncService orchestrates fetch → translate → persist for recipes.
type recipeSyncService struct {
	fetcher    RecipeFetcher
	store      RecipeStore
	categories *cache.Categories
	updating   atomic.Bool
}

// NewRecipeSync creates the recipe sync coordinator.
func NewRecipeSync(fetcher RecipeFetcher, store RecipeStore, categories *cache.Categories) SyncService {
	return &recipeSyncService{
		fetcher:    fetcher,
		store:      store,
		categories: categories,
	}
}

// Sync runs one recipe sync cycle: read the watermark, fetch everything
// newer, replace the local set, and re-read the catalog. The exclusivity
// guard is cleared on every path.
func (s *recipeSyncService) Sync(ctx context.Context) SyncResult {
	logger := contextutil.LoggerFromContext(ctx)

	if !s.updating.CompareAndSwap(false, true) {
		logger.InfoContext(ctx, "recipe sync refused, already updating")
		return SyncResult{Message: MsgAlreadyUpdating, Err: ErrSyncInProgress}
	}
	defer s.updating.Store(false)

	since, err := s.store.LastUpdated(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read last-updated watermark", "error", err)
		return SyncResult{Message: MsgSaveFailed, Err: WrapError(err, "failed to read watermark")}
	}

	payload, err := s.fetcher.FetchRecipes(ctx, since)
	if err != nil {
		logger.ErrorContext(ctx, "recipe fetch failed", "error", err)
		return SyncResult{Message: err.Error(), Err: err}
	}

	if payload.RecentlyAddedCount == 0 || len(payload.Recipes) == 0 {
		logger.InfoContext(ctx, "no new recipes", "since", since)
		return SyncResult{Message: MsgNoNewRecipes}
	}

	recipes := s.translate(payload.Recipes)
	if err := s.store.ReplaceAll(ctx, recipes); err != nil {
		logger.ErrorContext(ctx, "failed to persist recipes", "error", err)
		return SyncResult{Message: MsgSaveFailed, Err: WrapError(err, "failed to persist recipes")}
	}

	refreshed, err := s.store.ListAll(ctx)
	if err != nil {
		// The write committed; the refreshed list is a convenience for the
		// caller, so a read failure does not undo the successful sync.
		logger.ErrorContext(ctx, "failed to re-read catalog after sync", "error", err)
	}
	resolveCategoryNames(refreshed, s.categories)

	logger.InfoContext(ctx, "recipe sync complete",
		"new", payload.RecentlyAddedCount, "total", len(recipes))
	return SyncResult{
		Message:   recipesAddedMessage(payload.RecentlyAddedCount),
		Refreshed: true,
		Recipes:   refreshed,
	}
}

// Trigger runs Sync asynchronously; see SyncService.
func (s *recipeSyncService) Trigger(ctx context.Context, onComplete func(SyncResult)) {
	go func() {
		result := s.Sync(ctx)
		if onComplete != nil {
			onComplete(result)
		}
	}()
}

// translate maps wire records into storage recipes, resolving category ids
// through the cache and assigning sequence numbers from wire order.
func (s *recipeSyncService) translate(records []remote.RecipeRecord) []storage.Recipe {
	recipes := make([]storage.Recipe, 0, len(records))
	for _, rec := range records {
		recipe := storage.Recipe{
			Title:           rec.Title,
			CategoryID:      s.categories.IDOf(rec.Category),
			Category:        rec.Category,
			PreparationTime: rec.PreparationTime,
			Servings:        rec.Servings,
			Description:     rec.Description,
		}
		for i, ing := range rec.Ingredients {
			recipe.Ingredients = append(recipe.Ingredients, storage.Ingredient{
				Quantity:    ing.Quantity,
				Measurement: ing.Measurement,
				Name:        ing.Ingredient,
				Comment:     ing.Comment,
				Count:       i + 1,
			})
		}
		for i, step := range rec.Instructions {
			recipe.Instructions = append(recipe.Instructions, storage.Instruction{
				Text:  step.Instruction,
				Count: i + 1,
			})
		}
		recipes = append(recipes, recipe)
	}
	return recipes
}

// resolveCategoryNames fills the display name on each recipe from the cache.
func resolveCategoryNames(recipes []storage.Recipe, categories *cache.Categories) {
	for i := range recipes {
		recipes[i].Category = categories.NameOf(recipes[i].CategoryID)
	}
}
