package service

import (
	"context"
	"sync/atomic"

	"recipebox/internal/cache"
	"recipebox/internal/contextutil"
	"recipebox/internal/storage"
)

// categorySyncService orchestrates fetch → persist → cache reload for
// categories. Its exclusivity guard is independent from the recipe sync
// guard: the two kinds touch disjoint tables and may run concurrently.
type categorySyncService struct {
	fetcher    CategoryFetcher
	store      CategoryStore
	categories *cache.Categories
	updating   atomic.Bool
}

// NewCategorySync creates the category sync coordinator.
func NewCategorySync(fetcher CategoryFetcher, store CategoryStore, categories *cache.Categories) SyncService {
	return &categorySyncService{
		fetcher:    fetcher,
		store:      store,
		categories: categories,
	}
}

// Sync runs one category sync cycle. Success is reported only when both the
// persist and the cache reload succeed; the guard is cleared on every path.
func (s *categorySyncService) Sync(ctx context.Context) SyncResult {
	logger := contextutil.LoggerFromContext(ctx)

	if !s.updating.CompareAndSwap(false, true) {
		logger.InfoContext(ctx, "category sync refused, already updating")
		return SyncResult{Message: MsgAlreadyUpdating, Err: ErrSyncInProgress}
	}
	defer s.updating.Store(false)

	fetched, err := s.fetcher.FetchCategories(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "category fetch failed", "error", err)
		return SyncResult{Message: err.Error(), Err: err}
	}

	if len(fetched) == 0 {
		logger.WarnContext(ctx, "empty category response")
		return SyncResult{Message: MsgNoCategories}
	}

	entries := make([]storage.Category, 0, len(fetched))
	for _, cat := range fetched {
		entries = append(entries, storage.Category{ID: cat.ID, Name: cat.Name})
	}

	if err := s.store.ReplaceAll(ctx, entries); err != nil {
		logger.ErrorContext(ctx, "failed to persist categories", "error", err)
		return SyncResult{Message: MsgSaveFailed, Err: WrapError(err, "failed to persist categories")}
	}

	s.categories.BulkLoad(entries)

	logger.InfoContext(ctx, "category sync complete", "count", len(entries))
	return SyncResult{Message: MsgCategoriesUpdated, Refreshed: true}
}

// Trigger runs Sync asynchronously; see SyncService.
func (s *categorySyncService) Trigger(ctx context.Context, onComplete func(SyncResult)) {
	go func() {
		result := s.Sync(ctx)
		if onComplete != nil {
			onComplete(result)
		}
	}()
}
