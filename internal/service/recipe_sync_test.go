package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"recipebox/internal/cache"
	"recipebox/internal/remote"
	"recipebox/internal/service"
	"recipebox/internal/service/mocks"
	"recipebox/internal/storage"

	"go.uber.org/mock/gomock"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testCache() *cache.Categories {
	c := cache.New()
	c.BulkLoad([]storage.Category{
		{ID: 1, Name: "Main"},
		{ID: 2, Name: "Breakfast"},
	})
	return c
}

func wireRecipes(n int) []remote.RecipeRecord {
	records := make([]remote.RecipeRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, remote.RecipeRecord{
			Title:    string(rune('A'+i)) + " recipe",
			Category: "Main",
		})
	}
	return records
}

func TestRecipeSync_OutcomeMessages(t *testing.T) {
	tests := []struct {
		name        string
		count       int
		wantMessage string
		wantPersist bool
	}{
		{name: "no new recipes", count: 0, wantMessage: "No new recipes available."},
		{name: "one new recipe", count: 1, wantMessage: "1 new recipe added.", wantPersist: true},
		{name: "five new recipes", count: 5, wantMessage: "5 new recipes added.", wantPersist: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			fetcher := mocks.NewMockRecipeFetcher(ctrl)
			store := mocks.NewMockRecipeStore(ctrl)

			store.EXPECT().LastUpdated(gomock.Any()).Return(time.Unix(0, 0).UTC(), nil)
			fetcher.EXPECT().FetchRecipes(gomock.Any(), gomock.Any()).Return(&remote.RecipesPayload{
				RecentlyAddedCount: tt.count,
				Recipes:            wireRecipes(tt.count),
			}, nil)
			if tt.wantPersist {
				store.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).Return(nil)
				store.EXPECT().ListAll(gomock.Any()).Return([]storage.Recipe{{Title: "A recipe", CategoryID: 1}}, nil)
			}

			svc := service.NewRecipeSync(fetcher, store, testCache())
			result := svc.Sync(context.Background())

			if result.Message != tt.wantMessage {
				t.Errorf("Sync() message = %q, want %q", result.Message, tt.wantMessage)
			}
			if result.Err != nil {
				t.Errorf("Sync() err = %v, want nil", result.Err)
			}
			if result.Refreshed != tt.wantPersist {
				t.Errorf("Sync() refreshed = %v, want %v", result.Refreshed, tt.wantPersist)
			}
		})
	}
}

func TestRecipeSync_UsesStoredWatermark(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockRecipeFetcher(ctrl)
	store := mocks.NewMockRecipeStore(ctrl)

	watermark := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	store.EXPECT().LastUpdated(gomock.Any()).Return(watermark, nil)
	fetcher.EXPECT().FetchRecipes(gomock.Any(), watermark).Return(&remote.RecipesPayload{}, nil)

	svc := service.NewRecipeSync(fetcher, store, testCache())
	if result := svc.Sync(context.Background()); result.Err != nil {
		t.Fatalf("Sync() err = %v", result.Err)
	}
}

func TestRecipeSync_TranslatePreservesOrderAndResolvesCategories(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockRecipeFetcher(ctrl)
	store := mocks.NewMockRecipeStore(ctrl)

	payload := &remote.RecipesPayload{
		RecentlyAddedCount: 1,
		Recipes: []remote.RecipeRecord{{
			Title:    "Pancakes",
			Category: "Breakfast",
			Ingredients: []remote.IngredientRecord{
				{Quantity: 1.5, Measurement: "cups", Ingredient: "flour"},
				{Quantity: 2, Measurement: "", Ingredient: "eggs", Comment: "large"},
			},
			Instructions: []remote.InstructionRecord{
				{Instruction: "Whisk."},
				{Instruction: "Fry."},
			},
		}, {
			Title:    "Mystery Stew",
			Category: "Unlisted",
		}},
	}

	store.EXPECT().LastUpdated(gomock.Any()).Return(time.Unix(0, 0).UTC(), nil)
	fetcher.EXPECT().FetchRecipes(gomock.Any(), gomock.Any()).Return(payload, nil)

	var saved []storage.Recipe
	store.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, recipes []storage.Recipe) error {
			saved = recipes
			return nil
		})
	store.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	svc := service.NewRecipeSync(fetcher, store, testCache())
	if result := svc.Sync(context.Background()); result.Err != nil {
		t.Fatalf("Sync() err = %v", result.Err)
	}

	if len(saved) != 2 {
		t.Fatalf("persisted %d recipes, want 2", len(saved))
	}
	if saved[0].CategoryID != 2 {
		t.Errorf("Pancakes category id = %d, want 2 (Breakfast)", saved[0].CategoryID)
	}
	// Unknown category names fall back to the sentinel id
	if saved[1].CategoryID != cache.AllCategoryID {
		t.Errorf("unknown category id = %d, want sentinel %d", saved[1].CategoryID, cache.AllCategoryID)
	}

	ings := saved[0].Ingredients
	if len(ings) != 2 || ings[0].Name != "flour" || ings[1].Name != "eggs" {
		t.Fatalf("ingredient order not preserved: %+v", ings)
	}
	if ings[0].Count != 1 || ings[1].Count != 2 {
		t.Errorf("ingredient counts = %d, %d, want 1, 2", ings[0].Count, ings[1].Count)
	}
	steps := saved[0].Instructions
	if len(steps) != 2 || steps[0].Text != "Whisk." || steps[1].Count != 2 {
		t.Errorf("instruction order not preserved: %+v", steps)
	}
}

func TestRecipeSync_FetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockRecipeFetcher(ctrl)
	store := mocks.NewMockRecipeStore(ctrl)

	store.EXPECT().LastUpdated(gomock.Any()).Return(time.Unix(0, 0).UTC(), nil)
	fetcher.EXPECT().FetchRecipes(gomock.Any(), gomock.Any()).
		Return(nil, &remote.StatusError{Code: 500})

	svc := service.NewRecipeSync(fetcher, store, testCache())
	result := svc.Sync(context.Background())

	if result.Message != "500. Internal Server Error" {
		t.Errorf("Sync() message = %q, want %q", result.Message, "500. Internal Server Error")
	}
	if !errors.Is(result.Err, remote.ErrProtocol) {
		t.Errorf("Sync() err = %v, want ErrProtocol", result.Err)
	}
	if result.Refreshed {
		t.Error("Sync() refreshed = true after failed fetch")
	}
}

func TestRecipeSync_SaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockRecipeFetcher(ctrl)
	store := mocks.NewMockRecipeStore(ctrl)

	store.EXPECT().LastUpdated(gomock.Any()).Return(time.Unix(0, 0).UTC(), nil)
	fetcher.EXPECT().FetchRecipes(gomock.Any(), gomock.Any()).Return(&remote.RecipesPayload{
		RecentlyAddedCount: 2,
		Recipes:            wireRecipes(2),
	}, nil)
	store.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc := service.NewRecipeSync(fetcher, store, testCache())
	result := svc.Sync(context.Background())

	if result.Message != service.MsgSaveFailed {
		t.Errorf("Sync() message = %q, want %q", result.Message, service.MsgSaveFailed)
	}
	if result.Err == nil || result.Refreshed {
		t.Errorf("Sync() = {err: %v, refreshed: %v}, want error and no refresh", result.Err, result.Refreshed)
	}
}

func TestRecipeSync_Exclusivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockRecipeFetcher(ctrl)
	store := mocks.NewMockRecipeStore(ctrl)

	fetchStarted := make(chan struct{})
	release := make(chan struct{})

	store.EXPECT().LastUpdated(gomock.Any()).Return(time.Unix(0, 0).UTC(), nil)
	fetcher.EXPECT().FetchRecipes(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, time.Time) (*remote.RecipesPayload, error) {
			close(fetchStarted)
			<-release
			return &remote.RecipesPayload{}, nil
		})

	svc := service.NewRecipeSync(fetcher, store, testCache())

	firstDone := make(chan service.SyncResult, 1)
	svc.Trigger(context.Background(), func(result service.SyncResult) {
		firstDone <- result
	})

	// The second trigger arrives while the first fetch is still blocked, so
	// the guard is held: it must not start a second fetch, and its callback
	// still fires exactly once.
	<-fetchStarted
	secondDone := make(chan service.SyncResult, 1)
	svc.Trigger(context.Background(), func(result service.SyncResult) {
		secondDone <- result
	})
	secondResult := <-secondDone

	close(release)
	firstResult := <-firstDone
	if firstResult.Err != nil {
		t.Errorf("first sync err = %v, want nil", firstResult.Err)
	}
	if !errors.Is(secondResult.Err, service.ErrSyncInProgress) {
		t.Errorf("second sync err = %v, want ErrSyncInProgress", secondResult.Err)
	}
	if secondResult.Message != service.MsgAlreadyUpdating {
		t.Errorf("second sync message = %q, want %q", secondResult.Message, service.MsgAlreadyUpdating)
	}
}

func TestRecipeSync_GuardClearedAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockRecipeFetcher(ctrl)
	store := mocks.NewMockRecipeStore(ctrl)

	store.EXPECT().LastUpdated(gomock.Any()).Return(time.Unix(0, 0).UTC(), nil).Times(2)
	fetcher.EXPECT().FetchRecipes(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))
	fetcher.EXPECT().FetchRecipes(gomock.Any(), gomock.Any()).
		Return(&remote.RecipesPayload{}, nil)

	svc := service.NewRecipeSync(fetcher, store, testCache())

	if result := svc.Sync(context.Background()); result.Err == nil {
		t.Fatal("first Sync() expected error")
	}
	// The guard must have been released despite the failure.
	if result := svc.Sync(context.Background()); errors.Is(result.Err, service.ErrSyncInProgress) {
		t.Error("second Sync() refused; guard was not cleared")
	}
}

func TestRecipeSync_TriggerNilCallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockRecipeFetcher(ctrl)
	store := mocks.NewMockRecipeStore(ctrl)

	done := make(chan struct{})
	store.EXPECT().LastUpdated(gomock.Any()).Return(time.Unix(0, 0).UTC(), nil)
	fetcher.EXPECT().FetchRecipes(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, time.Time) (*remote.RecipesPayload, error) {
			defer close(done)
			return &remote.RecipesPayload{}, nil
		})

	svc := service.NewRecipeSync(fetcher, store, testCache())
	// A torn-down caller passes no callback; the sync must still complete.
	svc.Trigger(context.Background(), nil)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sync did not complete with nil callback")
	}
}
