package service

import (
	"errors"
	"fmt"
)

var (
	// ErrSyncInProgress is returned when a sync of the same kind is already
	// running. It is a refusal, not a failure: nothing was fetched or written.
	ErrSyncInProgress = errors.New("sync already in progress")
	// ErrStorage is returned when a local store operation fails.
	ErrStorage = errors.New("storage error")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
)

// Outcome messages delivered to the caller. Each sync resolves to exactly
// one of these (or to the remote error text); raw errors are only logged.
const (
	MsgAlreadyUpdating   = "Update already in progress."
	MsgNoNewRecipes      = "No new recipes available."
	MsgSaveFailed        = "Failed saving to disk."
	MsgCategoriesUpdated = "Categories updated."
	MsgNoCategories      = "No categories available."
)

// recipesAddedMessage builds the count-based success message, singular or
// plural by count.
func recipesAddedMessage(count int) string {
	if count == 1 {
		return "1 new recipe added."
	}
	return fmt.Sprintf("%d new recipes added.", count)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
