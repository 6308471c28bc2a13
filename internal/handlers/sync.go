package handlers

import (
	"errors"
	"net/http"

	"recipebox/internal/contextutil"
	"recipebox/internal/remote"
	"recipebox/internal/service"
)

// SyncHandler handles HTTP requests that trigger syncs against the upstream
// service. Each request awaits the completion callback of its sync, so the
// response carries the final outcome message.
type SyncHandler struct {
	recipeSync   service.SyncService
	categorySync service.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(recipeSync, categorySync service.SyncService) *SyncHandler {
	return &SyncHandler{recipeSync: recipeSync, categorySync: categorySync}
}

// SyncResponse is the outcome of a sync request.
type SyncResponse struct {
	Message   string `json:"message"`
	Refreshed bool   `json:"refreshed"`
}

// SyncRecipes handles POST /api/sync/recipes.
func (h *SyncHandler) SyncRecipes(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.recipeSync)
}

// SyncCategories handles POST /api/sync/categories.
func (h *SyncHandler) SyncCategories(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, h.categorySync)
}

func (h *SyncHandler) run(w http.ResponseWriter, r *http.Request, syncer service.SyncService) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	done := make(chan service.SyncResult, 1)
	syncer.Trigger(ctx, func(result service.SyncResult) {
		done <- result
	})
	result := <-done

	switch {
	case result.Err == nil:
		writeJSON(w, http.StatusOK, SyncResponse{Message: result.Message, Refreshed: result.Refreshed})
	case errors.Is(result.Err, service.ErrSyncInProgress):
		writeJSON(w, http.StatusConflict, SyncResponse{Message: result.Message})
	case errors.Is(result.Err, remote.ErrNetwork),
		errors.Is(result.Err, remote.ErrProtocol),
		errors.Is(result.Err, remote.ErrDecode):
		logger.ErrorContext(ctx, "sync failed upstream", "error", result.Err)
		writeError(w, http.StatusBadGateway, result.Message)
	default:
		logger.ErrorContext(ctx, "sync failed", "error", result.Err)
		writeError(w, http.StatusInternalServerError, result.Message)
	}
}
