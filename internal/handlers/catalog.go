package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"recipebox/internal/contextutil"
	"recipebox/internal/service"
	"recipebox/internal/storage"
)

// CatalogHandler handles HTTP requests for cached catalog reads.
type CatalogHandler struct {
	catalog service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// IngredientResponse is one ingredient line in an API response.
type IngredientResponse struct {
	Quantity    float64 `json:"quantity"`
	Measurement string  `json:"measurement"`
	Ingredient  string  `json:"ingredient"`
	Comment     string  `json:"comment,omitempty"`
}

// RecipeResponse is one recipe in an API response.
type RecipeResponse struct {
	Title           string               `json:"title"`
	Category        string               `json:"category"`
	PreparationTime int                  `json:"preparation_time"`
	Servings        int                  `json:"servings"`
	Description     string               `json:"description"`
	Ingredients     []IngredientResponse `json:"ingredients"`
	Instructions    []string             `json:"instructions"`
}

// RecipeDetailResponse is the single-recipe response. The description is
// authored as markdown, so the detail view also carries the rendered HTML.
type RecipeDetailResponse struct {
	RecipeResponse
	DescriptionHTML string `json:"description_html"`
}

// ListRecipes handles GET /api/recipes?category=<name>.
func (h *CatalogHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := r.URL.Query().Get("category")
	recipes, err := h.catalog.Catalog(ctx, filter)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list recipes", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read catalog")
		return
	}

	resp := make([]RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		resp = append(resp, toRecipeResponse(recipe))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetRecipe handles GET /api/recipes/{title}.
func (h *CatalogHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	title := chi.URLParam(r, "title")
	if unescaped, err := url.PathUnescape(title); err == nil {
		title = unescaped
	}
	recipe, err := h.catalog.Recipe(ctx, title)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to read recipe", "title", title, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read recipe")
		return
	}

	resp := RecipeDetailResponse{RecipeResponse: toRecipeResponse(*recipe)}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(recipe.Description), &buf); err != nil {
		// Rendering is best-effort; the raw description is still returned.
		logger.WarnContext(ctx, "failed to render description", "title", title, "error", err)
	} else {
		resp.DescriptionHTML = buf.String()
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListCategories handles GET /api/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.CategoryNames())
}

// Counts handles GET /api/counts.
func (h *CatalogHandler) Counts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts, err := h.catalog.Counts(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to count recipes", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to count recipes")
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// DeleteAll handles DELETE /api/recipes.
func (h *CatalogHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.catalog.DeleteAll(ctx); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to delete recipes", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete recipes")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// toRecipeResponse maps a storage recipe onto the API shape.
func toRecipeResponse(recipe storage.Recipe) RecipeResponse {
	resp := RecipeResponse{
		Title:           recipe.Title,
		Category:        recipe.Category,
		PreparationTime: recipe.PreparationTime,
		Servings:        recipe.Servings,
		Description:     recipe.Description,
		Ingredients:     make([]IngredientResponse, 0, len(recipe.Ingredients)),
		Instructions:    make([]string, 0, len(recipe.Instructions)),
	}
	for _, ing := range recipe.Ingredients {
		resp.Ingredients = append(resp.Ingredients, IngredientResponse{
			Quantity:    ing.Quantity,
			Measurement: ing.Measurement,
			Ingredient:  ing.Name,
			Comment:     ing.Comment,
		})
	}
	for _, step := range recipe.Instructions {
		resp.Instructions = append(resp.Instructions, step.Text)
	}
	return resp
}
