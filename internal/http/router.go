package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"recipebox/internal/handlers"
	"recipebox/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Catalog      service.CatalogService
	RecipeSync   service.SyncService
	CategorySync service.SyncService
	DB           *sql.DB
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Recoverer)

	// Add request logging and CORS middleware
	r.Use(RequestLogger)
	r.Use(CORS)

	catalogHandler := handlers.NewCatalogHandler(deps.Catalog)
	syncHandler := handlers.NewSyncHandler(deps.RecipeSync, deps.CategorySync)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/recipes", catalogHandler.ListRecipes)
		r.Get("/recipes/{title}", catalogHandler.GetRecipe)
		r.Delete("/recipes", catalogHandler.DeleteAll)
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/counts", catalogHandler.Counts)
		r.Post("/sync/recipes", syncHandler.SyncRecipes)
		r.Post("/sync/categories", syncHandler.SyncCategories)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
