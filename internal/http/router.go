package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ragcompare/internal/handlers"
	"ragcompare/internal/metrics"
	"ragcompare/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	StackService service.StackService
	Health       http.Handler
	Metrics      *metrics.Metrics
	CORSOrigins  []string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS(deps.CORSOrigins))
	r.Use(deps.Metrics.Middleware)

	stackHandler := handlers.NewStackHandler(deps.StackService)

	r.Route("/api", func(r chi.Router) {
		if deps.Health != nil {
			r.Method(http.MethodGet, "/health", deps.Health)
		}
		r.Get("/stacks", stackHandler.ListStacks)

		r.Route("/{stack}", func(r chi.Router) {
			r.Post("/new", stackHandler.Open)
			r.Get("/list-files", stackHandler.ListFiles)
			r.Post("/add-files", stackHandler.AddFiles)
			r.Post("/clear-files", stackHandler.ClearFiles)
			r.Post("/add-conversation", stackHandler.AddConversation)
			r.Post("/clear-conversation", stackHandler.ClearConversation)
			r.Get("/stats", stackHandler.Stats)
		})
	})

	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	return r
}
