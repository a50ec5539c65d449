// Package router assembles the HTTP surface: middleware stack, health check,
// swagger UI, and the API routes. It is a separate package so tests can stand
// up the full surface against in-memory collaborators.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/pawhome/service/internal/auth"
	appMiddleware "github.com/pawhome/service/internal/middleware"
	"github.com/pawhome/service/internal/pet"
)

// requestTimeout bounds a whole request including store calls.
const requestTimeout = 30 * time.Second

// Options carries the handlers and middleware the router wires together.
type Options struct {
	// AllowedOrigin is the fixed browser origin accepted next to the wildcard.
	AllowedOrigin string
	Auth          *auth.Handler
	Pets          *pet.Handler
	// Gate is the request-authorization middleware guarding the
	// bearer-protected routes (see middleware.RequireUser).
	Gate func(http.Handler) http.Handler
}

// New builds the service's http.Handler.
func New(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{opts.AllowedOrigin, "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at /swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Public auth endpoints
	r.Post("/register", opts.Auth.Register)
	r.Post("/login", opts.Auth.Login)

	// Bearer-protected post endpoints
	r.Group(func(r chi.Router) {
		r.Use(opts.Gate)
		r.Post("/createPost", opts.Pets.CreatePost)
		r.Put("/updatePost/{petId}", opts.Pets.UpdatePost)
		r.Get("/getPostById/{postId}", opts.Pets.GetPostByID)
	})

	// Open post endpoints (historical contract: no auth on list and delete)
	r.Get("/getAllPosts", opts.Pets.GetAllPosts)
	r.Get("/getPosts/{userId}", opts.Pets.GetPostsByUser)
	r.Delete("/deletePost/{postId}", opts.Pets.DeletePost)

	return r
}
