package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/blogit-be/internal/api/handlers"
	"github.com/isdelr/blogit-be/internal/auth"
	"github.com/isdelr/blogit-be/internal/services"
	"github.com/isdelr/blogit-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.TokenService,
	userService services.UserServiceProvider,
	postService services.PostServiceProvider,
	eventService services.EventServiceProvider,
	hub *websocket.Hub,
	corsOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the browser client
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens, eventService)
	blogHandler := handlers.NewBlogHandler(postService, eventService)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api", func(r chi.Router) {
		// Live activity feed
		r.Get("/ws", wsHandler.Serve)

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(tokens.Middleware())
				r.Get("/validate-user", userHandler.ValidateUser)
			})
		})

		r.Route("/blogs", func(r chi.Router) {
			// Reads are intentionally public.
			r.Get("/all-blogs", blogHandler.GetAll)
			r.Get("/blog/{id}", blogHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(tokens.Middleware())
				r.Post("/create", blogHandler.Create)
				r.Put("/edit/{id}", blogHandler.Edit)
				r.Delete("/delete/{id}", blogHandler.Delete)
			})
		})

		r.Get("/events/recent", eventHandler.GetRecent)
	})

	return r
}
