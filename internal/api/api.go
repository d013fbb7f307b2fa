package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/listkeep-io/listkeep/internal/auth"
	"github.com/listkeep-io/listkeep/internal/config"
	"github.com/listkeep-io/listkeep/internal/database"
)

type Api struct {
	Config *config.Config
	Router *chi.Mux

	tokens *auth.TokenManager
}

func NewApi(cfg *config.Config) (*Api, error) {
	if cfg.APIPort == 0 {
		return nil, errors.New("must have at least a port to start API")
	}

	api := &Api{
		Config: cfg,
		Router: chi.NewRouter(),
		tokens: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration),
	}

	api.setupRoutes()
	return api, nil
}

func (api *Api) setupRoutes() {
	r := api.Router

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   api.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/heartbeat"))

	// Public routes
	r.Post("/register", api.RegisterHandler)
	r.Post("/login", api.LoginHandler)
	r.Get("/logout", api.LogoutHandler)

	// Session-gated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.SessionAuthMiddleware(api.tokens, api.Config.Auth.CookieName))

		r.Route("/todos", func(r chi.Router) {
			r.Post("/", api.CreateTodoHandler)
			r.Get("/", api.ListTodosHandler)
			r.Put("/{todoID}", api.UpdateTodoHandler)
			r.Delete("/{todoID}", api.DeleteTodoHandler)
		})

		r.Get("/protected", api.ProtectedHandler)
	})
}

// Serve starts the HTTP server and the hourly session sweep. It blocks until
// the server stops.
func (api *Api) Serve() error {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			if err := database.CleanupExpiredSessions(); err != nil {
				log.Error().Err(err).Msg("failed to clean up expired sessions")
			}
			<-ticker.C
		}
	}()

	addr := fmt.Sprintf("0.0.0.0:%d", api.Config.APIPort)
	log.Info().Str("addr", addr).Msg("starting API server")

	server := &http.Server{
		Addr:         addr,
		Handler:      api.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}
