// Package server wires the application together: store, services, handlers,
// routes and graceful shutdown. This is the composition root: every
// dependency is assembled here and in main, nowhere else.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/fzaki/crowdlib/internal/auth"
	"github.com/fzaki/crowdlib/internal/config"
	"github.com/fzaki/crowdlib/internal/handler"
	"github.com/fzaki/crowdlib/internal/middleware"
	"github.com/fzaki/crowdlib/internal/repository/memory"
	"github.com/fzaki/crowdlib/internal/service"
)

// Server holds the router and its dependencies. The store lives for the
// lifetime of the server; there is nothing to flush or close on shutdown
// beyond the HTTP listener itself.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  *memory.Store
}

// New creates the server: an empty in-memory store seeded with the demo
// dataset, the service chain on top of it, and all routes.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	passwords := auth.NewPasswordServiceWithCost(cfg.BcryptCost)

	store := memory.New()
	if err := store.Seed(cfg.BaseURL, passwords.Hash); err != nil {
		return nil, fmt.Errorf("seeding store: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}

	s.setupRoutes(passwords, tokens)
	return s, nil
}

// setupRoutes assembles the dependency chain and binds it to the route tree.
//
// Everything under /api except /api/login sits behind RequireAuth, matching
// the original deployment where a single global filter guarded every
// resource.
func (s *Server) setupRoutes(passwords *auth.PasswordService, tokens *auth.TokenService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	links := service.Links{Base: s.config.BaseURL}

	notifications := service.NewNotificationService(s.store, s.store, s.logger)
	catalogueService := service.NewCatalogueService(s.store, notifications, s.logger)
	commentService := service.NewCommentService(s.store, s.store, notifications, links, s.logger)
	userService := service.NewUserService(s.store, s.store, s.store, s.logger)
	authService := service.NewAuthService(s.store, passwords, tokens, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	catalogueHandler := handler.NewCatalogueHandler(catalogueService, userService, links, s.logger)
	commentHandler := handler.NewCommentHandler(commentService, userService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)

	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/items", catalogueHandler.HandleList)
			r.Get("/items/{itemID}", catalogueHandler.HandleGet)

			r.Get("/items/{itemID}/comments", catalogueHandler.HandleComments)
			r.Post("/items/{itemID}/comments", commentHandler.HandleCreate)
			r.Get("/items/{itemID}/comments/{commentID}", commentHandler.HandleGet)
			r.Post("/items/{itemID}/comments/{commentID}", commentHandler.HandleReply)
			r.Get("/items/{itemID}/comments/{commentID}/replies", commentHandler.HandleReplies)
			r.Delete("/items/{itemID}/comments/{commentID}", commentHandler.HandleDelete)

			r.Get("/users/self", userHandler.HandleSelf)
			r.Get("/users/self/favourites", userHandler.HandleFavourites)
			r.Put("/users/self/favourites/{commentID}", userHandler.HandleAddFavourite)
			r.Get("/users/self/followedItems", userHandler.HandleFollowedItems)
			r.Put("/users/self/followedItems/{itemID}", userHandler.HandleFollowItem)
			r.Get("/users/self/notifications", userHandler.HandleNotifications)
		})
	})
}

// Router exposes the assembled route tree, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully, giving in-flight requests 30 seconds to complete.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", s.config.BaseURL),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
