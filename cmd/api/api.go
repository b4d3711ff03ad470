package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"triplog/internal/auth"
	"triplog/internal/ratelimiter"
	"triplog/internal/shell"
	"triplog/internal/store"
	"triplog/internal/supabase"
)

type application struct {
	config        config
	store         store.Storage
	logger        *zap.SugaredLogger
	authenticator *auth.Authenticator
	gotrue        *supabase.AuthClient
	shells        *shell.Registry
	rateLimiter   *ratelimiter.FixedWindowRateLimiter
}

type config struct {
	addr           string
	env            string
	frontendURL    string
	supabase       supabaseConfig
	storageBackend string
	db             dbConfig
	rateLimiter    ratelimiter.Config
}

type supabaseConfig struct {
	url       string
	anonKey   string
	jwtSecret string
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	allowedOrigins := []string{"https://*", "http://*"}
	if app.config.frontendURL != "" {
		allowedOrigins = []string{app.config.frontendURL}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Get("/vocabularies", app.getVocabulariesHandler)

		r.Group(func(r chi.Router) {
			r.Use(app.SessionMiddleware)

			r.Get("/session", app.getSessionHandler)
			r.Post("/session/signout", app.signOutHandler)

			r.Route("/restaurants", func(r chi.Router) {
				r.Get("/", app.listRestaurantsHandler)
				r.With(app.RateLimiterMiddleware).Post("/", app.createRestaurantHandler)
				r.Get("/{restaurantID}", app.getRestaurantHandler)
				r.With(app.RateLimiterMiddleware).Post("/{restaurantID}/trips", app.createTripHandler)
			})

			r.With(app.RateLimiterMiddleware).Post("/trips/{tripID}/comments", app.createCommentHandler)

			r.Route("/selection", func(r chi.Router) {
				r.Delete("/", app.clearSelectionHandler)
				r.Post("/image", app.openImageHandler)
				r.Delete("/image", app.closeImageHandler)
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		app.shells.Close()
		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
