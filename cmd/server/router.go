package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/library-api/internal/api"
	apiMiddleware "github.com/phrazzld/library-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Resource routes are mounted under the configured base path; the health
// check stays reachable without a token.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	if app.rateLimiter != nil {
		r.Use(app.rateLimiter.Middleware)
	}

	userHandler := api.NewUserHandler(app.userService, app.logger)
	bookHandler := api.NewBookHandler(app.bookService, app.logger)
	borrowHandler := api.NewBorrowHandler(app.borrowService, app.logger)

	r.Route(app.config.Server.BasePath, func(r chi.Router) {
		r.Method(http.MethodGet, "/health", api.NewHealthHandler())

		r.Group(func(r chi.Router) {
			if app.jwtService != nil {
				r.Use(apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate)
			}
			userHandler.Routes(r)
			bookHandler.Routes(r)
			borrowHandler.Routes(r)
		})
	})

	return r
}
