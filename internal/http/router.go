package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/osadebe/kobo/internal/http/account"
	"github.com/osadebe/kobo/internal/http/budget"
	"github.com/osadebe/kobo/internal/http/category"
	"github.com/osadebe/kobo/internal/http/dashboard"
	"github.com/osadebe/kobo/internal/http/importcsv"
	"github.com/osadebe/kobo/internal/http/middleware"
	"github.com/osadebe/kobo/internal/http/transaction"
)

func New(
	jwtSecret string,
	accountsV1 *account.Handler,
	transactionsV1 *transaction.Handler,
	budgetV1 *budget.Handler,
	categoriesV1 *category.Handler,
	dashboardV1 *dashboard.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(jwtSecret))

		r.Route("/accounts", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			accountsV1.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/budget", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			budgetV1.Routes(r)
		})

		r.Route("/categories", categoriesV1.Routes)

		r.Route("/dashboard", dashboardV1.Routes)

		r.Route("/import", importV1.Routes)
	})

	return router
}
