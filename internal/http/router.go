package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/moneymanager/internal/http/account"
	"github.com/MrJamesThe3rd/moneymanager/internal/http/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/http/category"
	"github.com/MrJamesThe3rd/moneymanager/internal/http/export"
	"github.com/MrJamesThe3rd/moneymanager/internal/http/importer"
	"github.com/MrJamesThe3rd/moneymanager/internal/http/matching"
	"github.com/MrJamesThe3rd/moneymanager/internal/http/transaction"
)

type Handlers struct {
	Transactions *transaction.Handler
	Categories   *category.Handler
	Accounts     *account.Handler
	Import       *importer.Handler
	Matching     *matching.Handler
	Analytics    *analytics.Handler
	Exports      *export.Handler
}

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Categories.Routes(r)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Accounts.Routes(r)
		})

		r.Route("/import", h.Import.Routes)
		r.Route("/matching", h.Matching.Routes)
		r.Route("/analytics", h.Analytics.Routes)
		r.Route("/exports", h.Exports.Routes)
	})

	return router
}
