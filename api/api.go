package api

import (
	"inventory-services/inventory"
	"inventory-services/invlog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/ninja-software/log_helpers"
	"github.com/rs/zerolog"
)

// API server
type API struct {
	Log     *zerolog.Logger
	Routes  chi.Router
	Addr    string
	Conn    *pgxpool.Pool
	Service *inventory.Service
}

// NewAPI registers routes
func NewAPI(
	log *zerolog.Logger,
	conn *pgxpool.Pool,
	service *inventory.Service,
	addr string,
) *API {
	api := &API{
		Log:     log_helpers.NamedLogger(log, "api"),
		Routes:  chi.NewRouter(),
		Addr:    addr,
		Conn:    conn,
		Service: service,
	}

	api.Routes.Use(middleware.RequestID)
	api.Routes.Use(middleware.RealIP)
	api.Routes.Use(invlog.ChiLogger(zerolog.DebugLevel))
	api.Routes.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}).Handler)

	api.Routes.Route("/api", func(r chi.Router) {
		r.Mount("/check", CheckRouter(log_helpers.NamedLogger(log, "check router"), conn))
		r.Mount("/products", ProductRouter(log, service))
	})

	return api
}
