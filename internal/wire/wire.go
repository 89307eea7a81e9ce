package wire

import (
	"cinema-reservations/internal/adaptor"
	"cinema-reservations/internal/data/repository"
	"cinema-reservations/internal/usecase"
	"cinema-reservations/pkg/middleware"
	"cinema-reservations/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the router and the services behind it
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Options carries the optional collaborators. A nil Cache serves every request
// from the database.
type Options struct {
	Deps  usecase.Dependencies
	Cache *middleware.ResponseCache
	DB    adaptor.Pinger
}

func Wiring(repo *repository.Repository, opts Options, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, opts.Deps, logger)
	handler := adaptor.NewHandler(service, opts.DB, config, logger)

	return &App{
		Router:  setupRouter(handler, opts.Cache, logger),
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, cache *middleware.ResponseCache, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	r.Get("/health", handler.Health.Check)

	r.Route("/api", func(r chi.Router) {
		if cache != nil {
			r.Use(cache.Handler)
		}

		wireUser(r, handler.User)
		wireReservation(r, handler.Reservation)
		wirePayment(r, handler.Payment)
	})

	return r
}
