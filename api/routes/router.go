package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/borrago/dropentregas/api/controllers"
	"github.com/borrago/dropentregas/api/middleware"
	"github.com/borrago/dropentregas/api/responses"
	authsvc "github.com/borrago/dropentregas/internal/auth"
	"github.com/borrago/dropentregas/internal/catalog"
	"github.com/borrago/dropentregas/internal/coupons"
	ordersvc "github.com/borrago/dropentregas/internal/orders"
	"github.com/borrago/dropentregas/pkg/config"
	"github.com/borrago/dropentregas/pkg/db"
	pkgerrors "github.com/borrago/dropentregas/pkg/errors"
	"github.com/borrago/dropentregas/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	authService authsvc.Service,
	catalogRepo catalog.Repository,
	couponsRepo coupons.Repository,
	ordersService ordersvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.AuthRegister(authService, logg))
			r.Post("/login", controllers.AuthLogin(authService, logg))
			r.With(middleware.Auth(cfg.JWT, logg)).Get("/me", controllers.AuthMe(authService, logg))
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", controllers.VehicleList(catalogRepo, logg))
			r.Get("/{id}", controllers.VehicleDetail(catalogRepo, logg))
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", controllers.CouponList(couponsRepo, logg))
			r.Get("/{code}", controllers.CouponDetail(couponsRepo, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/price", controllers.OrderQuote(ordersService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Post("/", controllers.OrderCreate(ordersService, logg))
				r.Get("/me", controllers.MyOrders(ordersService, logg))
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	return r
}
