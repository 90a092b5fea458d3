package router

import (
	"database/sql"
	"net/http"

	_ "pets-api/docs"
	"pets-api/internal/domain/pets"
	"pets-api/internal/middleware"
	"pets-api/internal/platform/config"
	"pets-api/internal/platform/logger"
	"pets-api/internal/platform/pagination"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config
	Logger logger.Logger // nil => no-op

	// Registry para /metrics. Si es nil se crea uno con los collectors de Go y del proceso.
	Registry *prometheus.Registry

	// Opcional: si viene, se usa con el dialecto de Config.Storage.Driver. Si no, in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.NewHTTPMetrics(reg).Handler)
	r.Use(middleware.Recover(log))
	r.Use(chimw.StripSlashes)

	r.Get("/health", healthHandler(opts.DB))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	st := NewStores(opts.DB, opts.Config.Storage.Driver)

	reconciler := pets.NewReconciler(st.Groups, st.Traits,
		pets.WithUpdateMatch(pets.ParseMatchPolicy(opts.Config.Reconcile.UpdateMatch)),
		pets.WithMetrics(pets.NewMetrics(reg)),
		pets.WithReconcilerLogger(log),
	)
	petsSvc := pets.NewService(st.Pets, reconciler, pets.WithLogger(log))

	pets.RegisterRoutes(r, petsSvc, pets.RouteOptions{
		Paginator: pagination.New(opts.Config.Pagination.PageSize, opts.Config.Pagination.MaxPageSize),
		Logger:    log,
	})

	return r
}

// healthHandler responde "ok"; con DB, además hace ping y devuelve 503 si falla.
func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
