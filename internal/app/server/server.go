package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skiftlonn/internal/domain/audit"
	"skiftlonn/internal/domain/auth"
	"skiftlonn/internal/domain/employees"
	"skiftlonn/internal/domain/reports"
	"skiftlonn/internal/domain/settings"
	"skiftlonn/internal/domain/shifts"
	"skiftlonn/internal/domain/subscription"
	"skiftlonn/internal/domain/wage"
	"skiftlonn/internal/platform/config"
	"skiftlonn/internal/platform/db"
	"skiftlonn/internal/platform/jobs"
	"skiftlonn/internal/platform/metrics"
	authhandler "skiftlonn/internal/transport/http/handlers/auth"
	employeeshandler "skiftlonn/internal/transport/http/handlers/employees"
	reportshandler "skiftlonn/internal/transport/http/handlers/reports"
	settingshandler "skiftlonn/internal/transport/http/handlers/settings"
	shiftshandler "skiftlonn/internal/transport/http/handlers/shifts"
	subscriptionhandler "skiftlonn/internal/transport/http/handlers/subscription"
	"skiftlonn/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Jobs    *jobs.Service
	Metrics *metrics.Collector
}

// New wires the whole application: database, migrations, seed, domain
// services, and the HTTP router. Callers own the returned App and must
// Close it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	policy := wage.Policy{
		PauseThreshold: wage.DefaultPolicy.PauseThreshold,
		PauseDeduction: wage.DefaultPolicy.PauseDeduction,
		Year:           cfg.ReferenceYear,
	}
	freeLimits := subscription.Limits{
		MaxShifts:    cfg.FreeShiftLimit,
		MaxEmployees: cfg.FreeEmployeeLimit,
	}

	userStore := auth.NewStore(pool)
	employeeStore := employees.NewStore(pool)
	shiftStore := shifts.NewStore(pool)
	settingsStore := settings.NewStore(pool)
	subStore := subscription.NewStore(pool)
	subService := subscription.NewService(subStore, freeLimits, cfg.CheckoutURL)
	shiftService := shifts.NewService(shiftStore, settingsStore, subService, policy)
	reportService := reports.NewService(shiftStore, employeeStore, settingsStore, policy)
	auditService := audit.New(pool)

	jobService := jobs.New(pool, cfg)
	jobService.Start(ctx)

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(collector.Snapshot()); err != nil {
				log.Printf("metrics encode failed: %v", err)
			}
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(userStore, cfg.JWTSecret, cfg.AllowSelfSignup).RegisterRoutes(r)
		employeeshandler.NewHandler(employeeStore, subService, auditService).RegisterRoutes(r)
		shiftshandler.NewHandler(shiftService, auditService).RegisterRoutes(r)
		settingshandler.NewHandler(settingsStore, auditService).RegisterRoutes(r)
		subscriptionhandler.NewHandler(subService, auditService).RegisterRoutes(r)
		reportshandler.NewHandler(reportService, subService).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return &App{
		Config:  cfg,
		DB:      pool,
		Router:  router,
		Jobs:    jobService,
		Metrics: collector,
	}, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func Run() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("wage calculator listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// spaHandler serves the built frontend, falling back to index.html so
// client-side routes resolve after a hard refresh.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
