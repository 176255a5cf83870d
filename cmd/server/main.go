package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"jude-explorer/internal/api"
	"jude-explorer/internal/backend"
	"jude-explorer/internal/config"
	"jude-explorer/internal/datasource"
	"jude-explorer/internal/export"
	"jude-explorer/internal/logging"
	"jude-explorer/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logging.SetLevel(cfg.LogLevel)
	logger := logging.New("server")

	// Dataset source: the subject database when configured, the backend otherwise
	client := backend.NewClient(cfg.BackendURL, cfg.HTTPTimeout)
	var source datasource.Source = client
	var pg *datasource.PostgresSource
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pg, err = datasource.OpenPostgres(ctx, cfg.DatabaseURL, cfg.SubjectTable)
		cancel()
		if err != nil {
			log.Fatalf("Database unavailable: %v", err)
		}
		defer pg.Close()
		source = pg
	}

	store := state.NewStore(source)

	var exporter export.Exporter = client
	if pg != nil {
		exporter = export.NewCSVExporter(store.Dataset)
	}

	loadTimeout := cfg.HTTPTimeout
	if loadTimeout <= 0 {
		loadTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	if err := store.Load(ctx); err != nil {
		logger.Warnf("initial dataset load failed, POST /api/reload to retry: %v", err)
	}
	cancel()

	// Initialize Handler
	handler := api.NewHandler(store, exporter)

	// Router Setup
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// CORS - Allow frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,

		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("JuDE explorer backend is running"))
	})

	// Register all API Routes
	handler.RegisterRoutes(r)

	log.Printf("Starting explorer on http://localhost:%s", cfg.Port)
	log.Printf("Dataset backend: %s", cfg.BackendURL)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
