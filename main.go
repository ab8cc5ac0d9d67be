package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/username/tourdesk/backend/src/config"
	"github.com/username/tourdesk/backend/src/database"
	"github.com/username/tourdesk/backend/src/handlers"
	"github.com/username/tourdesk/backend/src/logger"
	"github.com/username/tourdesk/backend/src/processors"
	"github.com/username/tourdesk/backend/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
			"https://tourdesk.pt":   true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("TourDesk settlement backend starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	reportCache := cache.New(services.DefaultCacheExpiration, services.CacheCleanupInterval)

	matchEngine := processors.NewMatchEngine(processors.MatchPolicy{
		ToleranceCents:   config.Cfg.PriceToleranceCents,
		AllowContainment: config.Cfg.NameMatchAllowContainment,
		StripPunctuation: config.Cfg.NameMatchStripPunctuation,
	})
	aggregator := processors.NewSummaryAggregator()

	referenceStore := services.NewSQLReferenceStore(database.DB)
	batchStore := services.NewSQLBatchStore(database.DB)
	referenceLoader := services.NewReferenceLoader(referenceStore, config.Cfg.MatchWindowPaddingDays, config.Cfg.ReferenceFetchTimeout)

	settlementService := services.NewSettlementService(
		referenceLoader,
		matchEngine,
		aggregator,
		batchStore,
		reportCache,
	)

	settlementHandler := handlers.NewSettlementHandler(settlementService)
	platformHandler := handlers.NewPlatformHandler()

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "TourDesk Settlement Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/platforms", platformHandler.HandleListPlatforms)

		r.Route("/settlements", func(r chi.Router) {
			r.Post("/upload", settlementHandler.HandleUpload)
			r.Get("/batches", settlementHandler.HandleListBatches)
			r.Get("/batches/{id}", settlementHandler.HandleGetBatch)
			r.Get("/batches/{id}/summary", settlementHandler.HandleGetSummary)
			r.Post("/batches/{id}/confirm", settlementHandler.HandleConfirmBatch)
		})
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
