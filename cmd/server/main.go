package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rgoyal/flipfolio/internal/api"
	"github.com/rgoyal/flipfolio/internal/auth"
	"github.com/rgoyal/flipfolio/internal/cache"
	"github.com/rgoyal/flipfolio/internal/middleware"
	"github.com/rgoyal/flipfolio/internal/service"
	"github.com/rgoyal/flipfolio/internal/storage/objectstore"
	"github.com/rgoyal/flipfolio/internal/storage/sqlite"
	"github.com/rgoyal/flipfolio/pkg/logging"
)

const (
	shutdownTimeout = 10 * time.Second
	tokenDuration   = 24 * time.Hour

	rateLimitCapacity = 100
	rateLimitWindow   = time.Minute
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/flipfolio.db")
	uploadDir := getEnv("UPLOAD_DIR", "./data/uploads")
	port := getEnv("PORT", "8080")
	baseURL := getEnv("BASE_URL", "http://localhost:"+port)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	objects, err := objectstore.NewLocalStore(uploadDir, baseURL+"/uploads")
	if err != nil {
		slog.Error("Failed to initialize upload directory", "error", err)
		os.Exit(1)
	}

	var resultCache cache.Cache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		resultCache = cache.NewRedisCache(redisAddr)
		slog.Info("Analysis cache backed by redis", "addr", redisAddr)
	} else {
		resultCache = cache.NewMemoryCache()
		slog.Info("Analysis cache in memory, set REDIS_ADDR to share across instances")
	}

	jwtManager := auth.NewJWTManager(jwtSecret, tokenDuration)
	authService := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, auth.NewSessionBroadcaster())
	analysisService := service.NewAnalysisService(store, resultCache)
	listingService := service.NewListingService(store, objects, analysisService)

	handlers := api.New(slog.Default(), authService, listingService, analysisService, jwtManager)
	mux := handlers.Routes()

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	limiter := api.NewRateLimiter(rateLimitCapacity, rateLimitWindow)
	defer limiter.Stop()

	handler := middleware.Logging(middleware.Metrics(middleware.CORS(api.RateLimit(limiter, mux))))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	go func() {
		slog.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
