package main

import (
	"net/http"
	"os"

	"github.com/kdimtricp/specpair/internal/api"
	"github.com/kdimtricp/specpair/internal/config"
	"github.com/kdimtricp/specpair/internal/database"
	"github.com/kdimtricp/specpair/internal/envi"
	"github.com/kdimtricp/specpair/internal/logging"
	"github.com/kdimtricp/specpair/internal/pairing"
	"github.com/kdimtricp/specpair/internal/storage"
)

func main() {
	logger := logging.NewLogger("specpair-server", logging.GetLogLevel(), os.Stderr)

	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "./specpair.db")

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	imageStorage, err := storage.NewLocalStorage(cfg.ImagesDir)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	cfg.ImagesDir = imageStorage.BasePath()

	db, err := database.NewDB(database.Config{SQLitePath: dbPath})
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(logger.Named("migrate")); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	app := &api.App{
		Storage:  imageStorage,
		ScanRepo: database.NewScanRepository(db),
		Pairer:   pairing.NewPairer(cfg, envi.NewBuilder(), logger.Named("pairing")),
		Logger:   logger.Named("api"),
	}

	router := api.NewRouter(app)

	logger.Info("server starting", "port", port)
	logger.Info("images directory", "path", cfg.ImagesDir)
	logger.Info("database", "path", dbPath)
	logger.Info("cameras", "camera1", cfg.Camera1ID, "camera2", cfg.Camera2ID)

	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
