package main

import (
	"context"
	"io"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/backup"
	"github.com/spendwise/backend/internal/coach"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/router"
	"github.com/spendwise/backend/internal/worker"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		apiURL = "http://localhost:8080"
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Str("API_URL", apiURL).Msg("API_URL is not a valid URL")
	}

	// Create data directory
	dataDir := filepath.Join(".", "data")
	err = os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database
	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		dsn = filepath.Join(dataDir, "spendwise.db")
	}

	err = models.Connect(dsn)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services := router.Services{}

	// The worker materializes due recurring expenses once per day
	interval := time.Duration(0)
	if raw, ok := os.LookupEnv("SWEEP_INTERVAL"); ok {
		interval, err = time.ParseDuration(raw)
		if err != nil {
			log.Fatal().Str("SWEEP_INTERVAL", raw).Msg("SWEEP_INTERVAL is not a valid duration")
		}
	}
	services.Worker = worker.New(nil, worker.LogNotifier{}, interval)
	go services.Worker.Run(ctx)

	// The financial coach needs a Gemini API key
	if _, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
		services.Coach, err = coach.New(ctx, nil)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
	} else {
		log.Info().Msg("GEMINI_API_KEY is not set, the financial coach is disabled")
	}

	// Backups go to a Google Cloud Storage bucket
	if bucket, ok := os.LookupEnv("BACKUP_BUCKET"); ok {
		services.Backup = backup.NewService(dsn, backup.GCSStore{Bucket: bucket})
	} else {
		log.Info().Msg("BACKUP_BUCKET is not set, backups are disabled")
	}

	r, teardown, err := router.Config(baseURL)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(r.Group("/"), services)

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
