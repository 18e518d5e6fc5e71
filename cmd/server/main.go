package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"

	"github.com/kotche/smartnotes/infrastructure/tracing"
	"github.com/kotche/smartnotes/internal/app/reminder"
	"github.com/kotche/smartnotes/internal/app/server"
	"github.com/kotche/smartnotes/internal/auth"
	"github.com/kotche/smartnotes/internal/config"
	"github.com/kotche/smartnotes/internal/metrics"
	notesRepo "github.com/kotche/smartnotes/internal/repository/notes"
	sharesRepo "github.com/kotche/smartnotes/internal/repository/shares"
	usersRepo "github.com/kotche/smartnotes/internal/repository/users"
	"github.com/kotche/smartnotes/internal/service/events"
	"github.com/kotche/smartnotes/internal/service/mail"
	notesServ "github.com/kotche/smartnotes/internal/service/notes"
	sharesServ "github.com/kotche/smartnotes/internal/service/shares"
	"github.com/kotche/smartnotes/internal/service/storage"
	usersServ "github.com/kotche/smartnotes/internal/service/users"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	metrics.Init()
	metrics.StartMetricsServer(cfg.MetricsConfig.Address)

	connStr := cfg.PostgresConfig.DSN()
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err = runMigrations(connStr); err != nil {
		logger.Fatal().Err(err).Msg("migration error")
	}

	if cfg.TracingConfig.Enabled {
		_, cleanup, err := tracing.InitTracing(cfg.TracingConfig.Endpoint, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init tracing")
		}
		defer cleanup()
	}

	notesRepository := notesRepo.NewDefaultRepository(db)
	usersRepository := usersRepo.NewDefaultRepository(db)
	sharesRepository := sharesRepo.NewDefaultRepository(db)

	sender := mail.NewSMTPSender(cfg.SMTPConfig, logger)
	tokens := auth.NewTokenManager(cfg.AuthConfig.JWTSecret, cfg.AuthConfig.TokenTTL)

	notesService := notesServ.NewDefaultService(notesRepository)
	usersService := usersServ.NewDefaultService(usersRepository, tokens, sender, logger)
	sharesService := sharesServ.NewDefaultService(sharesRepository, notesRepository, usersRepository)

	uploader, uploadsDir, err := buildUploader(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init upload storage")
	}

	var publisher events.Publisher
	if cfg.KafkaConfig.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.KafkaConfig.Brokers, cfg.KafkaConfig.Topic)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize kafka")
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup
	if cfg.ReminderConfig.Enabled && cfg.SMTPConfigured() {
		scanner := reminder.New(notesService, sender, publisher, cfg.ReminderConfig.Interval, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			scanner.Run(ctx)
		}()
	} else {
		logger.Warn().Msg("reminder scanner disabled: delivery is off or smtp is not configured")
	}

	app := server.New(notesService, usersService, sharesService, uploader, tokens,
		logger, uploadsDir, cfg.ServerConfig.BaseURL)

	srv := &http.Server{
		Addr:         cfg.ServerConfig.Address,
		Handler:      app.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.ServerConfig.Address).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}

	// The scanner exits at its next cancellation point; an in-flight
	// delivery finishes its commit first.
	wg.Wait()
	logger.Info().Msg("stopped")
}

func buildUploader(cfg *config.Config) (storage.Uploader, string, error) {
	if cfg.S3Config.Enabled {
		uploader, err := storage.NewS3Uploader(context.Background(), cfg.S3Config)
		if err != nil {
			return nil, "", err
		}
		return uploader, "", nil
	}

	uploader, err := storage.NewDiskUploader(cfg.UploadConfig.Dir)
	if err != nil {
		return nil, "", err
	}
	return uploader, cfg.UploadConfig.Dir, nil
}

func runMigrations(dbURL string) error {
	m, err := migrate.New(
		"file://migrations",
		dbURL,
	)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}

	if err = m.Up(); !errors.Is(err, migrate.ErrNoChange) && err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
