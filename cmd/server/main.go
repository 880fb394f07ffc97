package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wordscramble/internal/config"
	"wordscramble/internal/database"
	"wordscramble/internal/handlers"
	"wordscramble/internal/repository"
	"wordscramble/internal/security"
	"wordscramble/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()
	log.Info().Str("type", cfg.DatabaseType).Msg("database connection established")

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Repositories
	wordRepo := repository.NewWordRepository(db)
	playRepo := repository.NewPlayRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	if err := applyConfiguredSettings(cfg, settingsRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to apply configured settings")
	}

	// Services
	audioService := service.NewAudioService(filepath.Join(cfg.StaticFilesPath, "audio"))
	imageService := service.NewImageService(filepath.Join(cfg.StaticFilesPath, "images"))
	bankService := service.NewBankService(wordRepo, audioService)
	reportService, err := service.NewReportService(context.Background(),
		cfg.AWSRegion, cfg.FromEmail, cfg.FromName, cfg.ParentEmail, cfg.AppBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize report service")
	}
	playService := service.NewPlayService(playRepo, bankService, settingsRepo, reportService)

	if err := bankService.SeedDefaults(); err != nil {
		log.Warn().Err(err).Msg("failed to seed default words")
	}

	// Handlers
	secret := []byte(cfg.SessionSecret)
	limiter := security.NewRateLimiter(30, time.Minute)
	middleware := handlers.NewMiddleware(secret, limiter)
	playHandler := handlers.NewPlayHandler(playService, imageService, audioService, secret)
	bankHandler := handlers.NewBankHandler(bankService, audioService, settingsRepo)

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Player routes
	mux.HandleFunc("POST /play/start", playHandler.Start)
	mux.HandleFunc("GET /play/state", middleware.RequirePlayer(playHandler.State))
	mux.HandleFunc("POST /play/place", middleware.RequirePlayer(playHandler.Place))
	mux.HandleFunc("POST /play/remove", middleware.RequirePlayer(playHandler.Remove))
	mux.HandleFunc("POST /play/hint", middleware.RequirePlayer(playHandler.Hint))
	mux.HandleFunc("POST /play/check", middleware.RequirePlayer(playHandler.Check))
	mux.HandleFunc("POST /play/next", middleware.RequirePlayer(playHandler.Next))
	mux.HandleFunc("POST /play/exit", middleware.RequirePlayer(playHandler.Exit))
	mux.HandleFunc("GET /play/results", middleware.RequirePlayer(playHandler.Results))

	// Parent bank management
	mux.HandleFunc("GET /bank/words", bankHandler.RequirePasscode(bankHandler.ListWords))
	mux.HandleFunc("POST /bank/words/add", middleware.RateLimit(bankHandler.RequirePasscode(bankHandler.AddWord)))
	mux.HandleFunc("POST /bank/words/{id}/delete", middleware.RateLimit(bankHandler.RequirePasscode(bankHandler.DeleteWord)))
	mux.HandleFunc("POST /bank/words/replace", middleware.RateLimit(bankHandler.RequirePasscode(bankHandler.ReplaceWords)))

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

// applyConfiguredSettings seeds the settings table from the environment
// on first run. Stored values win on later starts so edits made through
// the settings table survive restarts.
func applyConfiguredSettings(cfg *config.Config, settings *repository.SettingsRepository) error {
	if _, ok, err := settings.GetSetting(repository.SettingFullAward); err != nil {
		return err
	} else if !ok {
		if err := settings.SetScoringAwards(cfg.FullAward, cfg.HintAward); err != nil {
			return err
		}
		log.Info().Int("full", cfg.FullAward).Int("hint", cfg.HintAward).Msg("scoring awards configured")
	}

	if cfg.BankPasscode == "" {
		return nil
	}
	if _, ok, err := settings.GetSetting(repository.SettingPasscodeHash); err != nil {
		return err
	} else if ok {
		return nil
	}
	hash, err := security.HashPasscode(cfg.BankPasscode)
	if err != nil {
		return err
	}
	if err := settings.SetPasscodeHash(hash); err != nil {
		return err
	}
	log.Info().Msg("bank passcode configured")
	return nil
}
