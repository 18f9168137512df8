package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/negligencias/site-server/internal/config"
	"github.com/negligencias/site-server/internal/database"
	"github.com/negligencias/site-server/internal/mail"
	"github.com/negligencias/site-server/internal/middleware"
	"github.com/negligencias/site-server/internal/redis"
	"github.com/negligencias/site-server/internal/render"
	"github.com/negligencias/site-server/internal/repository"
	"github.com/negligencias/site-server/internal/router"
	"github.com/negligencias/site-server/internal/service"
	"github.com/negligencias/site-server/internal/site"
	"github.com/negligencias/site-server/internal/translate"
	"github.com/negligencias/site-server/internal/util"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setupLogging(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	siteCfg, err := site.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load site config")
	}

	renderer, err := render.New(siteCfg, cfg.PublicSiteURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse templates")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	log.Info().Msg("database connected")

	if cfg.AutoMigrate {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	var limiter middleware.Limiter = middleware.NewMemoryLimiter()
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(context.Background(), cfg.RedisURL, cfg.UpstreamTimeout())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		limiter = middleware.NewRedisLimiter(redisClient.Client, cfg.UpstreamTimeout())
		log.Info().Msg("redis connected")
	}

	adminUserRepo := repository.NewAdminUserRepository(db.DB)
	statsRepo := repository.NewStatsRepository(db.DB)
	postRepo := repository.NewPostRepository(db.DB)
	newsRepo := repository.NewNewsRepository(db.DB)
	caseRepo := repository.NewSuccessCaseRepository(db.DB)
	hospitalRepo := repository.NewHospitalRepository(db.DB)
	categoryRepo := repository.NewCategoryRepository(db.DB)
	contactRepo := repository.NewContactRepository(db.DB)

	var notifier service.ContactNotifier
	if cfg.MailEnabled() {
		notifier = mail.New(mail.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			Staff:    cfg.StaffEmail,
			SiteName: siteCfg.Name,
			SiteURL:  cfg.PublicSiteURL(),
			Timeout:  cfg.UpstreamTimeout(),
		})
	} else {
		log.Info().Msg("SMTP_HOST not set, contact emails disabled")
	}

	var cipher service.Cipher
	if cfg.EncryptionKey != "" {
		enc, err := util.NewEncryptor(cfg.EncryptionKey)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid ENCRYPTION_KEY")
		}
		cipher = enc
	}

	postService := service.NewPostService(db, postRepo, categoryRepo)
	newsService := service.NewNewsService(db, newsRepo)
	caseService := service.NewSuccessCaseService(db, caseRepo, hospitalRepo)

	var translator service.Translator
	if cfg.TranslationEnabled() {
		translator = translate.New(cfg.TranslateAPIURL, cfg.TranslateAPIKey, cfg.TranslateModel, cfg.UpstreamTimeout())
	}

	handler := router.New(router.Deps{
		Config:      cfg,
		Site:        siteCfg,
		Renderer:    renderer,
		DB:          db,
		Limiter:     limiter,
		Sessions:    service.NewSessionManager(adminUserRepo, cfg.SessionSecret),
		Admin:       service.NewAdminService(statsRepo),
		Posts:       postService,
		News:        newsService,
		Cases:       caseService,
		Hospitals:   service.NewHospitalService(hospitalRepo),
		Categories:  service.NewCategoryService(categoryRepo),
		Contacts:    service.NewContactService(contactRepo, notifier, cipher),
		Translation: service.NewTranslationService(translator, postService, newsService, caseService),
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// setupLogging writes JSON in production and a console format elsewhere.
func setupLogging(cfg *config.Config) {
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	setLogLevel(cfg.LogLevel)
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
