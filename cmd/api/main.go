// Command api runs the placement portal HTTP API.
//
//	@title						Placement Portal API
//	@version					1.0
//	@description				Student, recruiter and placement-office backend of the placement portal.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token obtained from /login or /tpo/login.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/placementpathway/portal-api/docs"
	"github.com/placementpathway/portal-api/internal/api"
	"github.com/placementpathway/portal-api/internal/core/ports"
	"github.com/placementpathway/portal-api/internal/core/service"
	"github.com/placementpathway/portal-api/internal/infrastructure/config"
	mongodb "github.com/placementpathway/portal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/placementpathway/portal-api/internal/infrastructure/db/redis"
	httpserver "github.com/placementpathway/portal-api/internal/infrastructure/http"
	"github.com/placementpathway/portal-api/internal/infrastructure/mail"
	"github.com/placementpathway/portal-api/internal/infrastructure/queue"
	"github.com/placementpathway/portal-api/internal/infrastructure/storage"
	"github.com/placementpathway/portal-api/pkg/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const mailDrainTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		// Init is a no-op once run has configured the logger.
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("api stopped")
	}
}

func run() error {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "portal-api",
		Version: version,
	})

	docs.SwaggerInfo.Version = version

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, Password: cfg.Redis.Password})
	if err != nil {
		return err
	}
	defer rdb.Close()

	students := mongodb.NewStudentRepository(db)
	companies := mongodb.NewCompanyRepository(db)
	tpos := mongodb.NewTPORepository(db)
	opportunities := mongodb.NewOpportunityRepository(db)
	applications := mongodb.NewApplicationRepository(db)

	// --- Collaborators ---
	mailer, err := newMailer(cfg, log)
	if err != nil {
		return err
	}
	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, mailer, log)
	dispatcher.Start()

	assets, err := newAssetStore(cfg, log)
	if err != nil {
		return err
	}

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(students, companies, tpos, tokens, log)
	studentService := service.NewStudentService(students, assets, log)
	opportunityService := service.NewOpportunityService(opportunities, companies, students, log)
	applicationService := service.NewApplicationService(applications, opportunities, students, companies, dispatcher, log)
	tpoService := service.NewTPOService(students, companies, opportunities, dispatcher, log)

	// --- HTTP ---
	ipExtractor, err := httpserver.NewIPExtractor(cfg.HTTP.TrustedProxies)
	if err != nil {
		return err
	}
	e := httpserver.NewRouter(db, rdb, log, version, ipExtractor)
	api.RegisterRoutes(e, api.Deps{
		Auth:           authService,
		Students:       studentService,
		Opportunities:  opportunityService,
		Applications:   applicationService,
		TPO:            tpoService,
		Tokens:         tokens,
		Limiter:        redisdb.NewRateLimiter(rdb),
		AuthRateLimit:  cfg.RateLimit.Requests,
		AuthRateWindow: cfg.RateLimit.Window,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Log:            log,
	})

	log.Info().Str("env", cfg.Env).Str("version", version).Msg("starting placement portal api")
	serveErr := httpserver.Serve(ctx, e, ":"+cfg.Port, log)

	// In-flight requests have finished by now, so every email they queued is
	// in the dispatcher before it stops accepting more.
	stop()
	drainCtx, cancelDrain := context.WithTimeout(context.Background(), mailDrainTimeout)
	defer cancelDrain()
	if err := dispatcher.Stop(drainCtx); err != nil {
		log.Warn().Err(err).Msg("mail queue not fully drained")
	}
	log.Info().Msg("shutdown complete")

	return serveErr
}

func newMailer(cfg *config.Config, log zerolog.Logger) (ports.Mailer, error) {
	if !cfg.SMTP.Enabled() {
		log.Warn().Msg("SMTP_HOST not set, outbound email will only be logged")
		return mail.NewLogMailer(log), nil
	}
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
}

func newAssetStore(cfg *config.Config, log zerolog.Logger) (ports.AssetStore, error) {
	store, err := storage.NewCloudinaryStore(storage.CloudinaryConfig{
		URL:       cfg.Cloudinary.URL,
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		Folder:    cfg.Cloudinary.Folder,
	})
	switch {
	case errors.Is(err, storage.ErrNotConfigured) && !cfg.IsProduction():
		log.Warn().Msg("cloudinary not configured, resume uploads are disabled")
		return storage.UnavailableStore{}, nil
	case err != nil:
		return nil, err
	}
	return store, nil
}
