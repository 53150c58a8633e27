package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/campus-union/cms-service/internal/api/http"
	"github.com/campus-union/cms-service/internal/api/http/handlers"
	"github.com/campus-union/cms-service/internal/auth"
	"github.com/campus-union/cms-service/internal/cache"
	"github.com/campus-union/cms-service/internal/config"
	"github.com/campus-union/cms-service/internal/events"
	"github.com/campus-union/cms-service/internal/mail"
	"github.com/campus-union/cms-service/internal/observability"
	"github.com/campus-union/cms-service/internal/persistence"
	"github.com/campus-union/cms-service/internal/repository"
	"github.com/campus-union/cms-service/internal/service"
	"github.com/campus-union/cms-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	newsRepo := repository.NewNewsRepository(pool)
	leaderRepo := repository.NewLeadershipRepository(pool)
	galleryRepo := repository.NewGalleryRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	registrationRepo := repository.NewRegistrationRepository(pool)
	subscriberRepo := repository.NewSubscriberRepository(pool)

	tokens, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}
	resolver := auth.NewResolver(tokens, userRepo, adminRepo, logger)
	authMiddleware := auth.NewMiddleware(resolver)

	store := storage.NewMemoryStore(cfg.Storage.PublicBaseURL)
	contentCache := cache.NewCache(redis.Client, cfg.Cache.TTL())

	mailer := mail.NewEnqueuer(persistence.AsynqRedisOpt(cfg.Redis))
	defer mailer.Close() //nolint:errcheck

	dispatcher := events.NewInMemoryDispatcher()
	notifier := service.NewNotifier(service.NotifierDependencies{
		Dispatcher:     dispatcher,
		UserRepo:       userRepo,
		SubscriberRepo: subscriberRepo,
		Mailer:         mailer,
		Logger:         logger,
	})
	notifier.RegisterHandlers()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:  userRepo,
		AdminRepo: adminRepo,
		Tokens:    tokens,
		Logger:    logger,
	})
	roleService := service.NewRoleService(roleRepo)
	adminService := service.NewAdminService(adminRepo, roleRepo, cfg.Auth.BcryptCost)
	newsService := service.NewNewsService(service.NewsDependencies{
		NewsRepo:   newsRepo,
		Store:      store,
		Dispatcher: dispatcher,
		Cache:      contentCache,
		Logger:     logger,
	})
	leadershipService := service.NewLeadershipService(service.LeadershipDependencies{
		LeaderRepo: leaderRepo,
		Store:      store,
		Cache:      contentCache,
		Logger:     logger,
	})
	galleryService := service.NewGalleryService(service.GalleryDependencies{
		GalleryRepo: galleryRepo,
		Store:       store,
		Cache:       contentCache,
		Logger:      logger,
	})
	eventService := service.NewEventService(service.EventDependencies{
		EventRepo:        eventRepo,
		RegistrationRepo: registrationRepo,
		Dispatcher:       dispatcher,
		Store:            store,
		Cache:            contentCache,
		Logger:           logger,
	})
	subscriberService := service.NewSubscriberService(subscriberRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{BodyLimit: 16 << 20})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Roles:          handlers.NewRolesHandler(roleService),
		Admins:         handlers.NewAdminsHandler(adminService),
		News:           handlers.NewNewsHandler(newsService),
		Leadership:     handlers.NewLeadershipHandler(leadershipService),
		Gallery:        handlers.NewGalleryHandler(galleryService),
		Events:         handlers.NewEventsHandler(eventService),
		Subscribers:    handlers.NewSubscribersHandler(subscriberService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
