package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/studypay-service/internal/api/http"
	"github.com/spec-kit/studypay-service/internal/api/http/handlers"
	"github.com/spec-kit/studypay-service/internal/auth"
	"github.com/spec-kit/studypay-service/internal/bot"
	"github.com/spec-kit/studypay-service/internal/config"
	"github.com/spec-kit/studypay-service/internal/events"
	"github.com/spec-kit/studypay-service/internal/observability"
	"github.com/spec-kit/studypay-service/internal/persistence"
	"github.com/spec-kit/studypay-service/internal/repository"
	"github.com/spec-kit/studypay-service/internal/service"
	"github.com/spec-kit/studypay-service/internal/worker"
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

	rds := persistence.NewRedis(cfg.Redis, logger)
	defer rds.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	chatLinkRepo := repository.NewChatLinkRepository(pool, rds.Client)
	codeRepo := repository.NewVerificationCodeRepository(rds.Client)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.ResetTokenTTLMinutes)
	authService := service.NewAuthService(userRepo, tokens, cfg.Auth.BcryptCost)
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:    orderRepo,
		UserRepo:     userRepo,
		CategoryRepo: categoryRepo,
		Dispatcher:   dispatcher,
	})
	catalogService := service.NewCatalogService(categoryRepo)
	userService := service.NewUserService(userRepo)
	aiService := service.NewAIService(userRepo, cfg.AI, logger)

	var messenger service.Messenger
	if cfg.Telegram.Enabled && cfg.Telegram.Token != "" {
		tgBot, err := bot.New(cfg.Telegram.Token, chatLinkRepo, authService, logger, cfg.Auth.PasswordResetLinkBase)
		if err != nil {
			logger.Fatal("failed to init telegram bot", zap.Error(err))
		}
		go tgBot.Run(ctx)
		messenger = tgBot
	} else {
		logger.Warn("telegram bot disabled, verification codes and notifications will not be delivered")
	}

	verificationService := service.NewVerificationService(userRepo, codeRepo, chatLinkRepo, messenger, cfg.Auth.VerifyCodeTTLMinutes)
	notificationService := service.NewNotificationService(messenger, logger)
	worker.StartNotificationWorker(notificationService, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(tokens, userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, rds),
		Users:          handlers.NewUsersHandler(authService, verificationService),
		Admin:          handlers.NewAdminHandler(authService),
		Orders:         handlers.NewOrdersHandler(orderService),
		AdminOrders:    handlers.NewAdminOrdersHandler(orderService),
		Owner:          handlers.NewOwnerHandler(userService, orderService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		AI:             handlers.NewAIHandler(aiService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
