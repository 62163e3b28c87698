package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gestockhq/gestock-api/internal/application/analytics"
	"github.com/gestockhq/gestock-api/internal/application/auth"
	"github.com/gestockhq/gestock-api/internal/application/equity"
	"github.com/gestockhq/gestock-api/internal/application/transaction"
	"github.com/gestockhq/gestock-api/internal/application/usecase"
	"github.com/gestockhq/gestock-api/internal/infrastructure/postgres"
	apphttp "github.com/gestockhq/gestock-api/internal/interfaces/http"
	"github.com/gestockhq/gestock-api/pkg/config"
	"github.com/gestockhq/gestock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App)
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	articleRepo := postgres.NewArticleRepository(pool)
	variationRepo := postgres.NewVariationRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	collaboratorRepo := postgres.NewCollaboratorRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, settingRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, settingRepo, analyticsRepo)
	settingUC := usecase.NewSettingUseCase(settingRepo)
	articleUC := usecase.NewArticleUseCase(articleRepo, transactionRepo, settingRepo)
	variationUC := usecase.NewVariationUseCase(variationRepo, articleRepo, transactionRepo, settingRepo)
	transactionUC := transaction.NewUseCase(txRunner, transactionRepo, articleRepo, settingRepo)
	collaboratorUC := equity.NewUseCase(txRunner, userRepo, collaboratorRepo, analyticsRepo)
	analyticsUC := analytics.NewUseCase(analyticsRepo, transactionRepo, articleRepo, settingRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	maintenanceUC := usecase.NewMaintenanceUseCase(articleRepo, transactionRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	apphttp.InitMetrics()
	app.Use(apphttp.MetricsMiddleware())
	app.Get("/metrics", apphttp.MetricsHandler())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GeStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		SettingUC:      settingUC,
		ArticleUC:      articleUC,
		VariationUC:    variationUC,
		TransactionUC:  transactionUC,
		CollaboratorUC: collaboratorUC,
		AnalyticsUC:    analyticsUC,
		NotificationUC: notificationUC,
		MaintenanceUC:  maintenanceUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
