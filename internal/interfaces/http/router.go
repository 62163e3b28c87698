package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestockhq/gestock-api/internal/application/analytics"
	"github.com/gestockhq/gestock-api/internal/application/auth"
	"github.com/gestockhq/gestock-api/internal/application/equity"
	"github.com/gestockhq/gestock-api/internal/application/transaction"
	"github.com/gestockhq/gestock-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	UserUC         *usecase.UserUseCase
	SettingUC      *usecase.SettingUseCase
	ArticleUC      *usecase.ArticleUseCase
	VariationUC    *usecase.VariationUseCase
	TransactionUC  *transaction.UseCase
	CollaboratorUC *equity.UseCase
	AnalyticsUC    *analytics.UseCase
	NotificationUC *usecase.NotificationUseCase
	MaintenanceUC  *usecase.MaintenanceUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Perfil y preferencias
	userHandler := NewUserHandler(deps.UserUC, deps.SettingUC)
	user := protected.Group("/user")
	user.Get("/", userHandler.Me)
	user.Put("/profile", userHandler.UpdateProfile)
	user.Put("/password", userHandler.UpdatePassword)
	user.Get("/settings", userHandler.GetSettings)
	user.Put("/settings", userHandler.UpdateSettings)

	// Artículos
	articles := protected.Group("/articles")
	articleHandler := NewArticleHandler(deps.ArticleUC)
	articles.Get("/", articleHandler.List)
	articles.Post("/", articleHandler.Create)
	articles.Get("/:id", articleHandler.Get)
	articles.Put("/:id", articleHandler.Update)
	articles.Delete("/:id", articleHandler.Delete)

	// Variaciones
	variations := protected.Group("/variations")
	variationHandler := NewVariationHandler(deps.VariationUC)
	variations.Get("/", variationHandler.List)
	variations.Post("/", variationHandler.Create)
	variations.Get("/:id", variationHandler.Get)
	variations.Put("/:id", variationHandler.Update)
	variations.Delete("/:id", variationHandler.Delete)

	// Libro mayor
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	transactions.Get("/", transactionHandler.List)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/:id", transactionHandler.Get)
	transactions.Put("/:id", transactionHandler.Update)
	transactions.Delete("/:id", transactionHandler.Delete)

	// Colaboradores
	collaborators := protected.Group("/collaborators")
	collaboratorHandler := NewCollaboratorHandler(deps.CollaboratorUC)
	collaborators.Get("/", collaboratorHandler.List)
	collaborators.Post("/", collaboratorHandler.Create)
	collaborators.Get("/:id", collaboratorHandler.Get)
	collaborators.Put("/:id", collaboratorHandler.Update)
	collaborators.Delete("/:id", collaboratorHandler.Delete)

	// Analítica
	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup.Get("/overview", analyticsHandler.Overview)
	analyticsGroup.Get("/trends", analyticsHandler.Trends)
	analyticsGroup.Get("/comparisons", analyticsHandler.Comparisons)
	analyticsGroup.Get("/kpis", analyticsHandler.KPIs)
	analyticsGroup.Get("/category-analysis", analyticsHandler.Categories)
	analyticsGroup.Get("/transactions", analyticsHandler.Transactions)
	analyticsGroup.Get("/predictions", analyticsHandler.Predictions)

	// Notificaciones
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/:id", notificationHandler.Delete)

	// Mantenimiento
	maintenance := protected.Group("/maintenance")
	maintenanceHandler := NewMaintenanceHandler(deps.MaintenanceUC)
	maintenance.Post("/fix-negative-stock", maintenanceHandler.FixNegativeStock)
}
