package main

import (
	"context"

	"github.com/gestockhq/gestock-api/internal/application/usecase"
	"github.com/gestockhq/gestock-api/internal/infrastructure/postgres"
	"github.com/gestockhq/gestock-api/pkg/config"
	"github.com/gestockhq/gestock-api/pkg/logger"
)

// Tarea de mantenimiento: recorre todos los artículos y sube la cantidad de
// los sobrevendidos hasta lo vendido, dejando el restante en cero.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App)

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	articleRepo := postgres.NewArticleRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	uc := usecase.NewMaintenanceUseCase(articleRepo, transactionRepo)

	corrections, err := uc.FixNegativeStockAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("corrección de stocks negativos")
	}

	for _, c := range corrections {
		log.Info().
			Str("article_id", c.ArticleID).
			Str("article", c.ArticleName).
			Int64("old_quantity", c.OldQuantity).
			Int64("sold_quantity", c.SoldQuantity).
			Int64("new_quantity", c.NewQuantity).
			Msg("stock corregido")
	}
	log.Info().Int("corrected", len(corrections)).Msg("corrección terminada")
}
