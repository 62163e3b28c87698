package usecase

import (
	"context"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
	"github.com/gestockhq/gestock-api/internal/domain/stock"
)

// MaintenanceUseCase tareas de reconciliación del operador. Un artículo cuya
// cantidad declarada quedó por debajo de lo ya vendido (restante negativo) se
// corrige fijando la cantidad en lo vendido, de modo que el restante vuelve a
// cero sin tocar el histórico de transacciones.
type MaintenanceUseCase struct {
	articleRepo repository.ArticleRepository
	txRepo      repository.TransactionRepository
}

// NewMaintenanceUseCase construye el caso de uso de mantenimiento.
func NewMaintenanceUseCase(articleRepo repository.ArticleRepository, txRepo repository.TransactionRepository) *MaintenanceUseCase {
	return &MaintenanceUseCase{articleRepo: articleRepo, txRepo: txRepo}
}

// FixNegativeStockForUser corrige los artículos sobrevendidos del usuario y
// devuelve la lista de correcciones aplicadas.
func (uc *MaintenanceUseCase) FixNegativeStockForUser(ctx context.Context, userID string) ([]dto.StockCorrectionDTO, error) {
	articles, err := uc.articleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.fix(ctx, articles)
}

// FixNegativeStockAll corrige los artículos sobrevendidos de todos los
// usuarios (variante CLI del operador).
func (uc *MaintenanceUseCase) FixNegativeStockAll(ctx context.Context) ([]dto.StockCorrectionDTO, error) {
	articles, err := uc.articleRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return uc.fix(ctx, articles)
}

func (uc *MaintenanceUseCase) fix(ctx context.Context, articles []*entity.Article) ([]dto.StockCorrectionDTO, error) {
	corrections := make([]dto.StockCorrectionDTO, 0)
	for _, a := range articles {
		sold, err := uc.txRepo.SoldQuantityByArticle(ctx, a.ID, "")
		if err != nil {
			return nil, err
		}
		old := a.Quantity
		if stock.Remaining(old, sold) >= 0 {
			continue
		}
		if err := uc.articleRepo.UpdateQuantity(ctx, a.ID, sold); err != nil {
			return nil, err
		}
		corrections = append(corrections, dto.StockCorrectionDTO{
			ArticleID:    a.ID,
			ArticleName:  a.Name,
			OldQuantity:  old,
			SoldQuantity: sold,
			NewQuantity:  sold,
		})
	}
	return corrections, nil
}
