package repository

import (
	"context"
	"time"

	"github.com/gestockhq/gestock-api/internal/domain/entity"
)

// TransactionFilter criterios del listado de transacciones (reporte analítico).
type TransactionFilter struct {
	Type   string // sale, expense o vacío para todas
	Search string // busca en el nombre de la transacción y del artículo
	Start  time.Time
	End    time.Time
	Limit  int
	Offset int
}

// TransactionRepository define el puerto de persistencia para el libro mayor.
// Las sumas SoldQuantityBy* se recomputan en vivo desde las filas de venta;
// excludeID permite reconstruir el "resto vendido" al editar una venta
// (total vendido del objetivo excluyendo la transacción en edición).
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error)
	List(ctx context.Context, userID string, filter TransactionFilter) ([]*entity.Transaction, int64, error)
	Update(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, id string) error

	SoldQuantityByArticle(ctx context.Context, articleID, excludeID string) (int64, error)
	SoldQuantityByVariation(ctx context.Context, variationID, excludeID string) (int64, error)
	SoldQuantitiesByArticle(ctx context.Context, userID string) (map[string]int64, error)
	SoldQuantitiesByVariation(ctx context.Context, userID string) (map[string]int64, error)
}
