package repository

import (
	"context"

	"github.com/gestockhq/gestock-api/internal/domain/entity"
)

// ArticleRepository define el puerto de persistencia para Article (DIP).
// Los Get* devuelven (nil, nil) cuando la fila no existe.
// GetByIDForUpdate bloquea la fila del artículo dentro de la transacción en
// curso; el motor de transacciones lo usa para cerrar la ventana de carrera
// entre la validación de stock y la escritura de la venta.
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Article, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Article, error)
	ListAll(ctx context.Context) ([]*entity.Article, error)
	Update(ctx context.Context, article *entity.Article) error
	UpdateQuantity(ctx context.Context, id string, quantity int64) error
	Delete(ctx context.Context, id string) error
}

// VariationRepository define el puerto de persistencia para Variation.
// GetByArticleAndName admite excludeID para la verificación de unicidad del
// nombre al editar; SumQuantityByArticle admite excludeID para validar el
// invariante Σ variaciones ≤ artículo excluyendo la variación en edición.
type VariationRepository interface {
	Create(ctx context.Context, variation *entity.Variation) error
	GetByID(ctx context.Context, id string) (*entity.Variation, error)
	ListByArticle(ctx context.Context, articleID string) ([]*entity.Variation, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Variation, error)
	GetByArticleAndName(ctx context.Context, articleID, name, excludeID string) (*entity.Variation, error)
	SumQuantityByArticle(ctx context.Context, articleID, excludeID string) (int64, error)
	Update(ctx context.Context, variation *entity.Variation) error
	Delete(ctx context.Context, id string) error
}
