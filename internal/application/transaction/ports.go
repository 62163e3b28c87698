package transaction

import (
	"context"

	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// mutación del libro mayor: validación de stock, escritura de la venta y
// alerta de stock bajo viajan juntas o no viaja nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		articleRepo repository.ArticleRepository,
		variationRepo repository.VariationRepository,
		txRepo repository.TransactionRepository,
		notifRepo repository.NotificationRepository,
		settingRepo repository.SettingRepository,
	) error) error
}
