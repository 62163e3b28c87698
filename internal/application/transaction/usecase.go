package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/application/lowstock"
	"github.com/gestockhq/gestock-api/internal/domain"
	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
	"github.com/gestockhq/gestock-api/internal/domain/stock"
)

// UseCase motor de mutación del libro mayor: alta, edición y borrado de
// ventas y gastos. Cada operación corre en una sola transacción de BD con la
// fila del artículo bloqueada (SELECT FOR UPDATE), cerrando la carrera entre
// la validación de stock y la escritura.
type UseCase struct {
	txRunner    TxRunner
	txRepo      repository.TransactionRepository
	articleRepo repository.ArticleRepository
	settingRepo repository.SettingRepository
}

// NewUseCase construye el motor de transacciones.
func NewUseCase(txRunner TxRunner, txRepo repository.TransactionRepository, articleRepo repository.ArticleRepository, settingRepo repository.SettingRepository) *UseCase {
	return &UseCase{txRunner: txRunner, txRepo: txRepo, articleRepo: articleRepo, settingRepo: settingRepo}
}

// InsufficientStockError envuelve ErrInsufficientStock con la cantidad
// realmente disponible, para que la respuesta pueda informarla.
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: cantidad disponible %d", domain.ErrInsufficientStock.Error(), e.Available)
}

// Unwrap permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return domain.ErrInsufficientStock }

// saleName genera el nombre automático de una venta, en francés como todas
// las cadenas de producto.
func saleName(quantity int64, articleName, variationName string) string {
	if variationName != "" {
		return fmt.Sprintf("Vente de %d %s %s", quantity, articleName, variationName)
	}
	return fmt.Sprintf("Vente de %d %s", quantity, articleName)
}

// Create registra una venta o un gasto.
//
// Ventas: el artículo debe existir y pertenecer al llamador; un artículo
// variable exige variación (y que sea suya), uno simple la prohíbe. Dentro de
// la tx se bloquea la fila del artículo, se recomputa lo vendido y se rechaza
// con InsufficientStockError si la cantidad supera lo restante. El precio se
// captura en la línea (override de la petición o precio actual del artículo)
// y amount = precio × cantidad. El nombre se genera automáticamente y la
// política de stock bajo se evalúa antes del commit.
//
// Gastos: nombre y monto obligatorios; artículo, variación y cantidad se
// fuerzan a nulo.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	switch in.Type {
	case entity.TransactionTypeSale:
		return uc.createSale(ctx, userID, in)
	case entity.TransactionTypeExpense:
		return uc.createExpense(ctx, userID, in)
	default:
		return nil, domain.ErrInvalidInput
	}
}

func (uc *UseCase) createExpense(ctx context.Context, userID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if in.Name == "" || in.Amount == nil || in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	tx := &entity.Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Name,
		Amount:    *in.Amount,
		Type:      entity.TransactionTypeExpense,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	resp := dto.NewTransactionResponse(tx)
	return &resp, nil
}

func (uc *UseCase) createSale(ctx context.Context, userID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if in.ArticleID == "" || in.Quantity == nil || *in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	if in.SalePrice != nil && in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	quantity := *in.Quantity
	now := time.Now()

	var created *entity.Transaction
	err := uc.txRunner.Run(ctx, func(
		articleRepo repository.ArticleRepository,
		variationRepo repository.VariationRepository,
		txRepo repository.TransactionRepository,
		notifRepo repository.NotificationRepository,
		settingRepo repository.SettingRepository,
	) error {
		article, err := articleRepo.GetByIDForUpdate(ctx, in.ArticleID)
		if err != nil {
			return err
		}
		if article == nil || article.UserID != userID {
			return domain.ErrNotFound
		}

		var variation *entity.Variation
		switch article.Type {
		case entity.ArticleTypeVariable:
			if in.VariationID == "" {
				return domain.ErrInvalidInput
			}
			variation, err = variationRepo.GetByID(ctx, in.VariationID)
			if err != nil {
				return err
			}
			if variation == nil || variation.ArticleID != article.ID {
				return domain.ErrNotFound
			}
		default:
			if in.VariationID != "" {
				return domain.ErrInvalidInput
			}
		}

		// Lo restante se valida contra el objetivo real del stock: la
		// variación para artículos variables, el artículo para simples.
		if variation != nil {
			sold, err := txRepo.SoldQuantityByVariation(ctx, variation.ID, "")
			if err != nil {
				return err
			}
			if remaining := stock.Remaining(variation.Quantity, sold); quantity > remaining {
				return &InsufficientStockError{Available: remaining}
			}
		} else {
			sold, err := txRepo.SoldQuantityByArticle(ctx, article.ID, "")
			if err != nil {
				return err
			}
			if remaining := stock.Remaining(article.Quantity, sold); quantity > remaining {
				return &InsufficientStockError{Available: remaining}
			}
		}

		price := article.SalePrice
		if in.SalePrice != nil {
			price = *in.SalePrice
		}
		var variationName string
		var variationID *string
		if variation != nil {
			variationName = variation.Name
			variationID = &variation.ID
		}

		amount := price.Mul(decimal.NewFromInt(quantity))
		tx := &entity.Transaction{
			ID:          uuid.New().String(),
			UserID:      userID,
			ArticleID:   &article.ID,
			VariationID: variationID,
			Name:        saleName(quantity, article.Name, variationName),
			Quantity:    &quantity,
			SalePrice:   &price,
			Amount:      amount,
			Type:        entity.TransactionTypeSale,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		created = tx

		// Vendido total del artículo incluyendo la venta recién escrita.
		soldAfter, err := txRepo.SoldQuantityByArticle(ctx, article.ID, "")
		if err != nil {
			return err
		}
		return lowstock.NewChecker(notifRepo, settingRepo).Check(ctx, article, soldAfter)
	})
	if err != nil {
		return nil, err
	}
	return uc.loadResponse(ctx, userID, created)
}

// Update modifica una transacción. Tipo y artículo son inmutables: no hay
// superficie para cambiarlos. Para ventas se recomputa el espacio disponible
// excluyendo la propia transacción y el monto se recalcula con el precio
// ACTUAL del artículo; para gastos se sobreescriben nombre y monto.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	existing, err := uc.ownedTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	if !existing.IsSale() {
		if in.Amount == nil || in.Amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		existing.Name = in.Name
		existing.Amount = *in.Amount
		existing.UpdatedAt = time.Now()
		if err := uc.txRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		resp := dto.NewTransactionResponse(existing)
		return &resp, nil
	}

	if in.Quantity == nil || *in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	newQuantity := *in.Quantity

	err = uc.txRunner.Run(ctx, func(
		articleRepo repository.ArticleRepository,
		variationRepo repository.VariationRepository,
		txRepo repository.TransactionRepository,
		notifRepo repository.NotificationRepository,
		settingRepo repository.SettingRepository,
	) error {
		if existing.ArticleID == nil {
			return domain.ErrNotFound
		}
		article, err := articleRepo.GetByIDForUpdate(ctx, *existing.ArticleID)
		if err != nil {
			return err
		}
		if article == nil {
			return domain.ErrNotFound
		}

		// Espacio disponible: stock del objetivo menos lo vendido por las
		// DEMÁS ventas. La propia transacción queda fuera de la suma para
		// que reducir (o repetir) su cantidad nunca se rechace.
		if existing.VariationID != nil {
			variation, err := variationRepo.GetByID(ctx, *existing.VariationID)
			if err != nil {
				return err
			}
			if variation == nil {
				return domain.ErrNotFound
			}
			otherSold, err := txRepo.SoldQuantityByVariation(ctx, variation.ID, existing.ID)
			if err != nil {
				return err
			}
			if available := stock.Remaining(variation.Quantity, otherSold); newQuantity > available {
				return &InsufficientStockError{Available: available}
			}
		} else {
			otherSold, err := txRepo.SoldQuantityByArticle(ctx, article.ID, existing.ID)
			if err != nil {
				return err
			}
			if available := stock.Remaining(article.Quantity, otherSold); newQuantity > available {
				return &InsufficientStockError{Available: available}
			}
		}

		price := article.SalePrice
		existing.Name = in.Name
		existing.Quantity = &newQuantity
		existing.SalePrice = &price
		existing.Amount = price.Mul(decimal.NewFromInt(newQuantity))
		existing.UpdatedAt = time.Now()
		if err := txRepo.Update(ctx, existing); err != nil {
			return err
		}

		soldAfter, err := txRepo.SoldQuantityByArticle(ctx, article.ID, "")
		if err != nil {
			return err
		}
		return lowstock.NewChecker(notifRepo, settingRepo).Check(ctx, article, soldAfter)
	})
	if err != nil {
		return nil, err
	}
	return uc.loadResponse(ctx, userID, existing)
}

// Delete elimina una transacción del usuario. Como la contabilidad de stock
// se deriva del libro mayor, borrar una venta libera su cantidad sin ninguna
// escritura compensatoria.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	existing, err := uc.ownedTransaction(ctx, userID, id)
	if err != nil {
		return err
	}
	return uc.txRepo.Delete(ctx, existing.ID)
}

// Get devuelve una transacción del usuario con sus relaciones.
func (uc *UseCase) Get(ctx context.Context, userID, id string) (*dto.TransactionResponse, error) {
	existing, err := uc.ownedTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return uc.loadResponse(ctx, userID, existing)
}

// List devuelve las transacciones del usuario ordenadas de la más reciente a
// la más antigua, con su artículo proyectado cuando corresponde.
func (uc *UseCase) List(ctx context.Context, userID string) ([]dto.TransactionResponse, error) {
	items, err := uc.txRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.project(ctx, userID, items)
}

func (uc *UseCase) project(ctx context.Context, userID string, items []*entity.Transaction) ([]dto.TransactionResponse, error) {
	soldByArticle, err := uc.txRepo.SoldQuantitiesByArticle(ctx, userID)
	if err != nil {
		return nil, err
	}
	threshold, err := uc.threshold(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Los artículos se cargan una vez por id, no una vez por línea.
	articles := make(map[string]*entity.Article)
	out := make([]dto.TransactionResponse, 0, len(items))
	for _, t := range items {
		resp := dto.NewTransactionResponse(t)
		if t.ArticleID != nil {
			article, ok := articles[*t.ArticleID]
			if !ok {
				article, err = uc.articleRepo.GetByID(ctx, *t.ArticleID)
				if err != nil {
					return nil, err
				}
				articles[*t.ArticleID] = article
			}
			if article != nil {
				ar := dto.NewArticleResponse(article, soldByArticle[article.ID], threshold)
				resp.Article = &ar
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

func (uc *UseCase) loadResponse(ctx context.Context, userID string, tx *entity.Transaction) (*dto.TransactionResponse, error) {
	resp := dto.NewTransactionResponse(tx)
	if tx.ArticleID != nil {
		article, err := uc.articleRepo.GetByID(ctx, *tx.ArticleID)
		if err != nil {
			return nil, err
		}
		if article != nil {
			sold, err := uc.txRepo.SoldQuantityByArticle(ctx, article.ID, "")
			if err != nil {
				return nil, err
			}
			threshold, err := uc.threshold(ctx, userID)
			if err != nil {
				return nil, err
			}
			ar := dto.NewArticleResponse(article, sold, threshold)
			resp.Article = &ar
		}
	}
	return &resp, nil
}

func (uc *UseCase) threshold(ctx context.Context, userID string) (int, error) {
	settings, err := uc.settingRepo.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if settings == nil {
		return entity.DefaultLowStockThreshold, nil
	}
	return settings.LowStockThreshold, nil
}

func (uc *UseCase) ownedTransaction(ctx context.Context, userID, id string) (*entity.Transaction, error) {
	existing, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return existing, nil
}
