package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/domain"
	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

// ArticleUseCase casos de uso de artículos, siempre acotados al propietario.
// Los campos derivados (vendido, restante, porcentaje, stock bajo, valor) se
// recomputan del libro mayor en cada lectura; nunca se persisten.
type ArticleUseCase struct {
	articleRepo repository.ArticleRepository
	txRepo      repository.TransactionRepository
	settingRepo repository.SettingRepository
}

// NewArticleUseCase construye el caso de uso de artículos.
func NewArticleUseCase(articleRepo repository.ArticleRepository, txRepo repository.TransactionRepository, settingRepo repository.SettingRepository) *ArticleUseCase {
	return &ArticleUseCase{articleRepo: articleRepo, txRepo: txRepo, settingRepo: settingRepo}
}

// thresholdFor devuelve el umbral de stock bajo del usuario, o el valor por
// defecto si todavía no tiene preferencias guardadas.
func thresholdFor(ctx context.Context, settingRepo repository.SettingRepository, userID string) (int, error) {
	settings, err := settingRepo.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if settings == nil {
		return entity.DefaultLowStockThreshold, nil
	}
	return settings.LowStockThreshold, nil
}

// List devuelve los artículos del usuario con sus campos derivados. Las sumas
// de ventas se traen en una sola consulta para todo el listado.
func (uc *ArticleUseCase) List(ctx context.Context, userID string) ([]dto.ArticleResponse, error) {
	articles, err := uc.articleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	soldByArticle, err := uc.txRepo.SoldQuantitiesByArticle(ctx, userID)
	if err != nil {
		return nil, err
	}
	threshold, err := thresholdFor(ctx, uc.settingRepo, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, dto.NewArticleResponse(a, soldByArticle[a.ID], threshold))
	}
	return out, nil
}

// Get devuelve un artículo del usuario con sus campos derivados.
func (uc *ArticleUseCase) Get(ctx context.Context, userID, id string) (*dto.ArticleResponse, error) {
	article, err := uc.ownedArticle(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	sold, err := uc.txRepo.SoldQuantityByArticle(ctx, article.ID, "")
	if err != nil {
		return nil, err
	}
	threshold, err := thresholdFor(ctx, uc.settingRepo, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewArticleResponse(article, sold, threshold)
	return &resp, nil
}

// Create da de alta un artículo. El tipo (simple o variable) queda fijado
// para siempre en este momento.
func (uc *ArticleUseCase) Create(ctx context.Context, userID string, in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	if in.SalePrice.IsNegative() || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	article := &entity.Article{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Name,
		SalePrice: in.SalePrice,
		Quantity:  in.Quantity,
		Type:      in.Type,
		Image:     in.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	threshold, err := thresholdFor(ctx, uc.settingRepo, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewArticleResponse(article, 0, threshold)
	return &resp, nil
}

// Update modifica nombre, precio, cantidad e imagen. Cualquier intento de
// cambiar el tipo se rechaza con ErrImmutableField: el tipo gobierna dónde
// vive el stock real y cambiarlo rompería el histórico de ventas.
func (uc *ArticleUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	article, err := uc.ownedArticle(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Type != nil && *in.Type != article.Type {
		return nil, domain.ErrImmutableField
	}
	if in.SalePrice.IsNegative() || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	article.Name = in.Name
	article.SalePrice = in.SalePrice
	article.Quantity = in.Quantity
	article.Image = in.Image
	article.UpdatedAt = time.Now()
	if err := uc.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	sold, err := uc.txRepo.SoldQuantityByArticle(ctx, article.ID, "")
	if err != nil {
		return nil, err
	}
	threshold, err := thresholdFor(ctx, uc.settingRepo, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewArticleResponse(article, sold, threshold)
	return &resp, nil
}

// Delete elimina un artículo del usuario. Las variaciones y transacciones
// asociadas caen por las claves foráneas del esquema.
func (uc *ArticleUseCase) Delete(ctx context.Context, userID, id string) error {
	article, err := uc.ownedArticle(ctx, userID, id)
	if err != nil {
		return err
	}
	return uc.articleRepo.Delete(ctx, article.ID)
}

// ownedArticle trae el artículo y verifica la propiedad; un artículo ajeno es
// indistinguible de uno inexistente para el llamador.
func (uc *ArticleUseCase) ownedArticle(ctx context.Context, userID, id string) (*entity.Article, error) {
	article, err := uc.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil || article.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return article, nil
}
