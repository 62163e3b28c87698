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

// VariationUseCase casos de uso de variaciones. Invariantes que sostiene:
// solo los artículos de tipo variable tienen variaciones, el nombre es único
// dentro del artículo y la suma de cantidades de variaciones nunca supera la
// cantidad del artículo padre.
type VariationUseCase struct {
	variationRepo repository.VariationRepository
	articleRepo   repository.ArticleRepository
	txRepo        repository.TransactionRepository
	settingRepo   repository.SettingRepository
}

// NewVariationUseCase construye el caso de uso de variaciones.
func NewVariationUseCase(variationRepo repository.VariationRepository, articleRepo repository.ArticleRepository, txRepo repository.TransactionRepository, settingRepo repository.SettingRepository) *VariationUseCase {
	return &VariationUseCase{variationRepo: variationRepo, articleRepo: articleRepo, txRepo: txRepo, settingRepo: settingRepo}
}

// AvailableQuantityError cabe en ErrInsufficientStock para reportar al
// llamador cuánto espacio queda dentro del artículo padre.
type AvailableQuantityError struct {
	Available int64
}

func (e *AvailableQuantityError) Error() string { return domain.ErrInsufficientStock.Error() }

// Unwrap permite errors.Is(err, domain.ErrInsufficientStock).
func (e *AvailableQuantityError) Unwrap() error { return domain.ErrInsufficientStock }

// List devuelve las variaciones de los artículos del usuario con sus campos
// derivados.
func (uc *VariationUseCase) List(ctx context.Context, userID string) ([]dto.VariationResponse, error) {
	variations, err := uc.variationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	soldByVariation, err := uc.txRepo.SoldQuantitiesByVariation(ctx, userID)
	if err != nil {
		return nil, err
	}
	threshold, err := thresholdFor(ctx, uc.settingRepo, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.VariationResponse, 0, len(variations))
	for _, v := range variations {
		out = append(out, dto.NewVariationResponse(v, soldByVariation[v.ID], threshold, nil))
	}
	return out, nil
}

// Get devuelve una variación con sus campos derivados y el resumen del
// artículo padre.
func (uc *VariationUseCase) Get(ctx context.Context, userID, id string) (*dto.VariationResponse, error) {
	variation, parent, err := uc.ownedVariation(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	threshold, err := thresholdFor(ctx, uc.settingRepo, userID)
	if err != nil {
		return nil, err
	}
	sold, err := uc.txRepo.SoldQuantityByVariation(ctx, variation.ID, "")
	if err != nil {
		return nil, err
	}
	parentSold, err := uc.txRepo.SoldQuantityByArticle(ctx, parent.ID, "")
	if err != nil {
		return nil, err
	}

	parentResp := dto.NewArticleResponse(parent, parentSold, threshold)
	resp := dto.NewVariationResponse(variation, sold, threshold, &parentResp)
	return &resp, nil
}

// Create da de alta una variación de un artículo variable del usuario.
func (uc *VariationUseCase) Create(ctx context.Context, userID string, in dto.CreateVariationRequest) (*dto.VariationResponse, error) {
	parent, err := uc.articleRepo.GetByID(ctx, in.ArticleID)
	if err != nil {
		return nil, err
	}
	if parent == nil || parent.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if parent.Type != entity.ArticleTypeVariable {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	if err := uc.checkNameAndHeadroom(ctx, parent, in.Name, in.Quantity, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	variation := &entity.Variation{
		ID:        uuid.New().String(),
		ArticleID: parent.ID,
		Name:      in.Name,
		Quantity:  in.Quantity,
		Image:     in.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.variationRepo.Create(ctx, variation); err != nil {
		return nil, err
	}

	threshold, err := thresholdFor(ctx, uc.settingRepo, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewVariationResponse(variation, 0, threshold, nil)
	return &resp, nil
}

// Update modifica una variación. Las verificaciones de unicidad de nombre y
// de espacio dentro del artículo padre excluyen a la propia variación.
func (uc *VariationUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateVariationRequest) (*dto.VariationResponse, error) {
	variation, parent, err := uc.ownedVariation(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkNameAndHeadroom(ctx, parent, in.Name, in.Quantity, variation.ID); err != nil {
		return nil, err
	}

	variation.Name = in.Name
	variation.Quantity = in.Quantity
	variation.Image = in.Image
	variation.UpdatedAt = time.Now()
	if err := uc.variationRepo.Update(ctx, variation); err != nil {
		return nil, err
	}

	threshold, err := thresholdFor(ctx, uc.settingRepo, userID)
	if err != nil {
		return nil, err
	}
	sold, err := uc.txRepo.SoldQuantityByVariation(ctx, variation.ID, "")
	if err != nil {
		return nil, err
	}
	resp := dto.NewVariationResponse(variation, sold, threshold, nil)
	return &resp, nil
}

// Delete elimina una variación del usuario.
func (uc *VariationUseCase) Delete(ctx context.Context, userID, id string) error {
	variation, _, err := uc.ownedVariation(ctx, userID, id)
	if err != nil {
		return err
	}
	return uc.variationRepo.Delete(ctx, variation.ID)
}

// checkNameAndHeadroom valida la unicidad del nombre dentro del artículo y el
// invariante Σ variaciones ≤ cantidad del artículo, ambos excluyendo
// excludeID cuando se edita.
func (uc *VariationUseCase) checkNameAndHeadroom(ctx context.Context, parent *entity.Article, name string, quantity int64, excludeID string) error {
	dup, err := uc.variationRepo.GetByArticleAndName(ctx, parent.ID, name, excludeID)
	if err != nil {
		return err
	}
	if dup != nil {
		return domain.ErrDuplicate
	}

	siblings, err := uc.variationRepo.SumQuantityByArticle(ctx, parent.ID, excludeID)
	if err != nil {
		return err
	}
	if siblings+quantity > parent.Quantity {
		return &AvailableQuantityError{Available: parent.Quantity - siblings}
	}
	return nil
}

// ownedVariation trae la variación y su artículo padre verificando propiedad.
func (uc *VariationUseCase) ownedVariation(ctx context.Context, userID, id string) (*entity.Variation, *entity.Article, error) {
	variation, err := uc.variationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if variation == nil {
		return nil, nil, domain.ErrNotFound
	}
	parent, err := uc.articleRepo.GetByID(ctx, variation.ArticleID)
	if err != nil {
		return nil, nil, err
	}
	if parent == nil || parent.UserID != userID {
		return nil, nil, domain.ErrNotFound
	}
	return variation, parent, nil
}
