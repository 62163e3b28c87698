package equity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/domain"
	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
	"github.com/gestockhq/gestock-api/internal/domain/wallet"
)

// UseCase motor de participaciones: altas y bajas de colaboradores contra el
// CompanyShare del propietario. Invariante sostenido por cada operación:
// CompanyShare + Σ Part == 100. Las mutaciones corren en una transacción con
// la fila del propietario bloqueada FOR UPDATE, de modo que dos altas
// concurrentes nunca puedan sobreasignar la participación disponible.
type UseCase struct {
	txRunner      TxRunner
	userRepo      repository.UserRepository
	collabRepo    repository.CollaboratorRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewUseCase construye el motor de participaciones.
func NewUseCase(txRunner TxRunner, userRepo repository.UserRepository, collabRepo repository.CollaboratorRepository, analyticsRepo repository.AnalyticsRepository) *UseCase {
	return &UseCase{txRunner: txRunner, userRepo: userRepo, collabRepo: collabRepo, analyticsRepo: analyticsRepo}
}

// InsufficientEquityError envuelve ErrInsufficientEquity con la participación
// que el propietario todavía puede ceder.
type InsufficientEquityError struct {
	Available decimal.Decimal
}

func (e *InsufficientEquityError) Error() string {
	return fmt.Sprintf("%s: participación disponible %s", domain.ErrInsufficientEquity.Error(), e.Available.String())
}

// Unwrap permite errors.Is(err, domain.ErrInsufficientEquity).
func (e *InsufficientEquityError) Unwrap() error { return domain.ErrInsufficientEquity }

var (
	minPart = decimal.RequireFromString("0.01")
	maxPart = decimal.RequireFromString("99.99")
)

// Add da de alta un colaborador cediéndole `part` puntos del CompanyShare del
// propietario. Si part supera lo disponible la operación falla con
// InsufficientEquityError y nada cambia.
func (uc *UseCase) Add(ctx context.Context, ownerID string, in dto.CreateCollaboratorRequest) (*dto.CollaboratorResponse, error) {
	if in.Part.LessThan(minPart) || in.Part.GreaterThan(maxPart) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	collab := &entity.Collaborator{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Name:      in.Name,
		Phone:     in.Phone,
		Part:      in.Part,
		Image:     in.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.RunEquity(ctx, func(
		userRepo repository.UserRepository,
		collabRepo repository.CollaboratorRepository,
	) error {
		owner, err := userRepo.GetByIDForUpdate(ctx, ownerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return domain.ErrUserNotFound
		}
		if in.Part.GreaterThan(owner.CompanyShare) {
			return &InsufficientEquityError{Available: owner.CompanyShare}
		}
		if err := collabRepo.Create(ctx, collab); err != nil {
			return err
		}
		return userRepo.UpdateCompanyShare(ctx, ownerID, owner.CompanyShare.Sub(in.Part))
	})
	if err != nil {
		return nil, err
	}

	return uc.withWallet(ctx, collab)
}

// Remove elimina un colaborador y devuelve su participación al propietario.
func (uc *UseCase) Remove(ctx context.Context, ownerID, id string) (*dto.DeleteCollaboratorResponse, error) {
	var returned decimal.Decimal
	err := uc.txRunner.RunEquity(ctx, func(
		userRepo repository.UserRepository,
		collabRepo repository.CollaboratorRepository,
	) error {
		owner, err := userRepo.GetByIDForUpdate(ctx, ownerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return domain.ErrUserNotFound
		}
		collab, err := collabRepo.GetByIDAndUser(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if collab == nil {
			return domain.ErrNotFound
		}
		if err := collabRepo.Delete(ctx, collab.ID); err != nil {
			return err
		}
		returned = collab.Part
		return userRepo.UpdateCompanyShare(ctx, ownerID, owner.CompanyShare.Add(collab.Part))
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteCollaboratorResponse{ReturnedPart: returned}, nil
}

// Update modifica los campos no financieros de un colaborador. Cualquier
// intento de fijar part o wallet se rechaza con ErrImmutableField: la
// participación solo se mueve por alta o baja, y el wallet es derivado.
func (uc *UseCase) Update(ctx context.Context, ownerID, id string, in dto.UpdateCollaboratorRequest) (*dto.CollaboratorResponse, error) {
	if in.Part != nil || in.Wallet != nil {
		return nil, domain.ErrImmutableField
	}
	collab, err := uc.collabRepo.GetByIDAndUser(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		collab.Name = *in.Name
	}
	if in.Phone != nil {
		collab.Phone = *in.Phone
	}
	if in.Image != nil {
		collab.Image = *in.Image
	}
	collab.UpdatedAt = time.Now()
	if err := uc.collabRepo.Update(ctx, collab); err != nil {
		return nil, err
	}
	return uc.withWallet(ctx, collab)
}

// List devuelve los colaboradores del propietario con su wallet derivado. La
// caja calculada se obtiene una sola vez para todo el listado.
func (uc *UseCase) List(ctx context.Context, ownerID string) ([]dto.CollaboratorResponse, error) {
	collabs, err := uc.collabRepo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	calculated, err := uc.calculatedWallet(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CollaboratorResponse, 0, len(collabs))
	for _, c := range collabs {
		out = append(out, dto.NewCollaboratorResponse(c, wallet.Share(calculated, c.Part)))
	}
	return out, nil
}

// Get devuelve un colaborador del propietario con su wallet derivado.
func (uc *UseCase) Get(ctx context.Context, ownerID, id string) (*dto.CollaboratorResponse, error) {
	collab, err := uc.collabRepo.GetByIDAndUser(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, domain.ErrNotFound
	}
	return uc.withWallet(ctx, collab)
}

func (uc *UseCase) withWallet(ctx context.Context, collab *entity.Collaborator) (*dto.CollaboratorResponse, error) {
	calculated, err := uc.calculatedWallet(ctx, collab.UserID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCollaboratorResponse(collab, wallet.Share(calculated, collab.Part))
	return &resp, nil
}

// calculatedWallet caja neta histórica del propietario: ventas menos gastos.
func (uc *UseCase) calculatedWallet(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	var allTime time.Time
	totalSales, err := uc.analyticsRepo.SumAmount(ctx, ownerID, entity.TransactionTypeSale, allTime, allTime)
	if err != nil {
		return decimal.Zero, err
	}
	totalExpenses, err := uc.analyticsRepo.SumAmount(ctx, ownerID, entity.TransactionTypeExpense, allTime, allTime)
	if err != nil {
		return decimal.Zero, err
	}
	return wallet.Calculated(totalSales, totalExpenses), nil
}
