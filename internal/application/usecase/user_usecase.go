package usecase

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/domain"
	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
	"github.com/gestockhq/gestock-api/internal/domain/wallet"
)

// UserUseCase perfil del propietario con sus agregados financieros y de
// inventario, todos recomputados del libro mayor en cada lectura.
type UserUseCase struct {
	userRepo      repository.UserRepository
	settingRepo   repository.SettingRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewUserUseCase construye el caso de uso del perfil.
func NewUserUseCase(userRepo repository.UserRepository, settingRepo repository.SettingRepository, analyticsRepo repository.AnalyticsRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, settingRepo: settingRepo, analyticsRepo: analyticsRepo}
}

// Get devuelve el perfil con los totales de inventario, las sumas históricas
// de ventas y gastos, la caja calculada y el wallet del propietario (su
// rebanada CompanyShare de la caja, no el total).
func (uc *UserUseCase) Get(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	threshold, err := thresholdFor(ctx, uc.settingRepo, userID)
	if err != nil {
		return nil, err
	}
	totals, err := uc.analyticsRepo.UserTotals(ctx, userID, threshold)
	if err != nil {
		return nil, err
	}

	// Rango cero = sin acotar: sumas históricas completas.
	var allTime time.Time
	totalSale, err := uc.analyticsRepo.SumAmount(ctx, userID, entity.TransactionTypeSale, allTime, allTime)
	if err != nil {
		return nil, err
	}
	totalExpense, err := uc.analyticsRepo.SumAmount(ctx, userID, entity.TransactionTypeExpense, allTime, allTime)
	if err != nil {
		return nil, err
	}

	calculated := wallet.Calculated(totalSale, totalExpense)
	return &dto.UserResponse{
		ID:                     user.ID,
		FirstName:              user.FirstName,
		LastName:               user.LastName,
		Username:               user.Username,
		Email:                  user.Email,
		CompanyShare:           user.CompanyShare,
		ProfileImage:           user.ProfileImage,
		TotalArticles:          totals.TotalArticles,
		TotalLowStock:          totals.TotalLowStock,
		TotalStockValue:        totals.TotalStockValue,
		TotalRemainingQuantity: totals.TotalRemainingQuantity,
		TotalSale:              totalSale,
		TotalExpense:           totalExpense,
		CalculatedWallet:       calculated,
		Wallet:                 wallet.Share(calculated, user.CompanyShare),
		CreatedAt:              user.CreatedAt,
		UpdatedAt:              user.UpdatedAt,
	}, nil
}

// UpdateProfile aplica los campos presentes de la petición.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.ProfileImage != nil {
		user.ProfileImage = *in.ProfileImage
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return uc.Get(ctx, userID)
}

// UpdatePassword verifica la contraseña actual y persiste el hash de la nueva.
func (uc *UserUseCase) UpdatePassword(ctx context.Context, userID string, in dto.UpdatePasswordRequest) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, userID, string(hash))
}
