package usecase

import (
	"context"
	"time"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

// SettingUseCase preferencias por usuario (moneda, umbral de stock bajo,
// idioma). El primer acceso materializa los valores por defecto.
type SettingUseCase struct {
	settingRepo repository.SettingRepository
}

// NewSettingUseCase construye el caso de uso de preferencias.
func NewSettingUseCase(settingRepo repository.SettingRepository) *SettingUseCase {
	return &SettingUseCase{settingRepo: settingRepo}
}

// Get devuelve las preferencias del usuario, creándolas con los valores por
// defecto si todavía no existen.
func (uc *SettingUseCase) Get(ctx context.Context, userID string) (*dto.SettingsResponse, error) {
	settings, err := uc.settingRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = entity.DefaultSettings(userID, time.Now())
		if err := uc.settingRepo.Upsert(ctx, settings); err != nil {
			return nil, err
		}
	}
	return toSettingsResponse(settings), nil
}

// Update aplica los campos presentes de la petición. Los dominios de valores
// (monedas, idiomas, rango del umbral) ya vienen validados por las etiquetas
// del DTO.
func (uc *SettingUseCase) Update(ctx context.Context, userID string, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := uc.settingRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = entity.DefaultSettings(userID, time.Now())
	}

	if in.Currency != nil {
		settings.Currency = *in.Currency
	}
	if in.LowStockThreshold != nil {
		settings.LowStockThreshold = *in.LowStockThreshold
	}
	if in.Language != nil {
		settings.Language = *in.Language
	}
	settings.UpdatedAt = time.Now()

	if err := uc.settingRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func toSettingsResponse(s *entity.UserSetting) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		UserID:            s.UserID,
		Currency:          s.Currency,
		LowStockThreshold: s.LowStockThreshold,
		Language:          s.Language,
	}
}
