package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo implementación del puerto SettingRepository sobre PostgreSQL.
type SettingRepo struct {
	q Querier
}

// NewSettingRepository construye el adaptador de persistencia para preferencias de usuario.
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

// GetByUser obtiene las preferencias de un usuario, o (nil, nil) si nunca las guardó.
func (r *SettingRepo) GetByUser(ctx context.Context, userID string) (*entity.UserSetting, error) {
	query := `
		SELECT user_id, currency, low_stock_threshold, language, created_at, updated_at
		FROM user_settings WHERE user_id = $1`
	var s entity.UserSetting
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&s.UserID, &s.Currency, &s.LowStockThreshold, &s.Language, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza las preferencias del usuario (una fila por usuario).
func (r *SettingRepo) Upsert(ctx context.Context, setting *entity.UserSetting) error {
	query := `
		INSERT INTO user_settings (user_id, currency, low_stock_threshold, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			currency = EXCLUDED.currency,
			low_stock_threshold = EXCLUDED.low_stock_threshold,
			language = EXCLUDED.language,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		setting.UserID, setting.Currency, setting.LowStockThreshold, setting.Language,
		setting.CreatedAt, setting.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
