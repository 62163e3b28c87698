package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gestockhq/gestock-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByIDForUpdate bloquea la fila (SELECT ... FOR UPDATE) y solo tiene sentido
// dentro de una transacción: es el candado que serializa las mutaciones de
// participación sobre un mismo propietario.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.User, error)
	UpdateProfile(ctx context.Context, user *entity.User) error
	UpdateCompanyShare(ctx context.Context, id string, share decimal.Decimal) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// SettingRepository define el puerto de persistencia para UserSetting.
type SettingRepository interface {
	GetByUser(ctx context.Context, userID string) (*entity.UserSetting, error)
	Upsert(ctx context.Context, setting *entity.UserSetting) error
}
