package repository

import (
	"context"

	"github.com/gestockhq/gestock-api/internal/domain/entity"
)

// CollaboratorRepository define el puerto de persistencia para Collaborator.
// Part nunca se actualiza: Update solo toca los campos no financieros.
type CollaboratorRepository interface {
	Create(ctx context.Context, collaborator *entity.Collaborator) error
	GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Collaborator, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Collaborator, error)
	Update(ctx context.Context, collaborator *entity.Collaborator) error
	Delete(ctx context.Context, id string) error
}

// NotificationRepository define el puerto de persistencia para Notification.
// HasUnreadLowStock sostiene la política one-shot: como mucho una notificación
// de stock bajo no leída por (usuario, artículo).
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	HasUnreadLowStock(ctx context.Context, userID, articleID string) (bool, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}
