package usecase

import (
	"context"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/domain"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

// NotificationUseCase lectura y gestión de notificaciones del usuario.
type NotificationUseCase struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso de notificaciones.
func NewNotificationUseCase(notifRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifRepo: notifRepo}
}

// List devuelve las notificaciones paginadas más el contador de no leídas.
func (uc *NotificationUseCase) List(ctx context.Context, userID string, unreadOnly bool, page, perPage int) (*dto.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	items, total, err := uc.notifRepo.ListByUser(ctx, userID, unreadOnly, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	unread, err := uc.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, dto.NewNotificationResponse(n))
	}
	return &dto.NotificationListResponse{
		Notifications: out,
		UnreadCount:   unread,
		Pagination:    dto.NewPagination(page, perPage, total),
	}, nil
}

// MarkRead marca una notificación del usuario como leída. A partir de ahí la
// política de stock bajo puede volver a alertar sobre el mismo artículo.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	notif, err := uc.notifRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if notif == nil {
		return domain.ErrNotFound
	}
	return uc.notifRepo.MarkRead(ctx, notif.ID)
}

// MarkAllRead marca todas las notificaciones del usuario como leídas y
// devuelve cuántas se tocaron.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) (*dto.MarkAllReadResponse, error) {
	marked, err := uc.notifRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.MarkAllReadResponse{Marked: marked}, nil
}

// Delete elimina una notificación del usuario.
func (uc *NotificationUseCase) Delete(ctx context.Context, userID, id string) error {
	notif, err := uc.notifRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if notif == nil {
		return domain.ErrNotFound
	}
	return uc.notifRepo.Delete(ctx, notif.ID)
}
