package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestockhq/gestock-api/internal/application/usecase"
)

// NotificationHandler listado y gestión de notificaciones.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler de notificaciones.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List lista notificaciones paginadas. Query params: unread_only, page, per_page.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("unread_only")
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 20)

	result, err := h.uc.List(c.UserContext(), GetUserID(c), unreadOnly, page, perPage)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Notifications récupérées.", result)
}

// MarkRead marca una notificación como leída; una alerta de stock bajo leída
// rearma la alerta para ese artículo.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return ok(c, "Notification marquée comme lue.", nil)
}

// MarkAllRead marca todas las notificaciones como leídas.
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	result, err := h.uc.MarkAllRead(c.UserContext(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Toutes les notifications ont été marquées comme lues.", result)
}

// Delete elimina una notificación.
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return ok(c, "Notification supprimée.", nil)
}
