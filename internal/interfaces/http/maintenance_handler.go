package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestockhq/gestock-api/internal/application/usecase"
)

// MaintenanceHandler tareas de mantenimiento del inventario.
type MaintenanceHandler struct {
	uc *usecase.MaintenanceUseCase
}

// NewMaintenanceHandler construye el handler de mantenimiento.
func NewMaintenanceHandler(uc *usecase.MaintenanceUseCase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

// FixNegativeStock corrige los artículos sobrevendidos del usuario subiendo
// su cantidad hasta lo vendido, y reporta cada corrección aplicada.
func (h *MaintenanceHandler) FixNegativeStock(c *fiber.Ctx) error {
	corrections, err := h.uc.FixNegativeStockForUser(c.UserContext(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Correction des stocks négatifs terminée.", corrections)
}
