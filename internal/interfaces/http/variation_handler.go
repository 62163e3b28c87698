package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/application/usecase"
)

// VariationHandler CRUD de variaciones de artículos variables.
type VariationHandler struct {
	uc *usecase.VariationUseCase
}

// NewVariationHandler construye el handler de variaciones.
func NewVariationHandler(uc *usecase.VariationUseCase) *VariationHandler {
	return &VariationHandler{uc: uc}
}

// List lista las variaciones de todos los artículos del usuario.
func (h *VariationHandler) List(c *fiber.Ctx) error {
	variations, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Variations récupérées.", variations)
}

// Get devuelve una variación con el resumen de su artículo padre.
func (h *VariationHandler) Get(c *fiber.Ctx) error {
	variation, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Variation récupérée.", variation)
}

// Create da de alta una variación de un artículo variable.
func (h *VariationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVariationRequest
	if !parseBody(c, &in) {
		return nil
	}
	variation, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return created(c, "Variation créée avec succès.", variation)
}

// Update modifica una variación respetando el techo del artículo padre.
func (h *VariationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVariationRequest
	if !parseBody(c, &in) {
		return nil
	}
	variation, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Variation mise à jour.", variation)
}

// Delete elimina una variación.
func (h *VariationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return ok(c, "Variation supprimée.", nil)
}
