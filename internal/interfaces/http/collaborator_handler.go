package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/application/equity"
)

// CollaboratorHandler altas, bajas y consultas de colaboradores y sus
// participaciones sobre la caja.
type CollaboratorHandler struct {
	uc *equity.UseCase
}

// NewCollaboratorHandler construye el handler de colaboradores.
func NewCollaboratorHandler(uc *equity.UseCase) *CollaboratorHandler {
	return &CollaboratorHandler{uc: uc}
}

// List lista los colaboradores con su wallet calculado.
func (h *CollaboratorHandler) List(c *fiber.Ctx) error {
	collaborators, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Collaborateurs récupérés.", collaborators)
}

// Get devuelve un colaborador con su wallet calculado.
func (h *CollaboratorHandler) Get(c *fiber.Ctx) error {
	collaborator, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Collaborateur récupéré.", collaborator)
}

// Create da de alta un colaborador cediendo parte de la participación del
// propietario. La part queda fijada para siempre.
func (h *CollaboratorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCollaboratorRequest
	if !parseBody(c, &in) {
		return nil
	}
	collaborator, err := h.uc.Add(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return created(c, "Collaborateur ajouté.", collaborator)
}

// Update modifica los campos no financieros de un colaborador.
func (h *CollaboratorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCollaboratorRequest
	if !parseBody(c, &in) {
		return nil
	}
	collaborator, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Collaborateur mis à jour.", collaborator)
}

// Delete elimina un colaborador devolviendo su participación al propietario.
func (h *CollaboratorHandler) Delete(c *fiber.Ctx) error {
	result, err := h.uc.Remove(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Collaborateur supprimé, part restituée.", result)
}
