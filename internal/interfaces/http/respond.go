package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/application/equity"
	"github.com/gestockhq/gestock-api/internal/application/transaction"
	"github.com/gestockhq/gestock-api/internal/application/usecase"
	"github.com/gestockhq/gestock-api/internal/domain"
)

// ok responde 200 con la envoltura estándar.
func ok(c *fiber.Ctx, message string, data any) error {
	return c.JSON(dto.APIResponse{Success: true, Message: message, Data: data})
}

// created responde 201 con la envoltura estándar.
func created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.APIResponse{Success: true, Message: message, Data: data})
}

// fail responde un error con código de máquina y mensaje legible.
func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.APIResponse{Success: false, Code: code, Message: message})
}

// failValidation responde 422 con el detalle de validación por campo.
func failValidation(c *fiber.Ctx, errs map[string][]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.APIResponse{
		Success: false,
		Code:    "VALIDATION",
		Message: "Les données fournies sont invalides.",
		Errors:  errs,
	})
}

// handleError mapea los errores de dominio a códigos HTTP. Los errores de
// stock y de participación llevan el disponible en el mensaje.
func handleError(c *fiber.Ctx, err error) error {
	var stockErr *transaction.InsufficientStockError
	if errors.As(err, &stockErr) {
		return fail(c, fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK",
			fmt.Sprintf("Stock insuffisant. Quantité disponible: %d.", stockErr.Available))
	}
	var qtyErr *usecase.AvailableQuantityError
	if errors.As(err, &qtyErr) {
		return fail(c, fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK",
			fmt.Sprintf("Quantité indisponible. Quantité restante: %d.", qtyErr.Available))
	}
	var equityErr *equity.InsufficientEquityError
	if errors.As(err, &equityErr) {
		return fail(c, fiber.StatusUnprocessableEntity, "INSUFFICIENT_EQUITY",
			fmt.Sprintf("Participation insuffisante. Part disponible: %s%%.", equityErr.Available))
	}

	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "Ressource introuvable.")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fail(c, fiber.StatusConflict, "EMAIL_EXISTS", "Cet email est déjà utilisé.")
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "DUPLICATE", "Cette ressource existe déjà.")
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, "CONFLICT", "Opération en conflit avec l'état actuel.")
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Identifiants invalides.")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "Accès refusé.")
	case errors.Is(err, domain.ErrImmutableField):
		return fail(c, fiber.StatusUnprocessableEntity, "IMMUTABLE_FIELD", "Ce champ ne peut pas être modifié.")
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "INVALID_INPUT", "Requête invalide.")
	default:
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Une erreur interne est survenue.")
	}
}
