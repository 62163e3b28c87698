package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/application/transaction"
)

// TransactionHandler operaciones del libro mayor: ventas y gastos.
type TransactionHandler struct {
	uc *transaction.UseCase
}

// NewTransactionHandler construye el handler de transacciones.
func NewTransactionHandler(uc *transaction.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// List lista todas las transacciones del usuario, más recientes primero.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Transactions récupérées.", items)
}

// Get devuelve una transacción con su artículo y variación proyectados.
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	item, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Transaction récupérée.", item)
}

// Create registra una venta o un gasto. Las ventas validan el stock dentro de
// la misma transacción de BD que escribe la línea.
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if !parseBody(c, &in) {
		return nil
	}
	item, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return created(c, "Transaction enregistrée.", item)
}

// Update modifica una transacción. Tipo y artículo son inmutables; las ventas
// revalidan el stock excluyendo la propia línea.
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTransactionRequest
	if !parseBody(c, &in) {
		return nil
	}
	item, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Transaction mise à jour.", item)
}

// Delete elimina una transacción; el stock derivado se libera solo.
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return ok(c, "Transaction supprimée.", nil)
}
