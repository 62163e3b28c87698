package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest entrada para registrar una venta o un gasto.
// Para ventas: ArticleID y Quantity obligatorios, VariationID obligatorio si
// el artículo es variable, SalePrice opcional (por defecto el del artículo).
// Para gastos: Name y Amount obligatorios; el resto se fuerza a nulo.
type CreateTransactionRequest struct {
	Type        string           `json:"type" validate:"required,oneof=sale expense"`
	ArticleID   string           `json:"article_id"`
	VariationID string           `json:"variable_id"`
	Quantity    *int64           `json:"quantity" validate:"omitempty,min=1"`
	Name        string           `json:"name" validate:"omitempty,max=255"`
	Amount      *decimal.Decimal `json:"amount"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
}

// UpdateTransactionRequest entrada para modificar una transacción existente.
// Quantity aplica a ventas y Amount a gastos; tipo y artículo son inmutables.
type UpdateTransactionRequest struct {
	Name     string           `json:"name" validate:"required,max=255"`
	Quantity *int64           `json:"quantity" validate:"omitempty,min=1"`
	Amount   *decimal.Decimal `json:"amount"`
}

// TransactionResponse salida de una transacción del libro mayor.
type TransactionResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	Type        string             `json:"type"`
	ArticleID   *string            `json:"article_id"`
	VariationID *string            `json:"variable_id"`
	Name        string             `json:"name"`
	Quantity    *int64             `json:"quantity"`
	SalePrice   *decimal.Decimal   `json:"sale_price"`
	Amount      decimal.Decimal    `json:"amount"`
	Article     *ArticleResponse   `json:"article,omitempty"`
	Variation   *VariationResponse `json:"variation,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TransactionListResponse listado paginado del reporte de transacciones.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   Pagination            `json:"pagination"`
}
