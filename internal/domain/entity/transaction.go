package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción. El tipo y el artículo referenciado son inmutables.
const (
	TransactionTypeSale    = "sale"
	TransactionTypeExpense = "expense"
)

// Transaction es una línea del libro mayor: una venta o un gasto.
// Para ventas: ArticleID obligatorio, VariationID obligatorio si el artículo es
// variable, Quantity ≥ 1, SalePrice es el precio capturado al crear y
// Amount = SalePrice × Quantity. Para gastos: Name y Amount directos,
// ArticleID/VariationID/Quantity siempre nulos.
type Transaction struct {
	ID          string
	UserID      string
	ArticleID   *string
	VariationID *string
	Name        string
	Quantity    *int64
	SalePrice   *decimal.Decimal
	Amount      decimal.Decimal
	Type        string // sale | expense
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsSale indica si la transacción es una venta.
func (t *Transaction) IsSale() bool { return t.Type == TransactionTypeSale }
