package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticleRequest entrada para crear un artículo.
type CreateArticleRequest struct {
	Name      string          `json:"name" validate:"required,max=255"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Quantity  int64           `json:"quantity" validate:"min=0"`
	Type      string          `json:"type" validate:"required,oneof=simple variable"`
	Image     string          `json:"image" validate:"omitempty,max=255"`
}

// UpdateArticleRequest entrada para modificar un artículo. Type viaja como
// puntero solo para detectar intentos de cambiarlo: es inmutable.
type UpdateArticleRequest struct {
	Name      string          `json:"name" validate:"required,max=255"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Quantity  int64           `json:"quantity" validate:"min=0"`
	Image     string          `json:"image" validate:"omitempty,max=255"`
	Type      *string         `json:"type"`
}

// ArticleResponse salida de un artículo con sus campos derivados, recomputados
// del libro mayor en cada lectura.
type ArticleResponse struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	Name              string          `json:"name"`
	SalePrice         decimal.Decimal `json:"sale_price"`
	Quantity          int64           `json:"quantity"`
	Type              string          `json:"type"`
	Image             string          `json:"image,omitempty"`
	SoldQuantity      int64           `json:"sold_quantity"`
	RemainingQuantity int64           `json:"remaining_quantity"`
	SalesPercentage   decimal.Decimal `json:"sales_percentage"`
	LowStock          bool            `json:"low_stock"`
	StockValue        decimal.Decimal `json:"stock_value"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreateVariationRequest entrada para crear una variación de un artículo variable.
type CreateVariationRequest struct {
	ArticleID string `json:"article_id" validate:"required"`
	Name      string `json:"name" validate:"required,max=255"`
	Quantity  int64  `json:"quantity" validate:"gt=0"`
	Image     string `json:"image" validate:"omitempty,max=255"`
}

// UpdateVariationRequest entrada para modificar una variación.
type UpdateVariationRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Quantity int64  `json:"quantity" validate:"gt=0"`
	Image    string `json:"image" validate:"omitempty,max=255"`
}

// VariationResponse salida de una variación con campos derivados y, cuando
// aplica, un resumen del artículo padre.
type VariationResponse struct {
	ID                string           `json:"id"`
	ArticleID         string           `json:"article_id"`
	Name              string           `json:"name"`
	Quantity          int64            `json:"quantity"`
	Image             string           `json:"image,omitempty"`
	SoldQuantity      int64            `json:"sold_quantity"`
	RemainingQuantity int64            `json:"remaining_quantity"`
	SalesPercentage   decimal.Decimal  `json:"sales_percentage"`
	LowStock          bool             `json:"low_stock"`
	Article           *ArticleResponse `json:"article,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}
