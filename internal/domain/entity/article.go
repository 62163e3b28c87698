package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de artículo. El tipo es inmutable después de la creación.
const (
	ArticleTypeSimple   = "simple"
	ArticleTypeVariable = "variable"
)

// Article es un artículo del inventario. Para los de tipo simple, Quantity es el
// stock autoritativo; para los variables es un techo y el stock real vive en las
// variaciones (Σ Variation.Quantity ≤ Article.Quantity).
type Article struct {
	ID        string
	UserID    string
	Name      string
	SalePrice decimal.Decimal
	Quantity  int64
	Type      string // simple | variable
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Variation es una variante de un artículo de tipo variable
// (ej. talla o color). Name es único dentro del artículo.
type Variation struct {
	ID        string
	ArticleID string
	Name      string
	Quantity  int64
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
