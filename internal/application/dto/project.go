package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/stock"
)

// NewArticleResponse proyecta un artículo con sus campos derivados a partir
// de la cantidad vendida y el umbral de stock bajo del usuario.
func NewArticleResponse(a *entity.Article, sold int64, threshold int) ArticleResponse {
	return ArticleResponse{
		ID:                a.ID,
		UserID:            a.UserID,
		Name:              a.Name,
		SalePrice:         a.SalePrice,
		Quantity:          a.Quantity,
		Type:              a.Type,
		Image:             a.Image,
		SoldQuantity:      sold,
		RemainingQuantity: stock.Remaining(a.Quantity, sold),
		SalesPercentage:   stock.SalesPercentage(a.Quantity, sold),
		LowStock:          stock.IsLow(a.Quantity, sold, threshold),
		StockValue:        stock.Value(a.Quantity, sold, a.SalePrice),
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// NewVariationResponse proyecta una variación con sus campos derivados.
// El resumen del artículo padre es opcional.
func NewVariationResponse(v *entity.Variation, sold int64, threshold int, parent *ArticleResponse) VariationResponse {
	return VariationResponse{
		ID:                v.ID,
		ArticleID:         v.ArticleID,
		Name:              v.Name,
		Quantity:          v.Quantity,
		Image:             v.Image,
		SoldQuantity:      sold,
		RemainingQuantity: stock.Remaining(v.Quantity, sold),
		SalesPercentage:   stock.SalesPercentage(v.Quantity, sold),
		LowStock:          stock.IsLow(v.Quantity, sold, threshold),
		Article:           parent,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

// NewTransactionResponse proyecta una línea del libro mayor sin relaciones.
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Type:        t.Type,
		ArticleID:   t.ArticleID,
		VariationID: t.VariationID,
		Name:        t.Name,
		Quantity:    t.Quantity,
		SalePrice:   t.SalePrice,
		Amount:      t.Amount,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewCollaboratorResponse proyecta un colaborador con su wallet derivado.
func NewCollaboratorResponse(c *entity.Collaborator, wallet decimal.Decimal) CollaboratorResponse {
	return CollaboratorResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Phone:     c.Phone,
		Part:      c.Part,
		Wallet:    wallet,
		Image:     c.Image,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewNotificationResponse proyecta una notificación.
func NewNotificationResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		ArticleID: n.ArticleID,
		ActionURL: n.ActionURL,
		CreatedAt: n.CreatedAt,
	}
}
