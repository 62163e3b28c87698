package entity

import "time"

// Tipos de notificación.
const (
	NotificationTypeWarning = "warning"
	NotificationTypeInfo    = "info"
)

// Título usado por la política de stock bajo; la unicidad de la notificación
// no leída se evalúa por (usuario, artículo, tipo warning, read=false).
const LowStockTitle = "Stock faible"

// Notification aviso one-shot generado por la política de stock bajo (u otros
// eventos). Nunca se resuelve sola: el usuario la marca como leída.
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	Read      bool
	ArticleID *string
	ActionURL string
	CreatedAt time.Time
}
