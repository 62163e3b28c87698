package dto

import "time"

// NotificationResponse una notificación del usuario.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	ArticleID *string   `json:"article_id,omitempty"`
	ActionURL string    `json:"action_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse listado paginado con el contador de no leídas.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
	Pagination    Pagination             `json:"pagination"`
}

// MarkAllReadResponse cuántas notificaciones se marcaron como leídas.
type MarkAllReadResponse struct {
	Marked int64 `json:"marked"`
}

// StockCorrectionDTO una corrección aplicada por la tarea de mantenimiento.
type StockCorrectionDTO struct {
	ArticleID    string `json:"article_id"`
	ArticleName  string `json:"article_name"`
	OldQuantity  int64  `json:"old_quantity"`
	SoldQuantity int64  `json:"sold_quantity"`
	NewQuantity  int64  `json:"new_quantity"`
}
