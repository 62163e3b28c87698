// Package lowstock implementa la política de alerta de stock bajo: cuando un
// artículo cruza el umbral del usuario se crea como mucho UNA notificación no
// leída por (usuario, artículo). La alerta nunca se resuelve sola; solo el
// usuario la marca como leída, y únicamente entonces puede dispararse otra.
package lowstock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
	"github.com/gestockhq/gestock-api/internal/domain/stock"
)

// Los mensajes de producto son en francés, como el resto de las cadenas
// visibles (títulos, nombres de venta, moneda FCFA).
var french = message.NewPrinter(language.French)

// Checker evalúa la política contra el estado actual del libro mayor.
// Se invoca dentro de la misma transacción de base de datos que la mutación
// de stock que lo provoca, con repositorios ligados a esa transacción.
type Checker struct {
	notifRepo   repository.NotificationRepository
	settingRepo repository.SettingRepository
}

// NewChecker construye el verificador de stock bajo.
func NewChecker(notifRepo repository.NotificationRepository, settingRepo repository.SettingRepository) *Checker {
	return &Checker{notifRepo: notifRepo, settingRepo: settingRepo}
}

// Check recomputa el estado del artículo con `sold` unidades vendidas y crea
// la notificación si el artículo está en stock bajo y no existe ya una alerta
// no leída para él.
func (c *Checker) Check(ctx context.Context, article *entity.Article, sold int64) error {
	threshold := entity.DefaultLowStockThreshold
	settings, err := c.settingRepo.GetByUser(ctx, article.UserID)
	if err != nil {
		return fmt.Errorf("lowstock: leyendo preferencias: %w", err)
	}
	if settings != nil {
		threshold = settings.LowStockThreshold
	}

	if !stock.IsLow(article.Quantity, sold, threshold) {
		return nil
	}

	exists, err := c.notifRepo.HasUnreadLowStock(ctx, article.UserID, article.ID)
	if err != nil {
		return fmt.Errorf("lowstock: buscando alerta previa: %w", err)
	}
	if exists {
		return nil
	}

	remaining := stock.Remaining(article.Quantity, sold)
	pct := stock.SalesPercentage(article.Quantity, sold)
	articleID := article.ID
	notif := &entity.Notification{
		ID:     uuid.New().String(),
		UserID: article.UserID,
		Type:   entity.NotificationTypeWarning,
		Title:  entity.LowStockTitle,
		Message: french.Sprintf("Le produit \"%s\" est en stock faible (%d unité(s) restante(s), %s%% vendu).",
			article.Name, remaining, pct.String()),
		Read:      false,
		ArticleID: &articleID,
		ActionURL: "/products/" + article.ID,
		CreatedAt: time.Now(),
	}
	if err := c.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("lowstock: creando notificación: %w", err)
	}
	return nil
}
