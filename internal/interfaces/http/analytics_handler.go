package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestockhq/gestock-api/internal/application/analytics"
)

// AnalyticsHandler endpoints analíticos de solo lectura: estadísticas,
// tendencias, comparaciones, KPIs, análisis por categoría, reporte de
// transacciones y predicciones de reabastecimiento.
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler analítico.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// periodQuery arma los parámetros de período comunes: period, start_date,
// end_date (estos últimos solo con period=custom).
func periodQuery(c *fiber.Ctx) analytics.Query {
	return analytics.Query{
		Period:    c.Query("period", analytics.Period30Days),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
}

// Overview totales del período.
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.UserContext(), GetUserID(c), periodQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Statistiques récupérées.", out)
}

// Trends series temporales. Query param `type`: both, sales_expenses o wallet.
func (h *AnalyticsHandler) Trends(c *fiber.Ctx) error {
	trendType := c.Query("type", analytics.TrendBoth)
	out, err := h.uc.Trends(c.UserContext(), GetUserID(c), trendType, periodQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Tendances récupérées.", out)
}

// Comparisons comparación del período contra la ventana previa.
func (h *AnalyticsHandler) Comparisons(c *fiber.Ctx) error {
	out, err := h.uc.Comparisons(c.UserContext(), GetUserID(c), periodQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Comparaisons récupérées.", out)
}

// KPIs indicadores financieros del período.
func (h *AnalyticsHandler) KPIs(c *fiber.Ctx) error {
	out, err := h.uc.KPIs(c.UserContext(), GetUserID(c), periodQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Indicateurs récupérés.", out)
}

// Categories reparto de ventas por tipo de artículo y top de productos.
func (h *AnalyticsHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.CategoryAnalysis(c.UserContext(), GetUserID(c), periodQuery(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Analyse par catégorie récupérée.", out)
}

// Transactions reporte filtrado y paginado del libro mayor.
// Query params: period, start_date, end_date, type, search, page, per_page.
func (h *AnalyticsHandler) Transactions(c *fiber.Ctx) error {
	out, err := h.uc.Transactions(
		c.UserContext(), GetUserID(c), periodQuery(c),
		c.Query("type"), c.Query("search"),
		c.QueryInt("page", 1), c.QueryInt("per_page", 15),
	)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Rapport de transactions récupéré.", out)
}

// Predictions predicciones de reabastecimiento por artículo.
func (h *AnalyticsHandler) Predictions(c *fiber.Ctx) error {
	out, err := h.uc.Predictions(c.UserContext(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Prédictions récupérées.", out)
}
