package dto

import "github.com/shopspring/decimal"

// OverviewDTO estadísticas generales de un período.
type OverviewDTO struct {
	NetRevenue    decimal.Decimal `json:"net_revenue"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Period        string          `json:"period"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
}

// TrendPointDTO un punto de una serie temporal.
type TrendPointDTO struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// SalesExpensesDTO series de ventas y gastos por bucket.
type SalesExpensesDTO struct {
	Sales    []TrendPointDTO `json:"sales"`
	Expenses []TrendPointDTO `json:"expenses"`
}

// TrendsDTO series para los gráficos de tendencias. SalesExpenses y Wallet
// se emiten según el parámetro `type` de la consulta.
type TrendsDTO struct {
	SalesExpenses *SalesExpensesDTO `json:"sales_expenses,omitempty"`
	Wallet        []TrendPointDTO   `json:"wallet,omitempty"`
}

// ComparisonEntryDTO comparación de una métrica entre período actual y previo.
type ComparisonEntryDTO struct {
	Current    decimal.Decimal `json:"current"`
	Previous   decimal.Decimal `json:"previous"`
	Change     decimal.Decimal `json:"change"`
	ChangeType string          `json:"change_type"` // increase | decrease | neutral
}

// ComparisonsDTO comparaciones período contra período.
type ComparisonsDTO struct {
	Sales      ComparisonEntryDTO `json:"sales"`
	Expenses   ComparisonEntryDTO `json:"expenses"`
	NetRevenue ComparisonEntryDTO `json:"net_revenue"`
}

// KPIsDTO indicadores financieros del período.
type KPIsDTO struct {
	NetMargin          decimal.Decimal `json:"net_margin"`
	AverageBasket      decimal.Decimal `json:"average_basket"`
	AverageSalesPerDay decimal.Decimal `json:"average_sales_per_day"`
	ExpenseRate        decimal.Decimal `json:"expense_rate"`
	SalesCount         int64           `json:"sales_count"`
	Days               int64           `json:"days"`
}

// TypeSalesDTO reparto de ventas por tipo de artículo.
type TypeSalesDTO struct {
	Type       string          `json:"type"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
}

// TopProductDTO un artículo del top 5 de ventas.
type TopProductDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// CategoryAnalysisDTO análisis por categoría.
type CategoryAnalysisDTO struct {
	SalesByType []TypeSalesDTO  `json:"sales_by_type"`
	TopProducts []TopProductDTO `json:"top_products"`
}

// Estado de un artículo en las predicciones de reabastecimiento.
const (
	PredictionInStock    = "in_stock"
	PredictionOutOfStock = "out_of_stock"
)

// PredictionDTO predicción de reabastecimiento de un artículo, extrapolada de
// su velocidad histórica de venta.
type PredictionDTO struct {
	ArticleID            string          `json:"article_id"`
	ArticleName          string          `json:"article_name"`
	Type                 string          `json:"type"`
	CurrentQuantity      int64           `json:"current_quantity"`
	SoldQuantity         int64           `json:"sold_quantity"`
	RemainingQuantity    int64           `json:"remaining_quantity"`
	SalesPercentage      decimal.Decimal `json:"sales_percentage"`
	Status               string          `json:"status"`
	PredictedReorderDate *string         `json:"predicted_reorder_date"`
	DaysUntilReorder     int64           `json:"days_until_reorder"`
	SalesRatePerDay      decimal.Decimal `json:"sales_rate_per_day"`
}
