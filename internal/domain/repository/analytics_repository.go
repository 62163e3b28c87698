package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Granularidad de los buckets temporales de las series.
const (
	BucketDay   = "day"
	BucketWeek  = "week"
	BucketMonth = "month"
)

// BucketAmount un punto de una serie temporal: etiqueta del bucket y monto.
type BucketAmount struct {
	Bucket string // YYYY-MM-DD (día), IYYY-IW (semana ISO) o YYYY-MM (mes)
	Amount decimal.Decimal
}

// TypeSalesResult ventas agrupadas por tipo de artículo (simple/variable).
type TypeSalesResult struct {
	ArticleType string
	Total       decimal.Decimal
}

// TopArticleResult un artículo del top de ventas por cantidad.
type TopArticleResult struct {
	ArticleID     string
	Name          string
	ArticleType   string
	TotalQuantity int64
	TotalAmount   decimal.Decimal
}

// ArticleSaleStats estadísticas de venta por artículo para el motor de
// predicción de reabastecimiento: cantidad vendida y fechas extremas de venta.
type ArticleSaleStats struct {
	ArticleID    string
	Name         string
	ArticleType  string
	Quantity     int64
	SoldQuantity int64
	FirstSaleAt  time.Time
	LastSaleAt   time.Time
}

// UserTotalsResult agregados de inventario del propietario, recomputados del
// libro mayor en cada lectura.
type UserTotalsResult struct {
	TotalArticles          int64
	TotalLowStock          int64
	TotalStockValue        decimal.Decimal
	TotalRemainingQuantity int64
}

// AnalyticsRepository consultas de solo lectura del libro mayor para
// estadísticas, series temporales y predicciones.
type AnalyticsRepository interface {
	// SumAmount suma los montos de las transacciones de un tipo en el rango.
	SumAmount(ctx context.Context, userID, txType string, start, end time.Time) (decimal.Decimal, error)
	// CountByType cuenta las transacciones de un tipo en el rango.
	CountByType(ctx context.Context, userID, txType string, start, end time.Time) (int64, error)
	// SeriesByBucket suma montos por bucket temporal para un tipo de transacción.
	SeriesByBucket(ctx context.Context, userID, txType, bucket string, start, end time.Time) ([]BucketAmount, error)
	// WalletSeries devuelve la caja acumulada (ventas − gastos) por bucket,
	// como suma prefija sobre los buckets ordenados.
	WalletSeries(ctx context.Context, userID, bucket string, start, end time.Time) ([]BucketAmount, error)
	// SalesByArticleType reparte las ventas del rango por tipo de artículo.
	SalesByArticleType(ctx context.Context, userID string, start, end time.Time) ([]TypeSalesResult, error)
	// TopArticles devuelve los `limit` artículos más vendidos por cantidad.
	TopArticles(ctx context.Context, userID string, start, end time.Time, limit int) ([]TopArticleResult, error)
	// ArticleSaleStats devuelve, por artículo con al menos una venta, la
	// cantidad vendida y las fechas de primera y última venta.
	ArticleSaleStats(ctx context.Context, userID string) ([]ArticleSaleStats, error)
	// UserTotals agregados de inventario del usuario; threshold es el umbral
	// de stock bajo aplicado al conteo TotalLowStock.
	UserTotals(ctx context.Context, userID string, threshold int) (*UserTotalsResult, error)
}
