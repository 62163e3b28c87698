package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura del libro mayor para estadísticas,
// series temporales y predicciones. Todas las sumas se recomputan en vivo:
// nada de lo que devuelve está materializado.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// bucketExpr devuelve la expresión SQL que etiqueta el bucket temporal.
// La semana usa el calendario ISO (IYYY-IW) para que los bordes de año
// no partan una semana en dos etiquetas.
func bucketExpr(bucket string) string {
	switch bucket {
	case repository.BucketWeek:
		return `TO_CHAR(created_at, 'IYYY-IW')`
	case repository.BucketMonth:
		return `TO_CHAR(created_at, 'YYYY-MM')`
	default:
		return `TO_CHAR(created_at, 'YYYY-MM-DD')`
	}
}

// nullableRange convierte los extremos del rango a NULL cuando son el valor
// cero de time.Time: rango abierto (todo el historial).
func nullableRange(start, end time.Time) (any, any) {
	var s, e any
	if !start.IsZero() {
		s = start
	}
	if !end.IsZero() {
		e = end
	}
	return s, e
}

// SumAmount suma los montos de las transacciones de un tipo en el rango.
// Extremos en cero significan rango abierto.
func (r *AnalyticsRepo) SumAmount(ctx context.Context, userID, txType string, start, end time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = $2
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at <= $4)`
	s, e := nullableRange(start, end)
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, userID, txType, s, e).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.SumAmount: %w", err)
	}
	return sum, nil
}

// CountByType cuenta las transacciones de un tipo en el rango.
func (r *AnalyticsRepo) CountByType(ctx context.Context, userID, txType string, start, end time.Time) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM transactions
		WHERE user_id = $1 AND type = $2
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at <= $4)`
	s, e := nullableRange(start, end)
	var count int64
	if err := r.q.QueryRow(ctx, query, userID, txType, s, e).Scan(&count); err != nil {
		return 0, fmt.Errorf("analytics.CountByType: %w", err)
	}
	return count, nil
}

// SeriesByBucket suma montos por bucket temporal para un tipo de transacción.
// Los buckets sin transacciones no aparecen en la serie.
func (r *AnalyticsRepo) SeriesByBucket(ctx context.Context, userID, txType, bucket string, start, end time.Time) ([]repository.BucketAmount, error) {
	query := fmt.Sprintf(`
		SELECT %s AS bucket, SUM(amount) AS total
		FROM transactions
		WHERE user_id = $1 AND type = $2 AND created_at BETWEEN $3 AND $4
		GROUP BY 1
		ORDER BY 1`, bucketExpr(bucket))

	rows, err := r.q.Query(ctx, query, userID, txType, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.SeriesByBucket: %w", err)
	}
	defer rows.Close()
	return collectBuckets(rows, "analytics.SeriesByBucket")
}

// WalletSeries devuelve la caja acumulada (ventas − gastos) por bucket: cada
// punto es la suma prefija de los netos de los buckets anteriores, calculada
// con una window function sobre los buckets ordenados.
func (r *AnalyticsRepo) WalletSeries(ctx context.Context, userID, bucket string, start, end time.Time) ([]repository.BucketAmount, error) {
	query := fmt.Sprintf(`
		SELECT bucket, SUM(net) OVER (ORDER BY bucket) AS cumulative
		FROM (
			SELECT %s AS bucket,
			       SUM(CASE WHEN type = 'sale' THEN amount ELSE -amount END) AS net
			FROM transactions
			WHERE user_id = $1 AND created_at BETWEEN $2 AND $3
			GROUP BY 1
		) buckets
		ORDER BY bucket`, bucketExpr(bucket))

	rows, err := r.q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.WalletSeries: %w", err)
	}
	defer rows.Close()
	return collectBuckets(rows, "analytics.WalletSeries")
}

func collectBuckets(rows pgx.Rows, op string) ([]repository.BucketAmount, error) {
	var series []repository.BucketAmount
	for rows.Next() {
		var point repository.BucketAmount
		if err := rows.Scan(&point.Bucket, &point.Amount); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		series = append(series, point)
	}
	return series, rows.Err()
}

// SalesByArticleType reparte las ventas del rango por tipo de artículo.
func (r *AnalyticsRepo) SalesByArticleType(ctx context.Context, userID string, start, end time.Time) ([]repository.TypeSalesResult, error) {
	const query = `
		SELECT a.type, SUM(t.amount) AS total
		FROM transactions t
		JOIN articles a ON a.id = t.article_id
		WHERE t.user_id = $1 AND t.type = 'sale' AND t.created_at BETWEEN $2 AND $3
		GROUP BY a.type
		ORDER BY total DESC`

	rows, err := r.q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesByArticleType: %w", err)
	}
	defer rows.Close()

	var results []repository.TypeSalesResult
	for rows.Next() {
		var row repository.TypeSalesResult
		if err := rows.Scan(&row.ArticleType, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.SalesByArticleType scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopArticles devuelve los `limit` artículos más vendidos por cantidad en el rango.
func (r *AnalyticsRepo) TopArticles(ctx context.Context, userID string, start, end time.Time, limit int) ([]repository.TopArticleResult, error) {
	const query = `
		SELECT a.id, a.name, a.type, SUM(t.quantity) AS total_quantity, SUM(t.amount) AS total_amount
		FROM transactions t
		JOIN articles a ON a.id = t.article_id
		WHERE t.user_id = $1 AND t.type = 'sale' AND t.created_at BETWEEN $2 AND $3
		GROUP BY a.id, a.name, a.type
		ORDER BY total_quantity DESC
		LIMIT $4`

	rows, err := r.q.Query(ctx, query, userID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopArticles: %w", err)
	}
	defer rows.Close()

	var results []repository.TopArticleResult
	for rows.Next() {
		var row repository.TopArticleResult
		if err := rows.Scan(&row.ArticleID, &row.Name, &row.ArticleType, &row.TotalQuantity, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("analytics.TopArticles scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ArticleSaleStats devuelve, por artículo con al menos una venta, la cantidad
// vendida y las fechas de primera y última venta (motor de predicción).
func (r *AnalyticsRepo) ArticleSaleStats(ctx context.Context, userID string) ([]repository.ArticleSaleStats, error) {
	const query = `
		SELECT a.id, a.name, a.type, a.quantity,
		       SUM(t.quantity)    AS sold_quantity,
		       MIN(t.created_at)  AS first_sale_at,
		       MAX(t.created_at)  AS last_sale_at
		FROM articles a
		JOIN transactions t ON t.article_id = a.id AND t.type = 'sale'
		WHERE a.user_id = $1
		GROUP BY a.id, a.name, a.type, a.quantity`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("analytics.ArticleSaleStats: %w", err)
	}
	defer rows.Close()

	var results []repository.ArticleSaleStats
	for rows.Next() {
		var row repository.ArticleSaleStats
		if err := rows.Scan(
			&row.ArticleID, &row.Name, &row.ArticleType, &row.Quantity,
			&row.SoldQuantity, &row.FirstSaleAt, &row.LastSaleAt,
		); err != nil {
			return nil, fmt.Errorf("analytics.ArticleSaleStats scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// UserTotals agregados de inventario del usuario. El conteo de stock bajo
// aplica el mismo umbral inclusivo que las alertas; el valor del stock puede
// ser negativo si hay artículos sobrevendidos.
func (r *AnalyticsRepo) UserTotals(ctx context.Context, userID string, threshold int) (*repository.UserTotalsResult, error) {
	const query = `
		SELECT
		    COUNT(*)                                                       AS total_articles,
		    COUNT(*) FILTER (
		        WHERE a.quantity > 0
		          AND COALESCE(s.sold, 0) * 100.0 / a.quantity >= $2
		    )                                                              AS total_low_stock,
		    COALESCE(SUM((a.quantity - COALESCE(s.sold, 0)) * a.sale_price), 0) AS total_stock_value,
		    COALESCE(SUM(a.quantity - COALESCE(s.sold, 0)), 0)             AS total_remaining
		FROM articles a
		LEFT JOIN (
		    SELECT article_id, SUM(quantity) AS sold
		    FROM transactions
		    WHERE type = 'sale' AND article_id IS NOT NULL
		    GROUP BY article_id
		) s ON s.article_id = a.id
		WHERE a.user_id = $1`

	var totals repository.UserTotalsResult
	err := r.q.QueryRow(ctx, query, userID, threshold).Scan(
		&totals.TotalArticles, &totals.TotalLowStock,
		&totals.TotalStockValue, &totals.TotalRemainingQuantity,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.UserTotals: %w", err)
	}
	return &totals, nil
}
