package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de persistencia para el libro mayor. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, user_id, article_id, variation_id, name, quantity, sale_price, amount, type, created_at, updated_at`

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(
		&t.ID, &t.UserID, &t.ArticleID, &t.VariationID, &t.Name, &t.Quantity,
		&t.SalePrice, &t.Amount, &t.Type, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return &t, nil
}

// Create persiste una línea del libro mayor (venta o gasto).
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.UserID, tx.ArticleID, tx.VariationID, tx.Name, tx.Quantity,
		tx.SalePrice, tx.Amount, tx.Type, tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	return scanTransaction(r.q.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
}

// ListByUser lista todas las transacciones de un usuario, más recientes primero.
func (r *TransactionRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// List lista transacciones filtradas y paginadas, devolviendo también el total
// sin paginar. Search busca en el nombre de la transacción y del artículo.
func (r *TransactionRepo) List(ctx context.Context, userID string, filter repository.TransactionFilter) ([]*entity.Transaction, int64, error) {
	where := `
		WHERE t.user_id = $1
		  AND ($2 = '' OR t.type = $2)
		  AND ($3 = '' OR t.name ILIKE '%' || $3 || '%' OR a.name ILIKE '%' || $3 || '%')
		  AND ($4::timestamptz IS NULL OR t.created_at >= $4)
		  AND ($5::timestamptz IS NULL OR t.created_at <= $5)`

	var start, end any
	if !filter.Start.IsZero() {
		start = filter.Start
	}
	if !filter.End.IsZero() {
		end = filter.End
	}

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM transactions t
		LEFT JOIN articles a ON a.id = t.article_id` + where
	if err := r.q.QueryRow(ctx, countQuery, userID, filter.Type, filter.Search, start, end).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := `
		SELECT t.id, t.user_id, t.article_id, t.variation_id, t.name, t.quantity, t.sale_price, t.amount, t.type, t.created_at, t.updated_at
		FROM transactions t
		LEFT JOIN articles a ON a.id = t.article_id` + where + `
		ORDER BY t.created_at DESC
		LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(ctx, query, userID, filter.Type, filter.Search, start, end, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	list, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func collectTransactions(rows pgx.Rows) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update actualiza los campos mutables de una transacción. El tipo y las
// referencias a artículo y variación son inmutables.
func (r *TransactionRepo) Update(ctx context.Context, tx *entity.Transaction) error {
	query := `
		UPDATE transactions SET name = $2, quantity = $3, sale_price = $4, amount = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.Name, tx.Quantity, tx.SalePrice, tx.Amount, tx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

// Delete elimina una transacción. El stock derivado se libera solo: las sumas
// se recomputan del libro mayor.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// SoldQuantityByArticle suma las cantidades vendidas de un artículo,
// excluyendo excludeID cuando se edita una venta.
func (r *TransactionRepo) SoldQuantityByArticle(ctx context.Context, articleID, excludeID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM transactions
		WHERE article_id = $1 AND type = 'sale' AND ($2 = '' OR id <> $2)`
	var sum int64
	if err := r.q.QueryRow(ctx, query, articleID, excludeID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sold quantity by article: %w", err)
	}
	return sum, nil
}

// SoldQuantityByVariation suma las cantidades vendidas de una variación,
// excluyendo excludeID cuando se edita una venta.
func (r *TransactionRepo) SoldQuantityByVariation(ctx context.Context, variationID, excludeID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM transactions
		WHERE variation_id = $1 AND type = 'sale' AND ($2 = '' OR id <> $2)`
	var sum int64
	if err := r.q.QueryRow(ctx, query, variationID, excludeID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sold quantity by variation: %w", err)
	}
	return sum, nil
}

// SoldQuantitiesByArticle devuelve las cantidades vendidas por artículo de un
// usuario en una sola consulta (para los listados).
func (r *TransactionRepo) SoldQuantitiesByArticle(ctx context.Context, userID string) (map[string]int64, error) {
	query := `
		SELECT article_id, COALESCE(SUM(quantity), 0)
		FROM transactions
		WHERE user_id = $1 AND type = 'sale' AND article_id IS NOT NULL
		GROUP BY article_id`
	return r.soldQuantities(ctx, query, userID)
}

// SoldQuantitiesByVariation devuelve las cantidades vendidas por variación de
// un usuario en una sola consulta.
func (r *TransactionRepo) SoldQuantitiesByVariation(ctx context.Context, userID string) (map[string]int64, error) {
	query := `
		SELECT variation_id, COALESCE(SUM(quantity), 0)
		FROM transactions
		WHERE user_id = $1 AND type = 'sale' AND variation_id IS NOT NULL
		GROUP BY variation_id`
	return r.soldQuantities(ctx, query, userID)
}

func (r *TransactionRepo) soldQuantities(ctx context.Context, query, userID string) (map[string]int64, error) {
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("sold quantities: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]int64)
	for rows.Next() {
		var id string
		var sum int64
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan sold quantity: %w", err)
		}
		sums[id] = sum
	}
	return sums, rows.Err()
}
