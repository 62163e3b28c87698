package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestockhq/gestock-api/internal/domain"
	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

var _ repository.VariationRepository = (*VariationRepo)(nil)

// VariationRepo implementación del puerto VariationRepository sobre PostgreSQL (usable con pool o tx).
type VariationRepo struct {
	q Querier
}

// NewVariationRepository construye el adaptador de persistencia para variaciones. Pasar pool o tx (Querier).
func NewVariationRepository(q Querier) *VariationRepo {
	return &VariationRepo{q: q}
}

const variationColumns = `id, article_id, name, quantity, image, created_at, updated_at`

func scanVariation(row pgx.Row) (*entity.Variation, error) {
	var v entity.Variation
	err := row.Scan(&v.ID, &v.ArticleID, &v.Name, &v.Quantity, &v.Image, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan variation: %w", err)
	}
	return &v, nil
}

// Create persiste una nueva variación.
func (r *VariationRepo) Create(ctx context.Context, variation *entity.Variation) error {
	query := `
		INSERT INTO variations (` + variationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		variation.ID, variation.ArticleID, variation.Name, variation.Quantity,
		variation.Image, variation.CreatedAt, variation.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variation: %w", err)
	}
	return nil
}

// GetByID obtiene una variación por ID.
func (r *VariationRepo) GetByID(ctx context.Context, id string) (*entity.Variation, error) {
	return scanVariation(r.q.QueryRow(ctx,
		`SELECT `+variationColumns+` FROM variations WHERE id = $1`, id))
}

// ListByArticle lista las variaciones de un artículo.
func (r *VariationRepo) ListByArticle(ctx context.Context, articleID string) ([]*entity.Variation, error) {
	query := `SELECT ` + variationColumns + ` FROM variations WHERE article_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("list variations: %w", err)
	}
	defer rows.Close()
	return collectVariations(rows)
}

// ListByUser lista las variaciones de todos los artículos de un usuario.
func (r *VariationRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Variation, error) {
	query := `
		SELECT v.id, v.article_id, v.name, v.quantity, v.image, v.created_at, v.updated_at
		FROM variations v
		JOIN articles a ON a.id = v.article_id
		WHERE a.user_id = $1
		ORDER BY v.created_at`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list variations by user: %w", err)
	}
	defer rows.Close()
	return collectVariations(rows)
}

func collectVariations(rows pgx.Rows) ([]*entity.Variation, error) {
	var list []*entity.Variation
	for rows.Next() {
		v, err := scanVariation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// GetByArticleAndName busca una variación por nombre dentro de un artículo,
// excluyendo excludeID cuando se valida la unicidad al editar.
func (r *VariationRepo) GetByArticleAndName(ctx context.Context, articleID, name, excludeID string) (*entity.Variation, error) {
	query := `
		SELECT ` + variationColumns + `
		FROM variations
		WHERE article_id = $1 AND name = $2 AND ($3 = '' OR id <> $3)`
	return scanVariation(r.q.QueryRow(ctx, query, articleID, name, excludeID))
}

// SumQuantityByArticle suma las cantidades de las variaciones de un artículo,
// excluyendo excludeID cuando se edita una de ellas.
func (r *VariationRepo) SumQuantityByArticle(ctx context.Context, articleID, excludeID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM variations
		WHERE article_id = $1 AND ($2 = '' OR id <> $2)`
	var sum int64
	if err := r.q.QueryRow(ctx, query, articleID, excludeID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum variation quantity: %w", err)
	}
	return sum, nil
}

// Update actualiza una variación. No permite cambiar article_id.
func (r *VariationRepo) Update(ctx context.Context, variation *entity.Variation) error {
	query := `
		UPDATE variations SET name = $2, quantity = $3, image = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		variation.ID, variation.Name, variation.Quantity, variation.Image, variation.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update variation: %w", err)
	}
	return nil
}

// Delete elimina una variación por ID.
func (r *VariationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM variations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete variation: %w", err)
	}
	return nil
}
