package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL (usable con pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

const articleColumns = `id, user_id, name, sale_price, quantity, type, image, created_at, updated_at`

func scanArticle(row pgx.Row) (*entity.Article, error) {
	var a entity.Article
	err := row.Scan(
		&a.ID, &a.UserID, &a.Name, &a.SalePrice, &a.Quantity, &a.Type,
		&a.Image, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan article: %w", err)
	}
	return &a, nil
}

// Create persiste un nuevo artículo.
func (r *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		article.ID, article.UserID, article.Name, article.SalePrice, article.Quantity,
		article.Type, article.Image, article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	return scanArticle(r.q.QueryRow(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
}

// GetByIDForUpdate obtiene un artículo bloqueando su fila. El motor de ventas
// lo usa dentro de la transacción para serializar las ventas concurrentes
// sobre el mismo artículo.
func (r *ArticleRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Article, error) {
	return scanArticle(r.q.QueryRow(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = $1 FOR UPDATE`, id))
}

// ListByUser lista los artículos de un usuario, más recientes primero.
func (r *ArticleRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	return collectArticles(rows)
}

// ListAll lista los artículos de todos los usuarios (mantenimiento).
func (r *ArticleRepo) ListAll(ctx context.Context) ([]*entity.Article, error) {
	rows, err := r.q.Query(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list all articles: %w", err)
	}
	defer rows.Close()
	return collectArticles(rows)
}

func collectArticles(rows pgx.Rows) ([]*entity.Article, error) {
	var list []*entity.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update actualiza un artículo. No permite cambiar type ni user_id.
func (r *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	query := `
		UPDATE articles SET name = $2, sale_price = $3, quantity = $4, image = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		article.ID, article.Name, article.SalePrice, article.Quantity, article.Image, article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo la cantidad (corrección de stock negativo).
func (r *ArticleRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	_, err := r.q.Exec(ctx,
		`UPDATE articles SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update article quantity: %w", err)
	}
	return nil
}

// Delete elimina un artículo; las variaciones caen por ON DELETE CASCADE.
func (r *ArticleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}
