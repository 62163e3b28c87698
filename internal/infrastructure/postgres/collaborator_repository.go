package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestockhq/gestock-api/internal/domain/entity"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

var _ repository.CollaboratorRepository = (*CollaboratorRepo)(nil)

// CollaboratorRepo implementación del puerto CollaboratorRepository sobre PostgreSQL (usable con pool o tx).
type CollaboratorRepo struct {
	q Querier
}

// NewCollaboratorRepository construye el adaptador de persistencia para colaboradores. Pasar pool o tx (Querier).
func NewCollaboratorRepository(q Querier) *CollaboratorRepo {
	return &CollaboratorRepo{q: q}
}

const collaboratorColumns = `id, user_id, name, phone, part, image, created_at, updated_at`

func scanCollaborator(row pgx.Row) (*entity.Collaborator, error) {
	var c entity.Collaborator
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Part, &c.Image, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan collaborator: %w", err)
	}
	return &c, nil
}

// Create persiste un nuevo colaborador con su participación.
func (r *CollaboratorRepo) Create(ctx context.Context, collaborator *entity.Collaborator) error {
	query := `
		INSERT INTO collaborators (` + collaboratorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		collaborator.ID, collaborator.UserID, collaborator.Name, collaborator.Phone,
		collaborator.Part, collaborator.Image, collaborator.CreatedAt, collaborator.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert collaborator: %w", err)
	}
	return nil
}

// GetByIDAndUser obtiene un colaborador verificando que pertenece al usuario.
func (r *CollaboratorRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*entity.Collaborator, error) {
	return scanCollaborator(r.q.QueryRow(ctx,
		`SELECT `+collaboratorColumns+` FROM collaborators WHERE id = $1 AND user_id = $2`, id, userID))
}

// ListByUser lista los colaboradores de un usuario.
func (r *CollaboratorRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Collaborator, error) {
	query := `SELECT ` + collaboratorColumns + ` FROM collaborators WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}
	defer rows.Close()

	var list []*entity.Collaborator
	for rows.Next() {
		c, err := scanCollaborator(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los campos no financieros de un colaborador. Part es
// inmutable y no aparece en el SET.
func (r *CollaboratorRepo) Update(ctx context.Context, collaborator *entity.Collaborator) error {
	query := `
		UPDATE collaborators SET name = $2, phone = $3, image = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		collaborator.ID, collaborator.Name, collaborator.Phone, collaborator.Image, collaborator.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update collaborator: %w", err)
	}
	return nil
}

// Delete elimina un colaborador por ID.
func (r *CollaboratorRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM collaborators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete collaborator: %w", err)
	}
	return nil
}
