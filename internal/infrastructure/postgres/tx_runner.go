package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestockhq/gestock-api/internal/application/equity"
	"github.com/gestockhq/gestock-api/internal/application/transaction"
	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

var _ transaction.TxRunner = (*TxRunner)(nil)
var _ equity.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del motor de ventas
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	articleRepo repository.ArticleRepository,
	variationRepo repository.VariationRepository,
	txRepo repository.TransactionRepository,
	notifRepo repository.NotificationRepository,
	settingRepo repository.SettingRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	articleRepo := NewArticleRepository(tx)
	variationRepo := NewVariationRepository(tx)
	txRepo := NewTransactionRepository(tx)
	notifRepo := NewNotificationRepository(tx)
	settingRepo := NewSettingRepository(tx)

	if err := fn(articleRepo, variationRepo, txRepo, notifRepo, settingRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunEquity inicia una transacción con los repos de participaciones. El
// candado sobre la fila del usuario (GetByIDForUpdate) serializa las altas y
// bajas de colaboradores de un mismo propietario.
func (r *TxRunner) RunEquity(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	collabRepo repository.CollaboratorRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)
	collabRepo := NewCollaboratorRepository(tx)

	if err := fn(userRepo, collabRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
