package equity

import (
	"context"

	"github.com/gestockhq/gestock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El motor de participaciones lo usa para que
// el bloqueo de la fila del propietario, la mutación del colaborador y el
// ajuste de CompanyShare sean atómicos.
type TxRunner interface {
	RunEquity(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		collabRepo repository.CollaboratorRepository,
	) error) error
}
