package inventory

import (
	"context"

	"github.com/jhoicas/LabStock-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repos atados a una misma transacción.
// La implementación PostgreSQL hace Begin/Commit/Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		lotRepo repository.LotRepository,
		reagentRepo repository.ReagentRepository,
	) error) error
}
