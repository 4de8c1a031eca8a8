package sequence

import (
	"context"

	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del insertador de huecos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		planRepo repository.GapPlanRepository,
		slotRepo repository.SequenceSlotRepository,
		pendingRepo repository.PendingOperationRepository,
	) error) error
}
