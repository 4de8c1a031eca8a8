package scan

import (
	"context"

	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad de cada escaneo aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		unitRepo repository.UnitRepository,
		palletRepo repository.PalletRepository,
		pendingRepo repository.PendingOperationRepository,
	) error) error
}
