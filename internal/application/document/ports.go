package document

import (
	"context"

	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que el agregador de documentos necesita. Cada attach/close es
// una sola transacción: fardo + línea + contadores + cupo + operación pendiente.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		unitRepo repository.UnitRepository,
		docRepo repository.MovementDocumentRepository,
		lineRepo repository.MovementLineRepository,
		instructionRepo repository.InstructionLineRepository,
		pendingRepo repository.PendingOperationRepository,
	) error) error
}
