package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.PendingOperationRepository = (*PendingOperationRepo)(nil)

// PendingOperationRepo implementación de PendingOperationRepository sobre
// PostgreSQL. El núcleo solo inserta; el motor de sincronización consume la
// cola por fuera de esta API.
type PendingOperationRepo struct {
	q Querier
}

// NewPendingOperationRepository construye el adaptador de la cola de pendientes.
func NewPendingOperationRepository(q Querier) *PendingOperationRepo {
	return &PendingOperationRepo{q: q}
}

// Create encola una operación pendiente en la transacción actual.
func (r *PendingOperationRepo) Create(op *entity.PendingOperation) error {
	query := `
		INSERT INTO pending_operations
			(id, kind, unit_id, document_id, pallet_id, new_grade, new_logistics_barcode,
			 row_id, sequence, override, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		op.ID, op.Kind,
		nullable(op.UnitID), nullable(op.DocumentID), nullable(op.PalletID),
		nullable(op.NewGrade), nullable(op.NewLogisticsBarcode), nullable(op.RowID),
		op.Sequence, op.Override, op.CreatedAt, op.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert pending operation: %w", err)
	}
	return nil
}
