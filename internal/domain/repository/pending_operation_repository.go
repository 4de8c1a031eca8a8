package repository

import "github.com/jhoicas/Logistica-api/internal/domain/entity"

// PendingOperationRepository define el puerto de la cola de operaciones
// pendientes. El núcleo solo inserta; el motor de sincronización consume.
type PendingOperationRepository interface {
	Create(op *entity.PendingOperation) error
}
