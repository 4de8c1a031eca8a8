package repository

import "github.com/jhoicas/Logistica-api/internal/domain/entity"

// MovementLineRepository define el puerto de persistencia para MovementLine.
// La exclusividad entre documentos se verifica consultando líneas activas,
// no con locks de aplicación.
type MovementLineRepository interface {
	Create(line *entity.MovementLine) error
	// GetActiveByUnit busca la línea activa (no cancelada) del fardo en
	// cualquier documento no contabilizado. nil si no hay.
	GetActiveByUnit(unitID string) (*entity.MovementLine, error)
	GetByDocumentAndUnit(documentID, unitID string) (*entity.MovementLine, error)
	ListByDocument(documentID string) ([]*entity.MovementLine, error)
}
