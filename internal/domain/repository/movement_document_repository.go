package repository

import "github.com/jhoicas/Logistica-api/internal/domain/entity"

// MovementDocumentRepository define el puerto de persistencia para MovementDocument.
type MovementDocumentRepository interface {
	Create(doc *entity.MovementDocument) error
	GetByID(id string) (*entity.MovementDocument, error)
	// GetForUpdate bloquea la fila del documento dentro de la transacción actual.
	GetForUpdate(id string) (*entity.MovementDocument, error)
	List(state string, limit, offset int) ([]*entity.MovementDocument, error)
	Update(doc *entity.MovementDocument) error
}
