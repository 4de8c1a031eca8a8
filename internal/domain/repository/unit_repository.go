package repository

import "github.com/jhoicas/Logistica-api/internal/domain/entity"

// UnitRepository define el puerto de persistencia para Unit (DIP).
type UnitRepository interface {
	Create(unit *entity.Unit) error
	GetByID(id string) (*entity.Unit, error)
	// GetForUpdate bloquea la fila del fardo dentro de la transacción actual.
	GetForUpdate(id string) (*entity.Unit, error)
	GetByBarcode(barcode string) (*entity.Unit, error)
	GetByLogisticsBarcode(code string) (*entity.Unit, error)
	ListByPallet(palletID string) ([]*entity.Unit, error)
	Update(unit *entity.Unit) error
}
