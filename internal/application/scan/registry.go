package scan

import (
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// Registry resuelve un código escaneado a su fardo: primero por código de
// barras primario, luego por el código logístico alterno. Sin efectos
// secundarios; escaneos repetidos del mismo código devuelven el mismo snapshot.
type Registry struct {
	unitRepo repository.UnitRepository
}

// NewRegistry construye el registro de fardos.
func NewRegistry(unitRepo repository.UnitRepository) *Registry {
	return &Registry{unitRepo: unitRepo}
}

// Resolve busca el fardo para un código escaneado. nil si no existe.
func (r *Registry) Resolve(code string) (*entity.Unit, error) {
	unit, err := r.unitRepo.GetByBarcode(code)
	if err != nil {
		return nil, err
	}
	if unit != nil {
		return unit, nil
	}
	return r.unitRepo.GetByLogisticsBarcode(code)
}
