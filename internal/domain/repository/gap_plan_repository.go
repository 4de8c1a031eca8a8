package repository

import "github.com/jhoicas/Logistica-api/internal/domain/entity"

// GapPlanRepository define el puerto de persistencia para los planes de
// inserción de secuencia. Solo el insertador de huecos los muta.
type GapPlanRepository interface {
	Create(plan *entity.GapPlan) error
	GetByID(id string) (*entity.GapPlan, error)
	// GetForUpdate bloquea el plan dentro de la transacción actual.
	GetForUpdate(id string) (*entity.GapPlan, error)
	Update(plan *entity.GapPlan) error
}
