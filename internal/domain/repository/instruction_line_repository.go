package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// InstructionLineRepository define el puerto de persistencia para los cupos
// de instrucción de embarque.
type InstructionLineRepository interface {
	Get(instructionID, productID, grade string) (*entity.InstructionLine, error)
	// GetForUpdate bloquea la fila del cupo dentro de la transacción actual.
	GetForUpdate(instructionID, productID, grade string) (*entity.InstructionLine, error)
	UpdateRemainingMass(instructionID, productID, grade string, remaining decimal.Decimal) error
}
