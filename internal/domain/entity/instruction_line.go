package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstructionLine representa el cupo de una instrucción de embarque para un
// producto y calidad. RemainingMass decrece a medida que se asignan fardos;
// solo un override de operador permite asignar por encima del cupo.
type InstructionLine struct {
	InstructionID string
	ProductID     string
	Grade         string
	RemainingMass decimal.Decimal
	UpdatedAt     time.Time
}
