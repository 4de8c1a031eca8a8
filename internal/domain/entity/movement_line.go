package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementLine liga un fardo a un documento de movimiento. A lo sumo una
// línea activa (no cancelada) puede referenciar un fardo a la vez.
type MovementLine struct {
	ID         string
	DocumentID string
	UnitID     string
	Mass       decimal.Decimal
	Cancelled  bool
	CreatedAt  time.Time
	CreatedBy  string
}
