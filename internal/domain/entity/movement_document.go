package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clases de documento de movimiento.
const (
	DocumentKindDispatch       = "dispatch"        // guía de despacho
	DocumentKindReceipt        = "receipt"         // nota de recepción
	DocumentKindMissingReceipt = "missing_receipt" // recepción de faltantes
)

// Estados de documento.
const (
	DocumentStateDraft  = "draft"
	DocumentStatePosted = "posted"
)

// MovementDocument agrupa movimientos de fardos bajo una guía de despacho,
// nota de recepción o nota de faltantes. Solo puede pasar a posted cuando
// la captura alcanza lo esperado y existe al menos una línea.
type MovementDocument struct {
	ID                     string
	Kind                   string // dispatch, receipt, missing_receipt
	SourceWarehouseID      string
	DestinationWarehouseID string
	ProductID              string // vacío = sin producto declarado
	InstructionID          string // vacío = sin instrucción de embarque
	State                  string // draft, posted
	ExpectedUnitCount      int
	CapturedUnitCount      int
	ShippedMass            decimal.Decimal
	ReceivedMass           decimal.Decimal
	CreatedAt              time.Time
	UpdatedAt              time.Time
	CreatedBy              string
}

// IsReceiptStyle indica si el documento exige captura completa para cerrar.
func (d *MovementDocument) IsReceiptStyle() bool {
	return d.Kind == DocumentKindReceipt || d.Kind == DocumentKindMissingReceipt
}

// IsFinalized indica si el documento ya fue contabilizado.
func (d *MovementDocument) IsFinalized() bool {
	return d.State == DocumentStatePosted
}
