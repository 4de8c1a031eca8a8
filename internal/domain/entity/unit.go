package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un fardo.
const (
	UnitStateOpen       = "open"       // declarado, aún sin recibir
	UnitStateInStock    = "in_stock"   // recibido y en bodega
	UnitStateDispatched = "dispatched" // despachado hacia otra bodega
	UnitStatePosted     = "posted"     // contabilizado; estado terminal
)

// Estados de stock del fardo respecto a su bodega.
const (
	StockStatusNormal    = "normal"
	StockStatusInTransit = "in_transit"
	StockStatusSatellite = "satellite"
	StockStatusOutStock  = "out_stock"
)

// Etiquetas de auditoría de operaciones laterales (no cambian el estado).
const (
	OperationTagNone         = "none"
	OperationTagReclassified = "reclassified"
	OperationTagDeracked     = "deracked"
	OperationTagTicketed     = "ticketed"
)

// Unit representa un fardo: la unidad física rastreable de la cadena logística.
// Si PalletID no es nil, el fardo hereda la ubicación de su pallet.
type Unit struct {
	ID               string
	Barcode          string
	LogisticsBarcode string // código alterno (etiqueta logística); vacío si no tiene
	ProductID        string
	Grade            string
	Mass             decimal.Decimal
	ReceivedMass     decimal.Decimal
	WarehouseID      string
	LocationID       string
	PalletID         *string // nil = suelto, no consolidado en pallet
	StockStatus      string  // normal, in_transit, satellite, out_stock
	Received         bool
	State            string // open, in_stock, dispatched, posted
	OperationTag     string // none, reclassified, deracked, ticketed
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsFinalized indica si el fardo está en estado terminal (posted).
func (u *Unit) IsFinalized() bool {
	return u.State == UnitStatePosted
}
