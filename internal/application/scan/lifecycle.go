package scan

import (
	"time"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/movement"
)

// ApplyParams parámetros de una transición ya aceptada por el validador.
type ApplyParams struct {
	Document            *entity.MovementDocument
	Pallet              *entity.Pallet
	NewGrade            string
	NewLogisticsBarcode string
	Now                 time.Time
}

// Apply ejecuta la transición de estado sobre la copia en memoria del fardo.
// Es pura salvo por la mutación del struct recibido: el único write lo hace
// el caller dentro de su transacción. Las operaciones laterales estampan
// OperationTag sin cambiar State; RemoveFromRack solo limpia PalletID.
func Apply(u *entity.Unit, op movement.Operation, p ApplyParams) {
	switch op {
	case movement.OpReceive:
		u.Received = true
		u.State = entity.UnitStateInStock
		u.StockStatus = entity.StockStatusNormal
		u.ReceivedMass = u.Mass
		if p.Document != nil && p.Document.DestinationWarehouseID != "" {
			u.WarehouseID = p.Document.DestinationWarehouseID
		}

	case movement.OpDispatchToWarehouse, movement.OpDispatchRack:
		u.State = entity.UnitStateDispatched
		u.StockStatus = entity.StockStatusInTransit

	case movement.OpReclassify:
		u.Grade = p.NewGrade
		u.OperationTag = entity.OperationTagReclassified

	case movement.OpRelabel:
		u.LogisticsBarcode = p.NewLogisticsBarcode
		u.OperationTag = entity.OperationTagTicketed

	case movement.OpAssignToRack:
		palletID := p.Pallet.ID
		u.PalletID = &palletID
		// El fardo hereda la ubicación de su contenedor.
		u.WarehouseID = p.Pallet.WarehouseID
		u.LocationID = p.Pallet.LocationID

	case movement.OpRemoveFromRack:
		u.PalletID = nil
		u.OperationTag = entity.OperationTagDeracked
	}
	u.UpdatedAt = p.Now
}
