package movement

import (
	"fmt"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// StatePrecondition aplica la regla 2 del validador: precondiciones de estado
// por operación. Es pura: solo mira los campos del fardo. El estado terminal
// posted rechaza cualquier operación con ALREADY_FINALIZED.
func StatePrecondition(u *entity.Unit, op Operation) Decision {
	if u.IsFinalized() {
		return Reject(ReasonAlreadyFinalized,
			fmt.Sprintf("el fardo %s ya fue contabilizado", u.Barcode)).
			WithUnit(u.ID, u.Barcode)
	}

	switch op {
	case OpReceive:
		// Re-recepción del mismo código es idempotente; se resuelve por
		// existencia de línea en el agregador, no aquí.

	case OpDispatchToWarehouse, OpDispatchRack:
		if !u.Received {
			return Reject(ReasonInvalidState,
				fmt.Sprintf("el fardo %s no ha sido recibido; no puede despacharse", u.Barcode)).
				WithUnit(u.ID, u.Barcode)
		}
		if u.State == entity.UnitStateDispatched {
			return Reject(ReasonInvalidState,
				fmt.Sprintf("el fardo %s ya está despachado", u.Barcode)).
				WithUnit(u.ID, u.Barcode)
		}

	case OpReclassify:
		if u.PalletID != nil {
			return Reject(ReasonInvalidState,
				fmt.Sprintf("el fardo %s está consolidado en pallet; debe desconsolidarse antes de reclasificar", u.Barcode)).
				WithUnit(u.ID, u.Barcode)
		}

	case OpRelabel:
		// Sin precondición de estado adicional.

	case OpAssignToRack:
		if u.PalletID != nil {
			return Reject(ReasonInvalidState,
				fmt.Sprintf("el fardo %s ya pertenece a un pallet", u.Barcode)).
				WithUnit(u.ID, u.Barcode)
		}
		if !u.Received {
			return Reject(ReasonInvalidState,
				fmt.Sprintf("el fardo %s no ha sido recibido; no puede consolidarse", u.Barcode)).
				WithUnit(u.ID, u.Barcode)
		}

	case OpRemoveFromRack:
		if u.PalletID == nil {
			return Reject(ReasonInvalidState,
				fmt.Sprintf("el fardo %s no está en ningún pallet", u.Barcode)).
				WithUnit(u.ID, u.Barcode)
		}
	}
	return Accept()
}

// InternalStockEligible aplica la regla 7: en bodegas de origen internas el
// fardo no puede estar en tránsito ni fuera de stock.
func InternalStockEligible(u *entity.Unit, source *entity.Warehouse) Decision {
	if source == nil || source.Type != entity.WarehouseTypeInternal {
		return Accept()
	}
	if u.StockStatus == entity.StockStatusInTransit || u.StockStatus == entity.StockStatusOutStock {
		return Reject(ReasonInvalidState,
			fmt.Sprintf("el fardo %s tiene estado de stock %s y no es elegible en bodega interna %s",
				u.Barcode, u.StockStatus, source.Name)).
			WithUnit(u.ID, u.Barcode).
			WithWarehouse(source.ID)
	}
	return Accept()
}
