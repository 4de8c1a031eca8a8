package movement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/movement"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func fardoRecibido() *entity.Unit {
	return &entity.Unit{
		ID:          "u-1",
		Barcode:     "FARDO-001",
		Received:    true,
		State:       entity.UnitStateInStock,
		StockStatus: entity.StockStatusNormal,
	}
}

func conPallet(u *entity.Unit, palletID string) *entity.Unit {
	u.PalletID = &palletID
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests StatePrecondition
// ──────────────────────────────────────────────────────────────────────────────

// El estado terminal posted rechaza cualquier operación.
func TestStatePrecondition_ContabilizadoRechazaTodo(t *testing.T) {
	u := fardoRecibido()
	u.State = entity.UnitStatePosted

	for _, op := range []movement.Operation{
		movement.OpReceive,
		movement.OpDispatchToWarehouse,
		movement.OpDispatchRack,
		movement.OpReclassify,
		movement.OpRelabel,
		movement.OpAssignToRack,
		movement.OpRemoveFromRack,
	} {
		d := movement.StatePrecondition(u, op)
		assert.True(t, d.Rejected(), "operación %s debe rechazarse sobre fardo contabilizado", op)
		assert.Equal(t, movement.ReasonAlreadyFinalized, d.Reason)
	}
}

func TestStatePrecondition_DespachoExigeRecepcion(t *testing.T) {
	u := fardoRecibido()
	u.Received = false
	u.State = entity.UnitStateOpen

	d := movement.StatePrecondition(u, movement.OpDispatchToWarehouse)
	assert.True(t, d.Rejected(), "un fardo no recibido no puede despacharse")
	assert.Equal(t, movement.ReasonInvalidState, d.Reason)
}

func TestStatePrecondition_DobleDespachoRechazado(t *testing.T) {
	u := fardoRecibido()
	u.State = entity.UnitStateDispatched

	d := movement.StatePrecondition(u, movement.OpDispatchRack)
	assert.True(t, d.Rejected(), "un fardo ya despachado no puede despacharse de nuevo")
	assert.Equal(t, movement.ReasonInvalidState, d.Reason)
}

func TestStatePrecondition_ReclasificarExigeFardoSuelto(t *testing.T) {
	suelto := fardoRecibido()
	assert.True(t, movement.StatePrecondition(suelto, movement.OpReclassify).Accepted())

	consolidado := conPallet(fardoRecibido(), "p-1")
	d := movement.StatePrecondition(consolidado, movement.OpReclassify)
	assert.True(t, d.Rejected(), "reclasificar exige desconsolidar primero")
	assert.Equal(t, movement.ReasonInvalidState, d.Reason)
}

func TestStatePrecondition_ConsolidarExigeSueltoYRecibido(t *testing.T) {
	yaEnPallet := conPallet(fardoRecibido(), "p-1")
	assert.True(t, movement.StatePrecondition(yaEnPallet, movement.OpAssignToRack).Rejected())

	noRecibido := fardoRecibido()
	noRecibido.Received = false
	assert.True(t, movement.StatePrecondition(noRecibido, movement.OpAssignToRack).Rejected())

	elegible := fardoRecibido()
	assert.True(t, movement.StatePrecondition(elegible, movement.OpAssignToRack).Accepted())
}

func TestStatePrecondition_DesconsolidarExigePallet(t *testing.T) {
	suelto := fardoRecibido()
	d := movement.StatePrecondition(suelto, movement.OpRemoveFromRack)
	assert.True(t, d.Rejected(), "desconsolidar un fardo suelto no tiene sentido")

	consolidado := conPallet(fardoRecibido(), "p-1")
	assert.True(t, movement.StatePrecondition(consolidado, movement.OpRemoveFromRack).Accepted())
}

func TestStatePrecondition_ReetiquetarSiemprePermitido(t *testing.T) {
	u := conPallet(fardoRecibido(), "p-1")
	u.StockStatus = entity.StockStatusInTransit
	assert.True(t, movement.StatePrecondition(u, movement.OpRelabel).Accepted())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests InternalStockEligible
// ──────────────────────────────────────────────────────────────────────────────

func TestInternalStockEligible_BodegaInternaRechazaTransito(t *testing.T) {
	interna := &entity.Warehouse{ID: "w-1", Name: "Central", Type: entity.WarehouseTypeInternal}

	enTransito := fardoRecibido()
	enTransito.StockStatus = entity.StockStatusInTransit
	d := movement.InternalStockEligible(enTransito, interna)
	assert.True(t, d.Rejected())
	assert.Equal(t, movement.ReasonInvalidState, d.Reason)
	assert.Contains(t, d.Message, "Central", "el mensaje debe nombrar la bodega")

	fuera := fardoRecibido()
	fuera.StockStatus = entity.StockStatusOutStock
	assert.True(t, movement.InternalStockEligible(fuera, interna).Rejected())

	normal := fardoRecibido()
	assert.True(t, movement.InternalStockEligible(normal, interna).Accepted())
}

func TestInternalStockEligible_BodegaExternaNoAplica(t *testing.T) {
	externa := &entity.Warehouse{ID: "w-2", Name: "Acopio", Type: entity.WarehouseTypeCollection}

	enTransito := fardoRecibido()
	enTransito.StockStatus = entity.StockStatusInTransit
	assert.True(t, movement.InternalStockEligible(enTransito, externa).Accepted(),
		"la regla de elegibilidad solo aplica a bodegas internas")

	assert.True(t, movement.InternalStockEligible(enTransito, nil).Accepted())
}
