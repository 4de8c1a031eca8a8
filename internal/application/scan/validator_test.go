package scan_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/application/scan"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/movement"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store     *memory.Store
	validator *scan.Validator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{
		store: store,
		validator: scan.NewValidator(
			store.Lines(), store.Warehouses(), store.Products(), store.Instructions(),
		),
	}
}

func (f *fixture) seedUnit(t *testing.T, u *entity.Unit) {
	t.Helper()
	require.NoError(t, f.store.Units().Create(u))
}

func fardoEnBodega(id, barcode, warehouseID string) *entity.Unit {
	return &entity.Unit{
		ID:          id,
		Barcode:     barcode,
		ProductID:   "prod-1",
		Grade:       "A",
		Mass:        decimal.NewFromInt(200),
		WarehouseID: warehouseID,
		StockStatus: entity.StockStatusNormal,
		Received:    true,
		State:       entity.UnitStateInStock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla 3: exclusividad entre documentos abiertos
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_FardoActivoEnOtroDocumentoRechazado(t *testing.T) {
	f := newFixture(t)
	u := fardoEnBodega("u-1", "FARDO-001", "w-1")
	f.seedUnit(t, u)

	otro := &entity.MovementDocument{ID: "doc-abierto", Kind: entity.DocumentKindDispatch, State: entity.DocumentStateDraft}
	require.NoError(t, f.store.Documents().Create(otro))
	require.NoError(t, f.store.Lines().Create(&entity.MovementLine{
		ID: "l-1", DocumentID: otro.ID, UnitID: u.ID, Mass: u.Mass, CreatedAt: time.Now(),
	}))

	nuevo := &entity.MovementDocument{ID: "doc-nuevo", Kind: entity.DocumentKindDispatch, State: entity.DocumentStateDraft}
	d, err := f.validator.Validate(u, movement.OpDispatchToWarehouse, scan.ValidationContext{Document: nuevo})
	require.NoError(t, err)
	assert.True(t, d.Rejected())
	assert.Equal(t, movement.ReasonAlreadyActive, d.Reason)
	assert.Equal(t, otro.ID, d.DocumentID, "la decisión debe nombrar el documento en conflicto")
}

func TestValidate_LineaEnDocumentoContabilizadoNoBloquea(t *testing.T) {
	f := newFixture(t)
	u := fardoEnBodega("u-1", "FARDO-001", "w-1")
	f.seedUnit(t, u)

	cerrado := &entity.MovementDocument{ID: "doc-cerrado", Kind: entity.DocumentKindReceipt, State: entity.DocumentStatePosted}
	require.NoError(t, f.store.Documents().Create(cerrado))
	require.NoError(t, f.store.Lines().Create(&entity.MovementLine{
		ID: "l-1", DocumentID: cerrado.ID, UnitID: u.ID, Mass: u.Mass,
	}))

	nuevo := &entity.MovementDocument{ID: "doc-nuevo", Kind: entity.DocumentKindDispatch, State: entity.DocumentStateDraft}
	d, err := f.validator.Validate(u, movement.OpDispatchToWarehouse, scan.ValidationContext{Document: nuevo})
	require.NoError(t, err)
	assert.True(t, d.Accepted(), "una línea en documento contabilizado no cuenta como activa")
}

func TestValidate_FardoActivoNoPuedeReclasificarse(t *testing.T) {
	f := newFixture(t)
	u := fardoEnBodega("u-1", "FARDO-001", "w-1")
	f.seedUnit(t, u)

	abierto := &entity.MovementDocument{ID: "doc-abierto", Kind: entity.DocumentKindDispatch, State: entity.DocumentStateDraft}
	require.NoError(t, f.store.Documents().Create(abierto))
	require.NoError(t, f.store.Lines().Create(&entity.MovementLine{
		ID: "l-1", DocumentID: abierto.ID, UnitID: u.ID, Mass: u.Mass,
	}))

	// Reclasificar cambiaría la calidad de la que depende el cupo ya descontado.
	d, err := f.validator.Validate(u, movement.OpReclassify, scan.ValidationContext{NewGrade: "B"})
	require.NoError(t, err)
	assert.True(t, d.Rejected())
	assert.Equal(t, movement.ReasonAlreadyActive, d.Reason)
	assert.Equal(t, abierto.ID, d.DocumentID)

	// Consolidar heredaría otra ubicación con el fardo listado en la guía.
	pallet := &entity.Pallet{ID: "p-1", Barcode: "PAL-001", Capacity: 30, CurrentLoad: 1}
	d, err = f.validator.Validate(u, movement.OpAssignToRack, scan.ValidationContext{Pallet: pallet})
	require.NoError(t, err)
	assert.True(t, d.Rejected())
	assert.Equal(t, movement.ReasonAlreadyActive, d.Reason)

	// Re-etiquetar solo cambia el código alterno: sigue permitido.
	d, err = f.validator.Validate(u, movement.OpRelabel, scan.ValidationContext{})
	require.NoError(t, err)
	assert.True(t, d.Accepted())
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla 4: bodega de empaque contraparte
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_EmpaqueContraparteIncompatibleRechazado(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Warehouses().Create(&entity.Warehouse{
		ID: "emp-a", Name: "Empaque Norte", Type: entity.WarehouseTypeExternal,
	}))
	require.NoError(t, f.store.Warehouses().Create(&entity.Warehouse{
		ID: "emp-b", Name: "Empaque Sur", Type: entity.WarehouseTypeExternal,
	}))
	require.NoError(t, f.store.Warehouses().Create(&entity.Warehouse{
		ID: "dest", Name: "Destino", Type: entity.WarehouseTypeExternal, PackingWarehouseID: "emp-a",
	}))
	require.NoError(t, f.store.Products().Create(&entity.Product{
		ID: "prod-1", Code: "P1", Name: "Tabaco A", PackingWarehouseID: "emp-b",
	}))

	u := fardoEnBodega("u-1", "FARDO-001", "w-1")
	f.seedUnit(t, u)
	doc := &entity.MovementDocument{
		ID: "doc-1", Kind: entity.DocumentKindDispatch,
		DestinationWarehouseID: "dest", State: entity.DocumentStateDraft,
	}

	d, err := f.validator.Validate(u, movement.OpDispatchToWarehouse, scan.ValidationContext{Document: doc})
	require.NoError(t, err)
	assert.True(t, d.Rejected())
	assert.Equal(t, movement.ReasonLocationMismatch, d.Reason)
	assert.Contains(t, d.Message, "Empaque Norte", "el mensaje debe nombrar la bodega en conflicto")
}

func TestValidate_EmpaqueContraparteCompatibleAceptado(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Warehouses().Create(&entity.Warehouse{
		ID: "emp-a", Name: "Empaque Norte", Type: entity.WarehouseTypeExternal,
	}))
	require.NoError(t, f.store.Warehouses().Create(&entity.Warehouse{
		ID: "dest", Name: "Destino", Type: entity.WarehouseTypeExternal, PackingWarehouseID: "emp-a",
	}))
	require.NoError(t, f.store.Products().Create(&entity.Product{
		ID: "prod-1", Code: "P1", Name: "Tabaco A", PackingWarehouseID: "emp-a",
	}))

	u := fardoEnBodega("u-1", "FARDO-001", "w-1")
	f.seedUnit(t, u)
	doc := &entity.MovementDocument{
		ID: "doc-1", Kind: entity.DocumentKindDispatch,
		DestinationWarehouseID: "dest", State: entity.DocumentStateDraft,
	}

	d, err := f.validator.Validate(u, movement.OpDispatchToWarehouse, scan.ValidationContext{Document: doc})
	require.NoError(t, err)
	assert.True(t, d.Accepted())
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla 5: producto declarado
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_ProductoDistintoAlDeclaradoRechazado(t *testing.T) {
	f := newFixture(t)
	u := fardoEnBodega("u-1", "FARDO-001", "w-1")
	f.seedUnit(t, u)

	doc := &entity.MovementDocument{
		ID: "doc-1", Kind: entity.DocumentKindReceipt,
		ProductID: "prod-otro", State: entity.DocumentStateDraft,
	}
	d, err := f.validator.Validate(u, movement.OpReceive, scan.ValidationContext{Document: doc})
	require.NoError(t, err)
	assert.True(t, d.Rejected())
	assert.Equal(t, movement.ReasonProductMismatch, d.Reason)
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla 7 antes que la 6: un rechazo duro nunca se enmascara con override
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_ElegibilidadInternaGanaALaCuota(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Warehouses().Create(&entity.Warehouse{
		ID: "w-int", Name: "Central", Type: entity.WarehouseTypeInternal,
	}))
	f.store.SeedInstruction(&entity.InstructionLine{
		InstructionID: "instr-1", ProductID: "prod-1", Grade: "A",
		RemainingMass: decimal.NewFromInt(1), // la cuota también dispararía
	})

	u := fardoEnBodega("u-1", "FARDO-001", "w-int")
	u.StockStatus = entity.StockStatusInTransit
	f.seedUnit(t, u)

	doc := &entity.MovementDocument{
		ID: "doc-1", Kind: entity.DocumentKindDispatch,
		SourceWarehouseID: "w-int", InstructionID: "instr-1", State: entity.DocumentStateDraft,
	}
	d, err := f.validator.Validate(u, movement.OpDispatchToWarehouse, scan.ValidationContext{Document: doc})
	require.NoError(t, err)
	assert.True(t, d.Rejected(), "el rechazo duro de elegibilidad debe ganar al override de cuota")
	assert.Equal(t, movement.ReasonInvalidState, d.Reason)
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla 6: cuota de instrucción → override, nunca rechazo duro
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_CuotaExcedidaDegradaAOverride(t *testing.T) {
	f := newFixture(t)
	f.store.SeedInstruction(&entity.InstructionLine{
		InstructionID: "instr-1", ProductID: "prod-1", Grade: "A",
		RemainingMass: decimal.NewFromInt(100),
	})
	u := fardoEnBodega("u-1", "FARDO-001", "w-1")
	u.Mass = decimal.NewFromInt(200)
	f.seedUnit(t, u)

	doc := &entity.MovementDocument{
		ID: "doc-1", Kind: entity.DocumentKindDispatch,
		InstructionID: "instr-1", State: entity.DocumentStateDraft,
	}
	d, err := f.validator.Validate(u, movement.OpDispatchToWarehouse, scan.ValidationContext{Document: doc})
	require.NoError(t, err)
	assert.True(t, d.NeedsOverride(), "cuota excedida acepta con confirmación, no rechaza")
	assert.Equal(t, movement.ReasonQuotaExceeded, d.Reason)
	assert.True(t, d.Overridable)
}

func TestValidate_InstruccionSinCuotaParaProductoRechazada(t *testing.T) {
	f := newFixture(t)
	u := fardoEnBodega("u-1", "FARDO-001", "w-1")
	f.seedUnit(t, u)

	doc := &entity.MovementDocument{
		ID: "doc-1", Kind: entity.DocumentKindDispatch,
		InstructionID: "instr-sin-cupo", State: entity.DocumentStateDraft,
	}
	d, err := f.validator.Validate(u, movement.OpDispatchToWarehouse, scan.ValidationContext{Document: doc})
	require.NoError(t, err)
	assert.True(t, d.Rejected(), "una instrucción que no ampara producto/calidad rechaza duro")
	assert.Equal(t, movement.ReasonProductMismatch, d.Reason)
}

// ──────────────────────────────────────────────────────────────────────────────
// Capacidad de pallet en consolidación
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_PalletLlenoDegradaAOverride(t *testing.T) {
	f := newFixture(t)
	u := fardoEnBodega("u-1", "FARDO-001", "w-1")
	f.seedUnit(t, u)

	lleno := &entity.Pallet{ID: "p-1", Barcode: "PAL-001", Capacity: 30, CurrentLoad: 30}
	d, err := f.validator.Validate(u, movement.OpAssignToRack, scan.ValidationContext{Pallet: lleno})
	require.NoError(t, err)
	assert.True(t, d.NeedsOverride())
	assert.Equal(t, movement.ReasonCapacityExceeded, d.Reason)

	conEspacio := &entity.Pallet{ID: "p-2", Barcode: "PAL-002", Capacity: 30, CurrentLoad: 12}
	d, err = f.validator.Validate(u, movement.OpAssignToRack, scan.ValidationContext{Pallet: conEspacio})
	require.NoError(t, err)
	assert.True(t, d.Accepted())
}

// ──────────────────────────────────────────────────────────────────────────────
// Terminal
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_FardoContabilizadoInmutable(t *testing.T) {
	f := newFixture(t)
	u := fardoEnBodega("u-1", "FARDO-001", "w-1")
	u.State = entity.UnitStatePosted
	f.seedUnit(t, u)

	d, err := f.validator.Validate(u, movement.OpReclassify, scan.ValidationContext{NewGrade: "B"})
	require.NoError(t, err)
	assert.True(t, d.Rejected())
	assert.Equal(t, movement.ReasonAlreadyFinalized, d.Reason)
}
