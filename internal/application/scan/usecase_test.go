package scan_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/application/scan"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/movement"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type scanFixture struct {
	store *memory.Store
	uc    *scan.ProcessScanUseCase
}

func newScanFixture(t *testing.T) *scanFixture {
	t.Helper()
	store := memory.NewStore()
	registry := scan.NewRegistry(store.Units())
	validator := scan.NewValidator(
		store.Lines(), store.Warehouses(), store.Products(), store.Instructions(),
	)
	uc := scan.NewProcessScanUseCase(
		&memory.ScanTxRunner{S: store}, registry, validator, store.Pallets(),
	)
	return &scanFixture{store: store, uc: uc}
}

func (f *scanFixture) seedFardoSuelto(t *testing.T, id, barcode string) {
	t.Helper()
	require.NoError(t, f.store.Units().Create(&entity.Unit{
		ID: id, Barcode: barcode,
		ProductID: "prod-1", Grade: "A",
		Mass:        decimal.NewFromInt(200),
		WarehouseID: "w-1",
		StockStatus: entity.StockStatusNormal,
		Received:    true,
		State:       entity.UnitStateInStock,
	}))
}

func (f *scanFixture) seedPallet(t *testing.T, load, capacity int) *entity.Pallet {
	t.Helper()
	p := &entity.Pallet{
		ID: "p-1", Barcode: "PAL-001",
		WarehouseID: "w-2", LocationID: "loc-7",
		Capacity: capacity, CurrentLoad: load,
	}
	require.NoError(t, f.store.Pallets().Create(p))
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Reclasificación y re-etiquetado
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessScan_ReclasificaYRegistraOperacionPendiente(t *testing.T) {
	f := newScanFixture(t)
	f.seedFardoSuelto(t, "u-1", "FARDO-001")

	d, err := f.uc.ProcessScan(context.Background(), scan.ScanInputDTO{
		UserID: "op-1", Code: "FARDO-001",
		Operation: movement.OpReclassify, NewGrade: "B",
	})
	require.NoError(t, err)
	assert.True(t, d.Accepted())

	u, err := f.store.Units().GetByID("u-1")
	require.NoError(t, err)
	assert.Equal(t, "B", u.Grade)
	assert.Equal(t, entity.OperationTagReclassified, u.OperationTag)

	ops := f.store.PendingOperations()
	require.Len(t, ops, 1)
	assert.Equal(t, entity.PendingOpReclassify, ops[0].Kind)
	assert.Equal(t, "B", ops[0].NewGrade)
}

func TestProcessScan_ReclasificarSinCalidadEsEntradaInvalida(t *testing.T) {
	f := newScanFixture(t)
	_, err := f.uc.ProcessScan(context.Background(), scan.ScanInputDTO{
		UserID: "op-1", Code: "FARDO-001", Operation: movement.OpReclassify,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcessScan_ReetiquetaConCodigoLogistico(t *testing.T) {
	f := newScanFixture(t)
	f.seedFardoSuelto(t, "u-1", "FARDO-001")

	d, err := f.uc.ProcessScan(context.Background(), scan.ScanInputDTO{
		UserID: "op-1", Code: "FARDO-001",
		Operation: movement.OpRelabel, NewLogisticsBarcode: "LOG-999",
	})
	require.NoError(t, err)
	assert.True(t, d.Accepted())

	u, err := f.store.Units().GetByID("u-1")
	require.NoError(t, err)
	assert.Equal(t, "LOG-999", u.LogisticsBarcode)

	// El código logístico también resuelve al fardo en escaneos posteriores.
	d, err = f.uc.ProcessScan(context.Background(), scan.ScanInputDTO{
		UserID: "op-1", Code: "LOG-999",
		Operation: movement.OpReclassify, NewGrade: "C",
	})
	require.NoError(t, err)
	assert.True(t, d.Accepted())
}

func TestProcessScan_FardoEnDocumentoAbiertoNoSeReclasifica(t *testing.T) {
	f := newScanFixture(t)
	f.seedFardoSuelto(t, "u-1", "FARDO-001")

	guia := &entity.MovementDocument{ID: "doc-abierto", Kind: entity.DocumentKindDispatch, State: entity.DocumentStateDraft}
	require.NoError(t, f.store.Documents().Create(guia))
	require.NoError(t, f.store.Lines().Create(&entity.MovementLine{
		ID: "l-1", DocumentID: guia.ID, UnitID: "u-1", Mass: decimal.NewFromInt(200),
	}))

	d, err := f.uc.ProcessScan(context.Background(), scan.ScanInputDTO{
		UserID: "op-1", Code: "FARDO-001",
		Operation: movement.OpReclassify, NewGrade: "B",
	})
	require.NoError(t, err)
	assert.True(t, d.Rejected())
	assert.Equal(t, movement.ReasonAlreadyActive, d.Reason)
	assert.Equal(t, guia.ID, d.DocumentID)

	u, err := f.store.Units().GetByID("u-1")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Grade, "la calidad no cambia mientras la guía siga abierta")
	assert.Empty(t, f.store.PendingOperations())
}

func TestProcessScan_CodigoDesconocidoRechazado(t *testing.T) {
	f := newScanFixture(t)
	d, err := f.uc.ProcessScan(context.Background(), scan.ScanInputDTO{
		UserID: "op-1", Code: "NO-EXISTE",
		Operation: movement.OpRelabel, NewLogisticsBarcode: "LOG-1",
	})
	require.NoError(t, err)
	assert.True(t, d.Rejected())
	assert.Equal(t, movement.ReasonNotFound, d.Reason)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consolidación: la carga del pallet siempre se mueve ±1
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessScan_ConsolidarIncrementaCargaYHeredaUbicacion(t *testing.T) {
	f := newScanFixture(t)
	f.seedFardoSuelto(t, "u-1", "FARDO-001")
	p := f.seedPallet(t, 5, 30)

	d, err := f.uc.ProcessScan(context.Background(), scan.ScanInputDTO{
		UserID: "op-1", Code: "FARDO-001",
		Operation: movement.OpAssignToRack, PalletBarcode: p.Barcode,
	})
	require.NoError(t, err)
	assert.True(t, d.Accepted())

	u, err := f.store.Units().GetByID("u-1")
	require.NoError(t, err)
	require.NotNil(t, u.PalletID)
	assert.Equal(t, p.ID, *u.PalletID)
	assert.Equal(t, "w-2", u.WarehouseID, "el fardo hereda la bodega del pallet")
	assert.Equal(t, "loc-7", u.LocationID)

	got, err := f.store.Pallets().GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.CurrentLoad)
}

func TestProcessScan_DesconsolidarDecrementaCargaDelPalletOrigen(t *testing.T) {
	f := newScanFixture(t)
	p := f.seedPallet(t, 5, 30)
	require.NoError(t, f.store.Units().Create(&entity.Unit{
		ID: "u-1", Barcode: "FARDO-001",
		ProductID: "prod-1", Grade: "A",
		Mass:        decimal.NewFromInt(200),
		WarehouseID: "w-2", PalletID: &p.ID,
		StockStatus: entity.StockStatusNormal,
		Received:    true,
		State:       entity.UnitStateInStock,
	}))

	d, err := f.uc.ProcessScan(context.Background(), scan.ScanInputDTO{
		UserID: "op-1", Code: "FARDO-001",
		Operation: movement.OpRemoveFromRack,
	})
	require.NoError(t, err)
	assert.True(t, d.Accepted())

	u, err := f.store.Units().GetByID("u-1")
	require.NoError(t, err)
	assert.Nil(t, u.PalletID)

	got, err := f.store.Pallets().GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.CurrentLoad)

	ops := f.store.PendingOperations()
	require.Len(t, ops, 1)
	assert.Equal(t, entity.PendingOpRemoveFromRack, ops[0].Kind)
	assert.Equal(t, p.ID, ops[0].PalletID, "la operación pendiente referencia el pallet del que salió")
}

func TestProcessScan_PalletLlenoExigeConfirmacion(t *testing.T) {
	f := newScanFixture(t)
	f.seedFardoSuelto(t, "u-1", "FARDO-001")
	p := f.seedPallet(t, 30, 30)

	// Sin confirmación: la decisión pide override y nada se escribe.
	d, err := f.uc.ProcessScan(context.Background(), scan.ScanInputDTO{
		UserID: "op-1", Code: "FARDO-001",
		Operation: movement.OpAssignToRack, PalletBarcode: p.Barcode,
	})
	require.NoError(t, err)
	assert.True(t, d.NeedsOverride())
	assert.Equal(t, movement.ReasonCapacityExceeded, d.Reason)

	u, err := f.store.Units().GetByID("u-1")
	require.NoError(t, err)
	assert.Nil(t, u.PalletID, "sin override el fardo no se consolida")
	assert.Empty(t, f.store.PendingOperations())

	// Con la confirmación se aplica y la carga pasa la capacidad declarada.
	d, err = f.uc.ProcessScan(context.Background(), scan.ScanInputDTO{
		UserID: "op-1", Code: "FARDO-001",
		Operation: movement.OpAssignToRack, PalletBarcode: p.Barcode,
		Override: true,
	})
	require.NoError(t, err)
	assert.True(t, d.NeedsOverride())

	got, err := f.store.Pallets().GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 31, got.CurrentLoad)

	ops := f.store.PendingOperations()
	require.Len(t, ops, 1)
	assert.True(t, ops[0].Override)
}

func TestProcessScan_OperacionConDocumentoNoSeAceptaAqui(t *testing.T) {
	f := newScanFixture(t)
	_, err := f.uc.ProcessScan(context.Background(), scan.ScanInputDTO{
		UserID: "op-1", Code: "FARDO-001", Operation: movement.OpReceive,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
