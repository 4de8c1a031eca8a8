package sequence_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/application/scan"
	"github.com/jhoicas/Logistica-api/internal/application/sequence"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type gapFixture struct {
	store *memory.Store
	uc    *sequence.GapUseCase
}

func newGapFixture(t *testing.T) *gapFixture {
	t.Helper()
	store := memory.NewStore()
	uc := sequence.NewGapUseCase(
		&memory.SequenceTxRunner{S: store},
		store.Plans(),
		scan.NewRegistry(store.Units()),
	)
	return &gapFixture{store: store, uc: uc}
}

func (f *gapFixture) seedFardo(t *testing.T, id, barcode string) {
	t.Helper()
	require.NoError(t, f.store.Units().Create(&entity.Unit{
		ID: id, Barcode: barcode,
		ProductID: "prod-1", Grade: "A",
		Mass:        decimal.NewFromInt(200),
		StockStatus: entity.StockStatusNormal,
		Received:    true,
		State:       entity.UnitStateInStock,
	}))
}

func (f *gapFixture) seedSlot(t *testing.T, rowID, layID string, seq int, unitID string) {
	t.Helper()
	require.NoError(t, f.store.Slots().Create(&entity.SequenceSlot{
		RowID: rowID, LayID: layID, Sequence: seq, UnitID: unitID,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// PrepareGap: reserva sin renumerar
// ──────────────────────────────────────────────────────────────────────────────

func TestPrepareGap_ReservaElRangoSiguienteAlUltimoSecuenciado(t *testing.T) {
	f := newGapFixture(t)

	plan, err := f.uc.PrepareGap(context.Background(), sequence.PrepareGapInputDTO{
		UserID: "op-1", RowID: "fila-1", LayID: "cama-1",
		LastSequence: 10, SkipCount: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, plan.StartSequence)
	assert.Equal(t, 14, plan.EndSequenceExclusive, "reserva (10, 13]: tres posiciones")
	assert.Equal(t, 0, plan.FilledCount)
	assert.Equal(t, 3, plan.Capacity())
}

func TestPrepareGap_EntradaInvalidaRechazada(t *testing.T) {
	f := newGapFixture(t)

	casos := []struct {
		nombre string
		input  sequence.PrepareGapInputDTO
	}{
		{"sin fila", sequence.PrepareGapInputDTO{RowID: "", LastSequence: 5, SkipCount: 1}},
		{"salto cero", sequence.PrepareGapInputDTO{RowID: "fila-1", LastSequence: 5, SkipCount: 0}},
		{"secuencia negativa", sequence.PrepareGapInputDTO{RowID: "fila-1", LastSequence: -1, SkipCount: 1}},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := f.uc.PrepareGap(context.Background(), c.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// InsertAt: densidad del rango y agotamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestInsertAt_LlenaElHuecoDensamenteYLuegoSeAgota(t *testing.T) {
	f := newGapFixture(t)
	for i, id := range []string{"u-1", "u-2", "u-3", "u-4"} {
		f.seedFardo(t, id, "FARDO-00"+string(rune('1'+i)))
	}
	plan, err := f.uc.PrepareGap(context.Background(), sequence.PrepareGapInputDTO{
		UserID: "op-1", RowID: "fila-1", LayID: "cama-1",
		LastSequence: 10, SkipCount: 3,
	})
	require.NoError(t, err)

	for i, code := range []string{"FARDO-001", "FARDO-002", "FARDO-003"} {
		slot, err := f.uc.InsertAt(context.Background(), sequence.InsertInputDTO{
			UserID: "op-1", PlanID: plan.ID, SlotIndex: i, Code: code,
		})
		require.NoError(t, err)
		assert.Equal(t, 11+i, slot.Sequence)
		assert.Equal(t, "fila-1", slot.RowID)
	}

	// La cuarta inserción excede el rango reservado.
	_, err = f.uc.InsertAt(context.Background(), sequence.InsertInputDTO{
		UserID: "op-1", PlanID: plan.ID, SlotIndex: 3, Code: "FARDO-004",
	})
	assert.ErrorIs(t, err, domain.ErrAllSlotsFilled)

	got, err := f.store.Plans().GetByID(plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.FilledCount)
}

func TestInsertAt_IndiceFueraDeOrdenEsEntradaInvalida(t *testing.T) {
	f := newGapFixture(t)
	f.seedFardo(t, "u-1", "FARDO-001")
	f.seedFardo(t, "u-2", "FARDO-002")

	plan, err := f.uc.PrepareGap(context.Background(), sequence.PrepareGapInputDTO{
		UserID: "op-1", RowID: "fila-1", LayID: "cama-1",
		LastSequence: 10, SkipCount: 3,
	})
	require.NoError(t, err)

	// Saltarse la primera posición libre es error del operador, no un
	// conflicto de secuencia.
	_, err = f.uc.InsertAt(context.Background(), sequence.InsertInputDTO{
		UserID: "op-1", PlanID: plan.ID, SlotIndex: 1, Code: "FARDO-001",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// La posición siguiente en orden sigue libre y se reclama normal.
	slot, err := f.uc.InsertAt(context.Background(), sequence.InsertInputDTO{
		UserID: "op-1", PlanID: plan.ID, SlotIndex: 0, Code: "FARDO-002",
	})
	require.NoError(t, err)
	assert.Equal(t, 11, slot.Sequence)
}

func TestInsertAt_SecuenciaOcupadaEsConflictoFatal(t *testing.T) {
	f := newGapFixture(t)
	f.seedFardo(t, "u-1", "FARDO-001")
	f.seedSlot(t, "fila-1", "cama-1", 11, "u-ocupante")

	plan, err := f.uc.PrepareGap(context.Background(), sequence.PrepareGapInputDTO{
		UserID: "op-1", RowID: "fila-1", LayID: "cama-1",
		LastSequence: 10, SkipCount: 3,
	})
	require.NoError(t, err)

	_, err = f.uc.InsertAt(context.Background(), sequence.InsertInputDTO{
		UserID: "op-1", PlanID: plan.ID, SlotIndex: 0, Code: "FARDO-001",
	})
	assert.ErrorIs(t, err, domain.ErrSlotConflict)

	// El conflicto no consume capacidad del plan.
	got, err := f.store.Plans().GetByID(plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.FilledCount)
}

func TestInsertAt_NoRenumeraLasSecuenciasSuperiores(t *testing.T) {
	f := newGapFixture(t)
	f.seedFardo(t, "u-1", "FARDO-001")
	// Fardos ya secuenciados por encima del hueco.
	f.seedSlot(t, "fila-1", "cama-1", 14, "u-alto-1")
	f.seedSlot(t, "fila-1", "cama-1", 15, "u-alto-2")

	plan, err := f.uc.PrepareGap(context.Background(), sequence.PrepareGapInputDTO{
		UserID: "op-1", RowID: "fila-1", LayID: "cama-1",
		LastSequence: 10, SkipCount: 3,
	})
	require.NoError(t, err)

	_, err = f.uc.InsertAt(context.Background(), sequence.InsertInputDTO{
		UserID: "op-1", PlanID: plan.ID, SlotIndex: 0, Code: "FARDO-001",
	})
	require.NoError(t, err)

	alto, err := f.store.Slots().Get("fila-1", "cama-1", 14)
	require.NoError(t, err)
	require.NotNil(t, alto)
	assert.Equal(t, "u-alto-1", alto.UnitID, "las secuencias superiores no se tocan")

	alto, err = f.store.Slots().Get("fila-1", "cama-1", 15)
	require.NoError(t, err)
	require.NotNil(t, alto)
	assert.Equal(t, "u-alto-2", alto.UnitID)
}

func TestInsertAt_FardoContabilizadoRechazado(t *testing.T) {
	f := newGapFixture(t)
	require.NoError(t, f.store.Units().Create(&entity.Unit{
		ID: "u-1", Barcode: "FARDO-001", State: entity.UnitStatePosted,
	}))

	plan, err := f.uc.PrepareGap(context.Background(), sequence.PrepareGapInputDTO{
		UserID: "op-1", RowID: "fila-1", SkipCount: 1, LastSequence: 0,
	})
	require.NoError(t, err)

	_, err = f.uc.InsertAt(context.Background(), sequence.InsertInputDTO{
		UserID: "op-1", PlanID: plan.ID, SlotIndex: 0, Code: "FARDO-001",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
