// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Respalda los tests de los casos de uso sin PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Logistica-api/internal/application/document"
	"github.com/jhoicas/Logistica-api/internal/application/scan"
	"github.com/jhoicas/Logistica-api/internal/application/sequence"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// Store contiene todo el estado compartido por los repos en memoria.
type Store struct {
	mu sync.Mutex

	units       map[string]*entity.Unit
	pallets     map[string]*entity.Pallet
	warehouses  map[string]*entity.Warehouse
	products    map[string]*entity.Product
	documents   map[string]*entity.MovementDocument
	lines       []*entity.MovementLine
	instr       map[string]*entity.InstructionLine
	slots       map[string]*entity.SequenceSlot
	plans       map[string]*entity.GapPlan
	pending     []*entity.PendingOperation
	attachments map[string]*entity.Attachment
	users       map[string]*entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		units:       make(map[string]*entity.Unit),
		pallets:     make(map[string]*entity.Pallet),
		warehouses:  make(map[string]*entity.Warehouse),
		products:    make(map[string]*entity.Product),
		documents:   make(map[string]*entity.MovementDocument),
		instr:       make(map[string]*entity.InstructionLine),
		slots:       make(map[string]*entity.SequenceSlot),
		plans:       make(map[string]*entity.GapPlan),
		attachments: make(map[string]*entity.Attachment),
		users:       make(map[string]*entity.User),
	}
}

// Accesores de repos. Todos comparten el mismo estado del store.

func (s *Store) Units() repository.UnitRepository                 { return &unitRepo{s} }
func (s *Store) Pallets() repository.PalletRepository             { return &palletRepo{s} }
func (s *Store) Warehouses() repository.WarehouseRepository       { return &warehouseRepo{s} }
func (s *Store) Products() repository.ProductRepository           { return &productRepo{s} }
func (s *Store) Documents() repository.MovementDocumentRepository { return &documentRepo{s} }
func (s *Store) Lines() repository.MovementLineRepository         { return &lineRepo{s} }
func (s *Store) Instructions() repository.InstructionLineRepository {
	return &instructionRepo{s}
}
func (s *Store) Slots() repository.SequenceSlotRepository          { return &slotRepo{s} }
func (s *Store) Plans() repository.GapPlanRepository               { return &planRepo{s} }
func (s *Store) PendingOps() repository.PendingOperationRepository { return &pendingRepo{s} }
func (s *Store) Attachments() repository.AttachmentRepository      { return &attachmentRepo{s} }
func (s *Store) Users() repository.UserRepository                  { return &userRepo{s} }

// PendingOperations devuelve una copia de la cola para aserciones de test.
func (s *Store) PendingOperations() []*entity.PendingOperation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.PendingOperation, len(s.pending))
	copy(out, s.pending)
	return out
}

// ── TxRunners ─────────────────────────────────────────────────────────────────
//
// Los runners en memoria ejecutan el callback directamente contra el store:
// sin rollback. Suficiente para tests donde los fallos de negocio se detectan
// antes de abrir la transacción.

// ScanTxRunner runner de escaneos sobre el store.
type ScanTxRunner struct{ S *Store }

var _ scan.TxRunner = (*ScanTxRunner)(nil)

func (r *ScanTxRunner) Run(_ context.Context, fn func(
	unitRepo repository.UnitRepository,
	palletRepo repository.PalletRepository,
	pendingRepo repository.PendingOperationRepository,
) error) error {
	return fn(r.S.Units(), r.S.Pallets(), r.S.PendingOps())
}

// DocumentTxRunner runner del agregador sobre el store.
type DocumentTxRunner struct{ S *Store }

var _ document.TxRunner = (*DocumentTxRunner)(nil)

func (r *DocumentTxRunner) Run(_ context.Context, fn func(
	unitRepo repository.UnitRepository,
	docRepo repository.MovementDocumentRepository,
	lineRepo repository.MovementLineRepository,
	instructionRepo repository.InstructionLineRepository,
	pendingRepo repository.PendingOperationRepository,
) error) error {
	return fn(r.S.Units(), r.S.Documents(), r.S.Lines(), r.S.Instructions(), r.S.PendingOps())
}

// SequenceTxRunner runner del insertador de huecos sobre el store.
type SequenceTxRunner struct{ S *Store }

var _ sequence.TxRunner = (*SequenceTxRunner)(nil)

func (r *SequenceTxRunner) Run(_ context.Context, fn func(
	planRepo repository.GapPlanRepository,
	slotRepo repository.SequenceSlotRepository,
	pendingRepo repository.PendingOperationRepository,
) error) error {
	return fn(r.S.Plans(), r.S.Slots(), r.S.PendingOps())
}
