package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Logistica-api/internal/application/document"
	"github.com/jhoicas/Logistica-api/internal/application/scan"
	"github.com/jhoicas/Logistica-api/internal/application/sequence"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// Ensure TxRunner implements los runners de cada caso de uso.
var _ scan.TxRunner = (*ScanTxRunner)(nil)
var _ document.TxRunner = (*DocumentTxRunner)(nil)
var _ sequence.TxRunner = (*SequenceTxRunner)(nil)

// ScanTxRunner ejecuta callbacks de escaneo dentro de una transacción PostgreSQL.
type ScanTxRunner struct {
	pool *pgxpool.Pool
}

// NewScanTxRunner construye el runner con el pool.
func NewScanTxRunner(pool *pgxpool.Pool) *ScanTxRunner {
	return &ScanTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *ScanTxRunner) Run(ctx context.Context, fn func(
	unitRepo repository.UnitRepository,
	palletRepo repository.PalletRepository,
	pendingRepo repository.PendingOperationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUnitRepository(tx), NewPalletRepository(tx), NewPendingOperationRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// DocumentTxRunner ejecuta callbacks del agregador de documentos en una transacción.
type DocumentTxRunner struct {
	pool *pgxpool.Pool
}

// NewDocumentTxRunner construye el runner con el pool.
func NewDocumentTxRunner(pool *pgxpool.Pool) *DocumentTxRunner {
	return &DocumentTxRunner{pool: pool}
}

// Run inicia una transacción con los repos del agregador.
func (r *DocumentTxRunner) Run(ctx context.Context, fn func(
	unitRepo repository.UnitRepository,
	docRepo repository.MovementDocumentRepository,
	lineRepo repository.MovementLineRepository,
	instructionRepo repository.InstructionLineRepository,
	pendingRepo repository.PendingOperationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewUnitRepository(tx),
		NewMovementDocumentRepository(tx),
		NewMovementLineRepository(tx),
		NewInstructionLineRepository(tx),
		NewPendingOperationRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// SequenceTxRunner ejecuta callbacks del insertador de huecos en una transacción.
type SequenceTxRunner struct {
	pool *pgxpool.Pool
}

// NewSequenceTxRunner construye el runner con el pool.
func NewSequenceTxRunner(pool *pgxpool.Pool) *SequenceTxRunner {
	return &SequenceTxRunner{pool: pool}
}

// Run inicia una transacción con los repos de secuenciado.
func (r *SequenceTxRunner) Run(ctx context.Context, fn func(
	planRepo repository.GapPlanRepository,
	slotRepo repository.SequenceSlotRepository,
	pendingRepo repository.PendingOperationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewGapPlanRepository(tx), NewSequenceSlotRepository(tx), NewPendingOperationRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
