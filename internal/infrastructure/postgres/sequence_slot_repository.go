package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.SequenceSlotRepository = (*SequenceSlotRepo)(nil)

// SequenceSlotRepo implementación de SequenceSlotRepository sobre PostgreSQL.
// La unicidad de (row_id, lay_id, sequence) la respalda un índice único.
type SequenceSlotRepo struct {
	q Querier
}

// NewSequenceSlotRepository construye el adaptador de slots de secuencia.
func NewSequenceSlotRepository(q Querier) *SequenceSlotRepo {
	return &SequenceSlotRepo{q: q}
}

// Create persiste un slot nuevo.
func (r *SequenceSlotRepo) Create(slot *entity.SequenceSlot) error {
	query := `
		INSERT INTO sequence_slots (row_id, lay_id, sequence, unit_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		slot.RowID, slot.LayID, slot.Sequence, slot.UnitID, slot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert sequence slot: secuencia ocupada: %w", err)
		}
		return fmt.Errorf("insert sequence slot: %w", err)
	}
	return nil
}

// Get devuelve el slot en la secuencia dada dentro de la fila/cama; nil si libre.
func (r *SequenceSlotRepo) Get(rowID, layID string, sequence int) (*entity.SequenceSlot, error) {
	query := `
		SELECT row_id, lay_id, sequence, unit_id, created_at
		FROM sequence_slots WHERE row_id = $1 AND lay_id = $2 AND sequence = $3`
	var s entity.SequenceSlot
	err := r.q.QueryRow(context.Background(), query, rowID, layID, sequence).Scan(
		&s.RowID, &s.LayID, &s.Sequence, &s.UnitID, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sequence slot: %w", err)
	}
	return &s, nil
}

// MaxSequence devuelve la secuencia más alta usada en la fila/cama, 0 si vacía.
func (r *SequenceSlotRepo) MaxSequence(rowID, layID string) (int, error) {
	query := `
		SELECT COALESCE(MAX(sequence), 0)
		FROM sequence_slots WHERE row_id = $1 AND lay_id = $2`
	var max int
	if err := r.q.QueryRow(context.Background(), query, rowID, layID).Scan(&max); err != nil {
		return 0, fmt.Errorf("max sequence: %w", err)
	}
	return max, nil
}
