package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.GapPlanRepository = (*GapPlanRepo)(nil)

// GapPlanRepo implementación de GapPlanRepository sobre PostgreSQL.
type GapPlanRepo struct {
	q Querier
}

// NewGapPlanRepository construye el adaptador de planes de inserción.
func NewGapPlanRepository(q Querier) *GapPlanRepo {
	return &GapPlanRepo{q: q}
}

// Create persiste un plan nuevo.
func (r *GapPlanRepo) Create(plan *entity.GapPlan) error {
	query := `
		INSERT INTO gap_plans (id, row_id, lay_id, start_sequence, end_sequence_exclusive, filled_count, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		plan.ID, plan.RowID, plan.LayID, plan.StartSequence, plan.EndSequenceExclusive,
		plan.FilledCount, plan.CreatedAt, plan.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert gap plan: %w", err)
	}
	return nil
}

// GetByID busca un plan por su identificador.
func (r *GapPlanRepo) GetByID(id string) (*entity.GapPlan, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea el plan dentro de la transacción actual.
func (r *GapPlanRepo) GetForUpdate(id string) (*entity.GapPlan, error) {
	return r.get(id, true)
}

func (r *GapPlanRepo) get(id string, forUpdate bool) (*entity.GapPlan, error) {
	query := `
		SELECT id, row_id, lay_id, start_sequence, end_sequence_exclusive, filled_count, created_at, created_by
		FROM gap_plans WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var p entity.GapPlan
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.RowID, &p.LayID, &p.StartSequence, &p.EndSequenceExclusive,
		&p.FilledCount, &p.CreatedAt, &p.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get gap plan: %w", err)
	}
	return &p, nil
}

// Update persiste el contador de posiciones llenadas.
func (r *GapPlanRepo) Update(plan *entity.GapPlan) error {
	query := `UPDATE gap_plans SET filled_count = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, plan.ID, plan.FilledCount)
	if err != nil {
		return fmt.Errorf("update gap plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update gap plan: plan no encontrado")
	}
	return nil
}
