package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.InstructionLineRepository = (*InstructionLineRepo)(nil)

// InstructionLineRepo implementación de InstructionLineRepository sobre PostgreSQL.
type InstructionLineRepo struct {
	q Querier
}

// NewInstructionLineRepository construye el adaptador de cupos de instrucción.
func NewInstructionLineRepository(q Querier) *InstructionLineRepo {
	return &InstructionLineRepo{q: q}
}

// Get busca el cupo para una instrucción, producto y calidad.
func (r *InstructionLineRepo) Get(instructionID, productID, grade string) (*entity.InstructionLine, error) {
	return r.get(instructionID, productID, grade, false)
}

// GetForUpdate bloquea la fila del cupo dentro de la transacción actual.
func (r *InstructionLineRepo) GetForUpdate(instructionID, productID, grade string) (*entity.InstructionLine, error) {
	return r.get(instructionID, productID, grade, true)
}

func (r *InstructionLineRepo) get(instructionID, productID, grade string, forUpdate bool) (*entity.InstructionLine, error) {
	query := `
		SELECT instruction_id, product_id, grade, remaining_mass, updated_at
		FROM instruction_lines
		WHERE instruction_id = $1 AND product_id = $2 AND grade = $3`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var l entity.InstructionLine
	err := r.q.QueryRow(context.Background(), query, instructionID, productID, grade).Scan(
		&l.InstructionID, &l.ProductID, &l.Grade, &l.RemainingMass, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get instruction line: %w", err)
	}
	return &l, nil
}

// UpdateRemainingMass persiste el cupo restante. Puede quedar negativo cuando
// el operador confirmó un override de cupo.
func (r *InstructionLineRepo) UpdateRemainingMass(instructionID, productID, grade string, remaining decimal.Decimal) error {
	query := `
		UPDATE instruction_lines SET remaining_mass = $4, updated_at = $5
		WHERE instruction_id = $1 AND product_id = $2 AND grade = $3`
	tag, err := r.q.Exec(context.Background(), query, instructionID, productID, grade, remaining, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update instruction line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update instruction line: cupo no encontrado")
	}
	return nil
}
