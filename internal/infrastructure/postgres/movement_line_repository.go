package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.MovementLineRepository = (*MovementLineRepo)(nil)

// MovementLineRepo implementación de MovementLineRepository sobre PostgreSQL.
type MovementLineRepo struct {
	q Querier
}

// NewMovementLineRepository construye el adaptador de líneas.
func NewMovementLineRepository(q Querier) *MovementLineRepo {
	return &MovementLineRepo{q: q}
}

// Create persiste una línea nueva.
func (r *MovementLineRepo) Create(l *entity.MovementLine) error {
	query := `
		INSERT INTO movement_lines (id, document_id, unit_id, mass, cancelled, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.DocumentID, l.UnitID, l.Mass, l.Cancelled, l.CreatedAt, l.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert movement line: línea duplicada: %w", err)
		}
		return fmt.Errorf("insert movement line: %w", err)
	}
	return nil
}

// GetActiveByUnit busca la línea activa del fardo en cualquier documento no
// contabilizado. La exclusividad entre documentos se apoya en esta consulta.
func (r *MovementLineRepo) GetActiveByUnit(unitID string) (*entity.MovementLine, error) {
	query := `
		SELECT l.id, l.document_id, l.unit_id, l.mass, l.cancelled, l.created_at, l.created_by
		FROM movement_lines l
		JOIN movement_documents d ON d.id = l.document_id
		WHERE l.unit_id = $1 AND NOT l.cancelled AND d.state <> 'posted'
		LIMIT 1`
	return r.getOne(query, unitID)
}

// GetByDocumentAndUnit busca la línea del fardo dentro de un documento.
func (r *MovementLineRepo) GetByDocumentAndUnit(documentID, unitID string) (*entity.MovementLine, error) {
	query := `
		SELECT id, document_id, unit_id, mass, cancelled, created_at, created_by
		FROM movement_lines WHERE document_id = $1 AND unit_id = $2`
	var l entity.MovementLine
	err := r.q.QueryRow(context.Background(), query, documentID, unitID).Scan(
		&l.ID, &l.DocumentID, &l.UnitID, &l.Mass, &l.Cancelled, &l.CreatedAt, &l.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement line: %w", err)
	}
	return &l, nil
}

// ListByDocument lista las líneas de un documento.
func (r *MovementLineRepo) ListByDocument(documentID string) ([]*entity.MovementLine, error) {
	query := `
		SELECT id, document_id, unit_id, mass, cancelled, created_at, created_by
		FROM movement_lines WHERE document_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list movement lines: %w", err)
	}
	defer rows.Close()

	var result []*entity.MovementLine
	for rows.Next() {
		var l entity.MovementLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.UnitID, &l.Mass, &l.Cancelled, &l.CreatedAt, &l.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan movement line: %w", err)
		}
		result = append(result, &l)
	}
	return result, rows.Err()
}

func (r *MovementLineRepo) getOne(query string, arg any) (*entity.MovementLine, error) {
	var l entity.MovementLine
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&l.ID, &l.DocumentID, &l.UnitID, &l.Mass, &l.Cancelled, &l.CreatedAt, &l.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement line: %w", err)
	}
	return &l, nil
}
