package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.MovementDocumentRepository = (*MovementDocumentRepo)(nil)

const documentColumns = `
	id, kind, source_warehouse_id, destination_warehouse_id, product_id,
	instruction_id, state, expected_unit_count, captured_unit_count,
	shipped_mass, received_mass, created_at, updated_at, created_by`

// MovementDocumentRepo implementación de MovementDocumentRepository sobre PostgreSQL.
type MovementDocumentRepo struct {
	q Querier
}

// NewMovementDocumentRepository construye el adaptador de documentos.
func NewMovementDocumentRepository(q Querier) *MovementDocumentRepo {
	return &MovementDocumentRepo{q: q}
}

// Create persiste un documento en borrador.
func (r *MovementDocumentRepo) Create(d *entity.MovementDocument) error {
	query := `
		INSERT INTO movement_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Kind, nullable(d.SourceWarehouseID), nullable(d.DestinationWarehouseID),
		nullable(d.ProductID), nullable(d.InstructionID), d.State,
		d.ExpectedUnitCount, d.CapturedUnitCount, d.ShippedMass, d.ReceivedMass,
		d.CreatedAt, d.UpdatedAt, d.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert movement document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID. nil si no existe.
func (r *MovementDocumentRepo) GetByID(id string) (*entity.MovementDocument, error) {
	return r.getOne(`SELECT `+documentColumns+` FROM movement_documents WHERE id = $1`, id)
}

// GetForUpdate obtiene el documento y bloquea la fila (SELECT FOR UPDATE).
func (r *MovementDocumentRepo) GetForUpdate(id string) (*entity.MovementDocument, error) {
	return r.getOne(`SELECT `+documentColumns+` FROM movement_documents WHERE id = $1 FOR UPDATE`, id)
}

// List lista documentos por estado (vacío = todos) con paginación.
func (r *MovementDocumentRepo) List(state string, limit, offset int) ([]*entity.MovementDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM movement_documents
		WHERE ($1 = '' OR state = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, state, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movement documents: %w", err)
	}
	defer rows.Close()

	var result []*entity.MovementDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// Update persiste estado y contadores del documento.
func (r *MovementDocumentRepo) Update(d *entity.MovementDocument) error {
	query := `
		UPDATE movement_documents SET
			state = $2, expected_unit_count = $3, captured_unit_count = $4,
			shipped_mass = $5, received_mass = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.State, d.ExpectedUnitCount, d.CapturedUnitCount,
		d.ShippedMass, d.ReceivedMass, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update movement document: %w", err)
	}
	return nil
}

func (r *MovementDocumentRepo) getOne(query string, arg any) (*entity.MovementDocument, error) {
	d, err := scanDocument(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement document: %w", err)
	}
	return d, nil
}

func scanDocument(row rowScanner) (*entity.MovementDocument, error) {
	var d entity.MovementDocument
	var source, destination, productID, instructionID *string
	err := row.Scan(
		&d.ID, &d.Kind, &source, &destination, &productID, &instructionID,
		&d.State, &d.ExpectedUnitCount, &d.CapturedUnitCount,
		&d.ShippedMass, &d.ReceivedMass, &d.CreatedAt, &d.UpdatedAt, &d.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if source != nil {
		d.SourceWarehouseID = *source
	}
	if destination != nil {
		d.DestinationWarehouseID = *destination
	}
	if productID != nil {
		d.ProductID = *productID
	}
	if instructionID != nil {
		d.InstructionID = *instructionID
	}
	return &d, nil
}
