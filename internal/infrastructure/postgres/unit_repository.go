package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

const unitColumns = `
	id, barcode, logistics_barcode, product_id, grade, mass, received_mass,
	warehouse_id, location_id, pallet_id, stock_status, received, state,
	operation_tag, created_at, updated_at`

// UnitRepo implementación de UnitRepository sobre PostgreSQL (usable con pool o tx).
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador de fardos. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persiste un fardo nuevo.
func (r *UnitRepo) Create(u *entity.Unit) error {
	query := `
		INSERT INTO units (` + unitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Barcode, nullable(u.LogisticsBarcode), nullable(u.ProductID), u.Grade,
		u.Mass, u.ReceivedMass, nullable(u.WarehouseID), nullable(u.LocationID),
		u.PalletID, u.StockStatus, u.Received, u.State, u.OperationTag,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert unit: código duplicado: %w", err)
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// GetByID obtiene un fardo por ID. nil si no existe.
func (r *UnitRepo) GetByID(id string) (*entity.Unit, error) {
	return r.getOne(`SELECT `+unitColumns+` FROM units WHERE id = $1`, id)
}

// GetForUpdate obtiene el fardo y bloquea la fila (SELECT FOR UPDATE).
func (r *UnitRepo) GetForUpdate(id string) (*entity.Unit, error) {
	return r.getOne(`SELECT `+unitColumns+` FROM units WHERE id = $1 FOR UPDATE`, id)
}

// GetByBarcode obtiene un fardo por su código de barras primario.
func (r *UnitRepo) GetByBarcode(barcode string) (*entity.Unit, error) {
	return r.getOne(`SELECT `+unitColumns+` FROM units WHERE barcode = $1`, barcode)
}

// GetByLogisticsBarcode obtiene un fardo por su código logístico alterno.
func (r *UnitRepo) GetByLogisticsBarcode(code string) (*entity.Unit, error) {
	return r.getOne(`SELECT `+unitColumns+` FROM units WHERE logistics_barcode = $1`, code)
}

// ListByPallet lista los fardos consolidados en un pallet.
func (r *UnitRepo) ListByPallet(palletID string) ([]*entity.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE pallet_id = $1 ORDER BY barcode`
	rows, err := r.q.Query(context.Background(), query, palletID)
	if err != nil {
		return nil, fmt.Errorf("list units by pallet: %w", err)
	}
	defer rows.Close()

	var units []*entity.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// Update persiste los campos mutables del fardo.
func (r *UnitRepo) Update(u *entity.Unit) error {
	query := `
		UPDATE units SET
			logistics_barcode = $2, grade = $3, mass = $4, received_mass = $5,
			warehouse_id = $6, location_id = $7, pallet_id = $8,
			stock_status = $9, received = $10, state = $11,
			operation_tag = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, nullable(u.LogisticsBarcode), u.Grade, u.Mass, u.ReceivedMass,
		nullable(u.WarehouseID), nullable(u.LocationID), u.PalletID, u.StockStatus,
		u.Received, u.State, u.OperationTag, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) getOne(query string, arg any) (*entity.Unit, error) {
	u, err := scanUnit(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUnit(row rowScanner) (*entity.Unit, error) {
	var u entity.Unit
	var logisticsBarcode, productID, warehouseID, locationID *string
	err := row.Scan(
		&u.ID, &u.Barcode, &logisticsBarcode, &productID, &u.Grade,
		&u.Mass, &u.ReceivedMass, &warehouseID, &locationID, &u.PalletID,
		&u.StockStatus, &u.Received, &u.State, &u.OperationTag,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if logisticsBarcode != nil {
		u.LogisticsBarcode = *logisticsBarcode
	}
	if productID != nil {
		u.ProductID = *productID
	}
	if warehouseID != nil {
		u.WarehouseID = *warehouseID
	}
	if locationID != nil {
		u.LocationID = *locationID
	}
	return &u, nil
}

// nullable convierte string vacío en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
