package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.PalletRepository = (*PalletRepo)(nil)

// PalletRepo implementación de PalletRepository sobre PostgreSQL.
type PalletRepo struct {
	q Querier
}

// NewPalletRepository construye el adaptador de pallets. Pasar pool o tx (Querier).
func NewPalletRepository(q Querier) *PalletRepo {
	return &PalletRepo{q: q}
}

// Create persiste un pallet nuevo.
func (r *PalletRepo) Create(p *entity.Pallet) error {
	query := `
		INSERT INTO pallets (id, barcode, warehouse_id, location_id, capacity, current_load, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Barcode, nullable(p.WarehouseID), nullable(p.LocationID),
		p.Capacity, p.CurrentLoad, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pallet: %w", err)
	}
	return nil
}

// GetByID obtiene un pallet por ID. nil si no existe.
func (r *PalletRepo) GetByID(id string) (*entity.Pallet, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByBarcode obtiene un pallet por su código de barras.
func (r *PalletRepo) GetByBarcode(barcode string) (*entity.Pallet, error) {
	return r.getOne(`WHERE barcode = $1`, barcode)
}

// AdjustLoad suma delta (±1) a current_load. Nunca se recalcula desde cero:
// la reconciliación completa es trabajo del motor de sincronización.
func (r *PalletRepo) AdjustLoad(palletID string, delta int) error {
	query := `UPDATE pallets SET current_load = current_load + $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, palletID, delta)
	if err != nil {
		return fmt.Errorf("adjust pallet load: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("adjust pallet load: pallet %s no existe", palletID)
	}
	return nil
}

func (r *PalletRepo) getOne(where string, arg any) (*entity.Pallet, error) {
	query := `
		SELECT id, barcode, warehouse_id, location_id, capacity, current_load, created_at, updated_at
		FROM pallets ` + where
	var p entity.Pallet
	var warehouseID, locationID *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Barcode, &warehouseID, &locationID,
		&p.Capacity, &p.CurrentLoad, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pallet: %w", err)
	}
	if warehouseID != nil {
		p.WarehouseID = *warehouseID
	}
	if locationID != nil {
		p.LocationID = *locationID
	}
	return &p, nil
}
