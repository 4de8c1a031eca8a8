package repository

import "github.com/jhoicas/Logistica-api/internal/domain/entity"

// PalletRepository define el puerto de persistencia para Pallet.
type PalletRepository interface {
	Create(pallet *entity.Pallet) error
	GetByID(id string) (*entity.Pallet, error)
	GetByBarcode(barcode string) (*entity.Pallet, error)
	// AdjustLoad suma delta (±1) a current_load; nunca se recalcula desde cero.
	AdjustLoad(palletID string, delta int) error
}
