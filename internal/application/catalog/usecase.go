// Package catalog expone los catálogos de bodegas y productos que respaldan
// al motor de reglas (bodega de empaque contraparte, producto declarado).
package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// CatalogUseCase lecturas y altas de catálogo.
type CatalogUseCase struct {
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(warehouseRepo repository.WarehouseRepository, productRepo repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{warehouseRepo: warehouseRepo, productRepo: productRepo}
}

// CreateWarehouseInput alta de bodega.
type CreateWarehouseInput struct {
	Name               string
	Type               string
	PackingWarehouseID string
	Address            string
}

// CreateWarehouse valida tipo y contraparte y persiste la bodega.
func (uc *CatalogUseCase) CreateWarehouse(in CreateWarehouseInput) (*entity.Warehouse, error) {
	switch in.Type {
	case entity.WarehouseTypeCollection, entity.WarehouseTypeInternal, entity.WarehouseTypeExternal:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PackingWarehouseID != "" {
		counterpart, err := uc.warehouseRepo.GetByID(in.PackingWarehouseID)
		if err != nil {
			return nil, err
		}
		if counterpart == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	wh := &entity.Warehouse{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		Type:               in.Type,
		PackingWarehouseID: in.PackingWarehouseID,
		Address:            in.Address,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.warehouseRepo.Create(wh); err != nil {
		return nil, err
	}
	return wh, nil
}

// GetWarehouse devuelve la bodega o ErrNotFound.
func (uc *CatalogUseCase) GetWarehouse(id string) (*entity.Warehouse, error) {
	wh, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return wh, nil
}

// ListWarehouses lista bodegas con paginación.
func (uc *CatalogUseCase) ListWarehouses(limit, offset int) ([]*entity.Warehouse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return uc.warehouseRepo.List(limit, offset)
}

// GetProduct devuelve el producto o ErrNotFound.
func (uc *CatalogUseCase) GetProduct(id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
