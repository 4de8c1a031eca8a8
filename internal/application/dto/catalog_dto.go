package dto

import (
	"time"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Name               string `json:"name"`
	Type               string `json:"type"` // collection, internal, external
	PackingWarehouseID string `json:"packing_warehouse_id,omitempty"`
	Address            string `json:"address,omitempty"`
}

// WarehouseResponse representación HTTP de una bodega.
type WarehouseResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	PackingWarehouseID string    `json:"packing_warehouse_id,omitempty"`
	Address            string    `json:"address,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// FromWarehouse mapea la entidad a su representación HTTP.
func FromWarehouse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:                 w.ID,
		Name:               w.Name,
		Type:               w.Type,
		PackingWarehouseID: w.PackingWarehouseID,
		Address:            w.Address,
		CreatedAt:          w.CreatedAt,
	}
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID                 string `json:"id"`
	Code               string `json:"code"`
	Name               string `json:"name"`
	PackingWarehouseID string `json:"packing_warehouse_id,omitempty"`
}

// FromProduct mapea la entidad a su representación HTTP.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		Code:               p.Code,
		Name:               p.Name,
		PackingWarehouseID: p.PackingWarehouseID,
	}
}
