package entity

import "time"

// Tipos de bodega dentro de la cadena logística.
const (
	WarehouseTypeCollection = "collection" // punto de acopio
	WarehouseTypeInternal   = "internal"   // bodega propia
	WarehouseTypeExternal   = "external"   // bodega de terceros / empaque
)

// Warehouse representa una bodega de la cadena. PackingWarehouseID es la bodega
// de empaque contraparte configurada; el validador la cruza contra la del producto.
type Warehouse struct {
	ID                 string
	Name               string
	Type               string // collection, internal, external
	PackingWarehouseID string // vacío = sin contraparte configurada
	Address            string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
