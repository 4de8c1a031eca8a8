package entity

import "time"

// Product representa un producto (tipo de fardo) con su bodega de empaque
// contraparte, derivada del comprador al que está ligado.
type Product struct {
	ID                 string
	Code               string
	Name               string
	PackingWarehouseID string // bodega de empaque del comprador; vacío = sin restricción
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
