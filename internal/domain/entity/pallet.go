package entity

import "time"

// Pallet representa un rack o pallet que agrupa fardos que se mueven juntos.
// Invariante: CurrentLoad <= Capacity salvo override confirmado por operador.
type Pallet struct {
	ID          string
	Barcode     string
	WarehouseID string
	LocationID  string
	Capacity    int
	CurrentLoad int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsFull indica si el pallet alcanzó su capacidad declarada.
func (p *Pallet) IsFull() bool {
	return p.Capacity > 0 && p.CurrentLoad >= p.Capacity
}
