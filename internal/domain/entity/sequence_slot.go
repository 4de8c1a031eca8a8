package entity

import "time"

// SequenceSlot es la posición ordinal de un fardo dentro de una fila/cama del
// piso de venta. Dentro de una fila los valores de Sequence son únicos.
type SequenceSlot struct {
	RowID     string
	LayID     string
	Sequence  int
	UnitID    string
	CreatedAt time.Time
}
