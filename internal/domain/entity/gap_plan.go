package entity

import "time"

// GapPlan reserva el rango de secuencias (StartSequence, EndSequenceExclusive)
// dentro de una fila/cama para insertar retroactivamente fardos saltados.
// Las secuencias superiores existentes no se renumeran: la fila mantiene el
// rango reservado hasta que el plan se agota.
type GapPlan struct {
	ID                   string
	RowID                string
	LayID                string
	StartSequence        int // primera secuencia reservada (inclusive)
	EndSequenceExclusive int
	FilledCount          int
	CreatedAt            time.Time
	CreatedBy            string
}

// Capacity devuelve cuántas posiciones reserva el plan.
func (p *GapPlan) Capacity() int {
	return p.EndSequenceExclusive - p.StartSequence
}

// Remaining devuelve cuántas posiciones reservadas siguen libres.
func (p *GapPlan) Remaining() int {
	return p.Capacity() - p.FilledCount
}
