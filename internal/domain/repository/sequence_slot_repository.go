package repository

import "github.com/jhoicas/Logistica-api/internal/domain/entity"

// SequenceSlotRepository define el puerto de persistencia para las posiciones
// de secuencia del piso de venta.
type SequenceSlotRepository interface {
	Create(slot *entity.SequenceSlot) error
	// Get devuelve el slot en la secuencia dada dentro de la fila/cama; nil si libre.
	Get(rowID, layID string, sequence int) (*entity.SequenceSlot, error)
	MaxSequence(rowID, layID string) (int, error)
}
