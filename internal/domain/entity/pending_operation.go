package entity

import "time"

// Tipos de operación pendiente que consume el motor de sincronización.
const (
	PendingOpReceive        = "receive"
	PendingOpDispatch       = "dispatch"
	PendingOpDispatchRack   = "dispatch_rack"
	PendingOpReclassify     = "reclassify"
	PendingOpRelabel        = "relabel"
	PendingOpAssignToRack   = "assign_to_rack"
	PendingOpRemoveFromRack = "remove_from_rack"
	PendingOpCloseDocument  = "close_document"
	PendingOpSequenceInsert = "sequence_insert"
)

// PendingOperation es el registro tipado que el núcleo escribe en la misma
// transacción de cada operación aplicada. Reemplaza a las pseudo-operaciones
// codificadas en strings: cada campo opcional queda vacío cuando no aplica
// al tipo de operación.
type PendingOperation struct {
	ID                  string
	Kind                string
	UnitID              string
	DocumentID          string
	PalletID            string
	NewGrade            string
	NewLogisticsBarcode string
	RowID               string
	Sequence            int
	Override            bool // la operación se aplicó con confirmación de operador
	CreatedAt           time.Time
	CreatedBy           string
}
