package movement

// Operation identifica la operación solicitada sobre un fardo.
type Operation string

// Operaciones que el validador conoce.
const (
	OpReceive             Operation = "receive"
	OpDispatchToWarehouse Operation = "dispatch_to_warehouse"
	OpDispatchRack        Operation = "dispatch_rack"
	OpReclassify          Operation = "reclassify"
	OpRelabel             Operation = "relabel"
	OpAssignToRack        Operation = "assign_to_rack"
	OpRemoveFromRack      Operation = "remove_from_rack"
)

// Verdict es el resultado de validar una operación.
type Verdict int

const (
	VerdictAccept Verdict = iota
	VerdictReject
	VerdictAcceptWithOverride // requiere confirmación de operador antes de aplicar
)

// ReasonKind clasifica el motivo de un rechazo u override.
type ReasonKind string

const (
	ReasonNone             ReasonKind = ""
	ReasonNotFound         ReasonKind = "NOT_FOUND"
	ReasonInvalidState     ReasonKind = "INVALID_STATE"
	ReasonAlreadyActive    ReasonKind = "ALREADY_ACTIVE"
	ReasonLocationMismatch ReasonKind = "LOCATION_MISMATCH"
	ReasonProductMismatch  ReasonKind = "PRODUCT_MISMATCH"
	ReasonQuotaExceeded    ReasonKind = "QUOTA_EXCEEDED"
	ReasonCapacityExceeded ReasonKind = "CAPACITY_EXCEEDED"
	ReasonAlreadyFinalized ReasonKind = "ALREADY_FINALIZED"
	ReasonSlotConflict     ReasonKind = "SLOT_CONFLICT"
)

// Decision es el resultado estructurado de la validación: veredicto, motivo y
// contexto suficiente para que la capa de presentación arme el mensaje al
// operador sin que el núcleo conozca la UI.
type Decision struct {
	Verdict     Verdict
	Reason      ReasonKind
	Message     string
	Overridable bool
	// Contexto del rechazo; vacío cuando no aplica.
	UnitID      string
	Barcode     string
	WarehouseID string
	DocumentID  string
}

// Accepted indica si la operación puede aplicarse sin confirmación.
func (d Decision) Accepted() bool { return d.Verdict == VerdictAccept }

// NeedsOverride indica si la operación puede aplicarse solo con confirmación.
func (d Decision) NeedsOverride() bool { return d.Verdict == VerdictAcceptWithOverride }

// Rejected indica un rechazo duro.
func (d Decision) Rejected() bool { return d.Verdict == VerdictReject }

// Accept construye una decisión de aceptación.
func Accept() Decision {
	return Decision{Verdict: VerdictAccept}
}

// Reject construye un rechazo duro con motivo y mensaje.
func Reject(reason ReasonKind, message string) Decision {
	return Decision{Verdict: VerdictReject, Reason: reason, Message: message}
}

// AcceptWithOverride construye una aceptación condicionada a confirmación.
func AcceptWithOverride(reason ReasonKind, message string) Decision {
	return Decision{Verdict: VerdictAcceptWithOverride, Reason: reason, Message: message, Overridable: true}
}

// WithUnit anota el fardo en conflicto.
func (d Decision) WithUnit(unitID, barcode string) Decision {
	d.UnitID = unitID
	d.Barcode = barcode
	return d
}

// WithWarehouse anota la bodega en conflicto.
func (d Decision) WithWarehouse(warehouseID string) Decision {
	d.WarehouseID = warehouseID
	return d
}

// WithDocument anota el documento en conflicto.
func (d Decision) WithDocument(documentID string) Decision {
	d.DocumentID = documentID
	return d
}
