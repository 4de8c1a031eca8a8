package dto

import "github.com/jhoicas/Logistica-api/internal/domain/movement"

// ScanRequest body para POST /api/scans. DocumentID presente = el escaneo se
// registra contra un documento (recepción/despacho); ausente = operación a
// nivel de fardo (reclassify, relabel, assign_to_rack, remove_from_rack).
type ScanRequest struct {
	Code                string `json:"code"`
	Operation           string `json:"operation,omitempty"`
	DocumentID          string `json:"document_id,omitempty"`
	NewGrade            string `json:"new_grade,omitempty"`
	NewLogisticsBarcode string `json:"new_logistics_barcode,omitempty"`
	PalletBarcode       string `json:"pallet_barcode,omitempty"`
	Override            bool   `json:"override,omitempty"`
}

// RackDispatchRequest body para POST /api/racks/dispatch.
type RackDispatchRequest struct {
	DocumentID    string `json:"document_id"`
	PalletBarcode string `json:"pallet_barcode"`
	Override      bool   `json:"override,omitempty"`
}

// DecisionResponse decisión estructurada que la UI del operador renderiza.
type DecisionResponse struct {
	Verdict     string `json:"verdict"` // accept, reject, accept_with_override
	Reason      string `json:"reason,omitempty"`
	Message     string `json:"message,omitempty"`
	Overridable bool   `json:"overridable"`
	UnitID      string `json:"unit_id,omitempty"`
	Barcode     string `json:"barcode,omitempty"`
	WarehouseID string `json:"warehouse_id,omitempty"`
	DocumentID  string `json:"document_id,omitempty"`
}

// FromDecision mapea la decisión de dominio a su representación HTTP.
func FromDecision(d movement.Decision) DecisionResponse {
	verdict := "accept"
	switch d.Verdict {
	case movement.VerdictReject:
		verdict = "reject"
	case movement.VerdictAcceptWithOverride:
		verdict = "accept_with_override"
	}
	return DecisionResponse{
		Verdict:     verdict,
		Reason:      string(d.Reason),
		Message:     d.Message,
		Overridable: d.Overridable,
		UnitID:      d.UnitID,
		Barcode:     d.Barcode,
		WarehouseID: d.WarehouseID,
		DocumentID:  d.DocumentID,
	}
}
