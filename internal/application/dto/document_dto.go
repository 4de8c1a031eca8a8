package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// CreateDocumentRequest body para POST /api/documents.
type CreateDocumentRequest struct {
	Kind                   string `json:"kind"` // dispatch, receipt, missing_receipt
	SourceWarehouseID      string `json:"source_warehouse_id,omitempty"`
	DestinationWarehouseID string `json:"destination_warehouse_id,omitempty"`
	ProductID              string `json:"product_id,omitempty"`
	InstructionID          string `json:"instruction_id,omitempty"`
	ExpectedUnitCount      int    `json:"expected_unit_count,omitempty"`
}

// DocumentResponse representación HTTP de un documento de movimiento con su
// progreso esperado-vs-capturado.
type DocumentResponse struct {
	ID                     string          `json:"id"`
	Kind                   string          `json:"kind"`
	SourceWarehouseID      string          `json:"source_warehouse_id,omitempty"`
	DestinationWarehouseID string          `json:"destination_warehouse_id,omitempty"`
	ProductID              string          `json:"product_id,omitempty"`
	InstructionID          string          `json:"instruction_id,omitempty"`
	State                  string          `json:"state"`
	ExpectedUnitCount      int             `json:"expected_unit_count"`
	CapturedUnitCount      int             `json:"captured_unit_count"`
	ShippedMass            decimal.Decimal `json:"shipped_mass"`
	ReceivedMass           decimal.Decimal `json:"received_mass"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// FromDocument mapea la entidad a su representación HTTP.
func FromDocument(d *entity.MovementDocument) DocumentResponse {
	return DocumentResponse{
		ID:                     d.ID,
		Kind:                   d.Kind,
		SourceWarehouseID:      d.SourceWarehouseID,
		DestinationWarehouseID: d.DestinationWarehouseID,
		ProductID:              d.ProductID,
		InstructionID:          d.InstructionID,
		State:                  d.State,
		ExpectedUnitCount:      d.ExpectedUnitCount,
		CapturedUnitCount:      d.CapturedUnitCount,
		ShippedMass:            d.ShippedMass,
		ReceivedMass:           d.ReceivedMass,
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}
}
