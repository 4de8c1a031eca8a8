package dto

import (
	"time"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// PrepareGapRequest body para POST /api/sequence/gaps.
type PrepareGapRequest struct {
	RowID        string `json:"row_id"`
	LayID        string `json:"lay_id,omitempty"`
	LastSequence int    `json:"last_sequence"`
	SkipCount    int    `json:"skip_count"`
}

// GapPlanResponse plan de inserción reservado.
type GapPlanResponse struct {
	ID                   string    `json:"id"`
	RowID                string    `json:"row_id"`
	LayID                string    `json:"lay_id,omitempty"`
	StartSequence        int       `json:"start_sequence"`
	EndSequenceExclusive int       `json:"end_sequence_exclusive"`
	FilledCount          int       `json:"filled_count"`
	Remaining            int       `json:"remaining"`
	CreatedAt            time.Time `json:"created_at"`
}

// FromGapPlan mapea el plan a su representación HTTP.
func FromGapPlan(p *entity.GapPlan) GapPlanResponse {
	return GapPlanResponse{
		ID:                   p.ID,
		RowID:                p.RowID,
		LayID:                p.LayID,
		StartSequence:        p.StartSequence,
		EndSequenceExclusive: p.EndSequenceExclusive,
		FilledCount:          p.FilledCount,
		Remaining:            p.Remaining(),
		CreatedAt:            p.CreatedAt,
	}
}

// InsertSlotRequest body para POST /api/sequence/gaps/:id/slots.
type InsertSlotRequest struct {
	SlotIndex int    `json:"slot_index"`
	Code      string `json:"code"`
}

// SequenceSlotResponse posición reclamada.
type SequenceSlotResponse struct {
	RowID    string `json:"row_id"`
	LayID    string `json:"lay_id,omitempty"`
	Sequence int    `json:"sequence"`
	UnitID   string `json:"unit_id"`
}

// FromSequenceSlot mapea el slot a su representación HTTP.
func FromSequenceSlot(s *entity.SequenceSlot) SequenceSlotResponse {
	return SequenceSlotResponse{
		RowID:    s.RowID,
		LayID:    s.LayID,
		Sequence: s.Sequence,
		UnitID:   s.UnitID,
	}
}
