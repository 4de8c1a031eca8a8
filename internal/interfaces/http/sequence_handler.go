package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/application/sequence"
	"github.com/jhoicas/Logistica-api/internal/domain"
)

// SequenceHandler maneja los planes de inserción de secuencia del piso de venta.
type SequenceHandler struct {
	uc *sequence.GapUseCase
}

// NewSequenceHandler construye el handler de secuenciado.
func NewSequenceHandler(uc *sequence.GapUseCase) *SequenceHandler {
	return &SequenceHandler{uc: uc}
}

// PrepareGap godoc
// @Summary      Reservar un hueco de secuencias para fardos saltados
// @Tags         sequence
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PrepareGapRequest  true  "row_id, last_sequence, skip_count"
// @Success      201   {object}  dto.GapPlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sequence/gaps [post]
func (h *SequenceHandler) PrepareGap(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.PrepareGapRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	plan, err := h.uc.PrepareGap(c.Context(), sequence.PrepareGapInputDTO{
		UserID:       userID,
		RowID:        in.RowID,
		LayID:        in.LayID,
		LastSequence: in.LastSequence,
		SkipCount:    in.SkipCount,
	})
	if err != nil {
		return internalOrDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromGapPlan(plan))
}

// InsertSlot godoc
// @Summary      Reclamar una posición reservada del plan para un fardo
// @Description  Devuelve 409 ALL_SLOTS_FILLED cuando el plan se agota y 409
//
//	SLOT_CONFLICT ante doble escritura de secuencia; este último es
//	fatal y la sesión de secuenciado debe detenerse.
//
// @Tags         sequence
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del plan"
// @Param        body  body  dto.InsertSlotRequest  true  "slot_index, code"
// @Success      201   {object}  dto.SequenceSlotResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sequence/gaps/{id}/slots [post]
func (h *SequenceHandler) InsertSlot(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.InsertSlotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code es requerido"})
	}
	slot, err := h.uc.InsertAt(c.Context(), sequence.InsertInputDTO{
		UserID:    userID,
		PlanID:    c.Params("id"),
		SlotIndex: in.SlotIndex,
		Code:      in.Code,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAllSlotsFilled) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALL_SLOTS_FILLED", Message: "todas las posiciones reservadas del plan están ocupadas"})
		}
		if errors.Is(err, domain.ErrSlotConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SLOT_CONFLICT", Message: "la posición ya está ocupada; detenga la sesión de secuenciado"})
		}
		return internalOrDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromSequenceSlot(slot))
}
