package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-api/internal/application/document"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/application/scan"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/movement"
)

// ScanHandler maneja los escaneos del operador: contra documento o a nivel de
// fardo. La respuesta siempre es la decisión estructurada, nunca un error HTTP
// para un rechazo de negocio.
type ScanHandler struct {
	scanUC *scan.ProcessScanUseCase
	aggUC  *document.AggregatorUseCase
}

// NewScanHandler construye el handler de escaneos.
func NewScanHandler(scanUC *scan.ProcessScanUseCase, aggUC *document.AggregatorUseCase) *ScanHandler {
	return &ScanHandler{scanUC: scanUC, aggUC: aggUC}
}

// ProcessScan godoc
// @Summary      Procesar escaneo de fardo
// @Description  Con document_id registra el fardo contra el documento (la
//
//	operación se deriva de la clase del documento); sin document_id
//	ejecuta la operación a nivel de fardo indicada en operation.
//
// @Tags         scans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "code, operation u document_id, override"
// @Success      200   {object}  dto.DecisionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scans [post]
func (h *ScanHandler) ProcessScan(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code es requerido"})
	}

	// Escaneo contra documento: recepción o despacho según la clase.
	if in.DocumentID != "" {
		decision, err := h.aggUC.Attach(c.Context(), document.AttachInputDTO{
			UserID:     userID,
			DocumentID: in.DocumentID,
			Code:       in.Code,
			Override:   in.Override,
		})
		if err != nil {
			return internalOrDomainError(c, err)
		}
		return c.JSON(dto.FromDecision(decision))
	}

	op := movement.Operation(in.Operation)
	switch op {
	case movement.OpReclassify, movement.OpRelabel, movement.OpAssignToRack, movement.OpRemoveFromRack:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "operation inválida para escaneo sin documento"})
	}
	decision, err := h.scanUC.ProcessScan(c.Context(), scan.ScanInputDTO{
		UserID:              userID,
		Code:                in.Code,
		Operation:           op,
		NewGrade:            in.NewGrade,
		NewLogisticsBarcode: in.NewLogisticsBarcode,
		PalletBarcode:       in.PalletBarcode,
		Override:            in.Override,
	})
	if err != nil {
		return internalOrDomainError(c, err)
	}
	return c.JSON(dto.FromDecision(decision))
}

// DispatchRack godoc
// @Summary      Despachar un pallet completo contra una guía
// @Tags         scans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RackDispatchRequest  true  "document_id, pallet_barcode, override"
// @Success      200   {object}  dto.DecisionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/racks/dispatch [post]
func (h *ScanHandler) DispatchRack(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RackDispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.DocumentID == "" || in.PalletBarcode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "document_id y pallet_barcode son requeridos"})
	}
	decision, err := h.aggUC.AttachRack(c.Context(), document.RackInputDTO{
		UserID:        userID,
		DocumentID:    in.DocumentID,
		PalletBarcode: in.PalletBarcode,
		Override:      in.Override,
	})
	if err != nil {
		return internalOrDomainError(c, err)
	}
	return c.JSON(dto.FromDecision(decision))
}

// internalOrDomainError mapea errores de infraestructura o dominio que no son
// decisiones de negocio.
func internalOrDomainError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
