package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Logistica-api/internal/application/document"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
)

// DocumentHandler maneja los documentos de movimiento: alta, consulta, cierre
// y guía de despacho en PDF.
type DocumentHandler struct {
	aggUC *document.AggregatorUseCase
	pdfUC *document.PDFUseCase
}

// NewDocumentHandler construye el handler de documentos.
func NewDocumentHandler(aggUC *document.AggregatorUseCase, pdfUC *document.PDFUseCase) *DocumentHandler {
	return &DocumentHandler{aggUC: aggUC, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Abrir documento en borrador
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentRequest  true  "kind, bodegas, expected_unit_count"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.aggUC.Create(c.Context(), document.CreateInputDTO{
		UserID:                 userID,
		Kind:                   in.Kind,
		SourceWarehouseID:      in.SourceWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		ProductID:              in.ProductID,
		InstructionID:          in.InstructionID,
		ExpectedUnitCount:      in.ExpectedUnitCount,
	})
	if err != nil {
		return internalOrDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromDocument(doc))
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        state   query  string  false  "draft | posted (vacío = todos)"
// @Param        limit   query  int     false  "máximo de resultados"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.DocumentResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	state := c.Query("state")
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	docs, err := h.aggUC.List(c.Context(), state, limit, offset)
	if err != nil {
		return internalOrDomainError(c, err)
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.FromDocument(d))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Consultar documento con su progreso esperado-vs-capturado
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	doc, err := h.aggUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return internalOrDomainError(c, err)
	}
	return c.JSON(dto.FromDocument(doc))
}

// Close godoc
// @Summary      Cerrar y contabilizar el documento
// @Description  Recepciones exigen captura completa; guías exigen al menos una
//
//	línea. Al cerrar, documento y fardos pasan a posted atómicamente.
//
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {object}  dto.DecisionResponse
// @Router       /api/documents/{id}/close [post]
func (h *DocumentHandler) Close(c *fiber.Ctx) error {
	userID := GetUserID(c)
	decision, err := h.aggUC.Close(c.Context(), c.Params("id"), userID)
	if err != nil {
		return internalOrDomainError(c, err)
	}
	return c.JSON(dto.FromDecision(decision))
}

// PDF godoc
// @Summary      Generar la guía de despacho en PDF
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, err := h.pdfUC.GenerateByDocumentID(c.Context(), c.Params("id"))
	if err != nil {
		return internalOrDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="guia-despacho.pdf"`)
	return c.Send(pdfBytes)
}
