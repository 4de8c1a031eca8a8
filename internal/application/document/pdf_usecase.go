package document

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// DispatchLineForPDF línea plana para el render de la guía.
type DispatchLineForPDF struct {
	Barcode string
	Grade   string
	Mass    decimal.Decimal
}

// DispatchNotePDFGenerator puerto del render de la guía de despacho.
type DispatchNotePDFGenerator interface {
	GenerateDispatchNotePDF(
		ctx context.Context,
		doc *entity.MovementDocument,
		source, destination *entity.Warehouse,
		lines []DispatchLineForPDF,
	) ([]byte, error)
}

// PDFUseCase arma los datos de la guía desde el ledger y delega el render.
// Es solo lado de lectura: no toca estados.
type PDFUseCase struct {
	docRepo       repository.MovementDocumentRepository
	lineRepo      repository.MovementLineRepository
	unitRepo      repository.UnitRepository
	warehouseRepo repository.WarehouseRepository
	generator     DispatchNotePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	docRepo repository.MovementDocumentRepository,
	lineRepo repository.MovementLineRepository,
	unitRepo repository.UnitRepository,
	warehouseRepo repository.WarehouseRepository,
	generator DispatchNotePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		docRepo:       docRepo,
		lineRepo:      lineRepo,
		unitRepo:      unitRepo,
		warehouseRepo: warehouseRepo,
		generator:     generator,
	}
}

// GenerateByDocumentID genera el PDF de la guía y devuelve sus bytes.
func (uc *PDFUseCase) GenerateByDocumentID(ctx context.Context, documentID string) ([]byte, error) {
	doc, err := uc.docRepo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}

	var source, destination *entity.Warehouse
	if doc.SourceWarehouseID != "" {
		if source, err = uc.warehouseRepo.GetByID(doc.SourceWarehouseID); err != nil {
			return nil, err
		}
	}
	if doc.DestinationWarehouseID != "" {
		if destination, err = uc.warehouseRepo.GetByID(doc.DestinationWarehouseID); err != nil {
			return nil, err
		}
	}

	lines, err := uc.lineRepo.ListByDocument(doc.ID)
	if err != nil {
		return nil, err
	}
	pdfLines := make([]DispatchLineForPDF, 0, len(lines))
	for _, l := range lines {
		if l.Cancelled {
			continue
		}
		unit, err := uc.unitRepo.GetByID(l.UnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			continue
		}
		pdfLines = append(pdfLines, DispatchLineForPDF{
			Barcode: unit.Barcode,
			Grade:   unit.Grade,
			Mass:    unit.Mass,
		})
	}

	return uc.generator.GenerateDispatchNotePDF(ctx, doc, source, destination, pdfLines)
}
