package scan

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/movement"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// ValidationContext lleva los agregados ya resueltos que el validador cruza
// contra el fardo. Document es nil para operaciones sin documento; Pallet es
// el pallet destino para consolidación. QuotaReserved es la masa ya aceptada
// en el mismo lote contra el mismo cupo (producto/calidad); el chequeo de
// cupo la descuenta del restante para que un pallet completo no pase fardo a
// fardo lo que en conjunto excede la instrucción.
type ValidationContext struct {
	Document      *entity.MovementDocument
	Pallet        *entity.Pallet
	NewGrade      string
	QuotaReserved decimal.Decimal
}

// Validator es el motor de reglas de movimiento. Aplica las reglas en orden
// fijo y la primera que falla gana; la cuota (regla 6) y la capacidad de
// pallet nunca rechazan duro, degradan a aceptación con override.
type Validator struct {
	lineRepo        repository.MovementLineRepository
	warehouseRepo   repository.WarehouseRepository
	productRepo     repository.ProductRepository
	instructionRepo repository.InstructionLineRepository
}

// NewValidator construye el validador con sus puertos de consulta.
func NewValidator(
	lineRepo repository.MovementLineRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	instructionRepo repository.InstructionLineRepository,
) *Validator {
	return &Validator{
		lineRepo:        lineRepo,
		warehouseRepo:   warehouseRepo,
		productRepo:     productRepo,
		instructionRepo: instructionRepo,
	}
}

// Validate decide si el fardo puede ejecutar la operación. El fardo ya debe
// estar resuelto (regla 1, existencia, la cubre el Registry). Devuelve la
// decisión estructurada; error solo ante fallos de infraestructura.
func (v *Validator) Validate(unit *entity.Unit, op movement.Operation, vctx ValidationContext) (movement.Decision, error) {
	// Regla 2: precondición de estado (incluye estado terminal).
	if d := movement.StatePrecondition(unit, op); !d.Accepted() {
		return d, nil
	}

	// Regla 3: exclusividad entre documentos activos. También aplica a las
	// operaciones sin documento que mutan atributos de los que depende un
	// movimiento abierto: la calidad (cupo por calidad) y el pallet (ubicación
	// heredada). Re-etiquetar solo cambia el código alterno y queda exento.
	if vctx.Document != nil || op == movement.OpReclassify || op == movement.OpAssignToRack {
		line, err := v.lineRepo.GetActiveByUnit(unit.ID)
		if err != nil {
			return movement.Decision{}, fmt.Errorf("buscar línea activa: %w", err)
		}
		if line != nil && (vctx.Document == nil || line.DocumentID != vctx.Document.ID) {
			msg := fmt.Sprintf("el fardo %s ya está registrado en otro documento abierto", unit.Barcode)
			if vctx.Document == nil {
				msg = fmt.Sprintf("el fardo %s está registrado en un documento abierto; la operación no procede", unit.Barcode)
			}
			return movement.Reject(movement.ReasonAlreadyActive, msg).
				WithUnit(unit.ID, unit.Barcode).
				WithDocument(line.DocumentID), nil
		}
	}

	// Regla 4: compatibilidad de bodega contraparte (empaque).
	if vctx.Document != nil && vctx.Document.DestinationWarehouseID != "" {
		if d, err := v.checkCounterpartWarehouse(unit, vctx.Document); err != nil {
			return movement.Decision{}, err
		} else if !d.Accepted() {
			return d, nil
		}
	}

	// Regla 5: producto declarado del documento.
	if vctx.Document != nil && vctx.Document.ProductID != "" && vctx.Document.ProductID != unit.ProductID {
		return movement.Reject(movement.ReasonProductMismatch,
			fmt.Sprintf("el fardo %s es de otro producto que el declarado en el documento", unit.Barcode)).
			WithUnit(unit.ID, unit.Barcode).
			WithDocument(vctx.Document.ID), nil
	}

	// Regla 7: elegibilidad de stock en bodegas internas. Solo aplica al
	// despacho; se evalúa antes que la cuota para que un rechazo duro nunca
	// quede enmascarado por un override.
	if op == movement.OpDispatchToWarehouse || op == movement.OpDispatchRack {
		if d, err := v.checkInternalEligibility(unit, vctx.Document); err != nil {
			return movement.Decision{}, err
		} else if !d.Accepted() {
			return d, nil
		}
	}

	// Capacidad de pallet en consolidación: lleno = override, no rechazo.
	if op == movement.OpAssignToRack && vctx.Pallet != nil && vctx.Pallet.IsFull() {
		return movement.AcceptWithOverride(movement.ReasonCapacityExceeded,
			fmt.Sprintf("el pallet %s está lleno (%d/%d); requiere confirmación",
				vctx.Pallet.Barcode, vctx.Pallet.CurrentLoad, vctx.Pallet.Capacity)).
			WithUnit(unit.ID, unit.Barcode), nil
	}

	// Regla 6: cupo de la instrucción de embarque.
	if vctx.Document != nil && vctx.Document.InstructionID != "" {
		return v.checkQuota(unit, vctx.Document, vctx.QuotaReserved)
	}

	return movement.Accept(), nil
}

// checkCounterpartWarehouse cruza la bodega de empaque configurada del destino
// contra la del producto del fardo. El mensaje nombra la bodega en conflicto.
func (v *Validator) checkCounterpartWarehouse(unit *entity.Unit, doc *entity.MovementDocument) (movement.Decision, error) {
	dest, err := v.warehouseRepo.GetByID(doc.DestinationWarehouseID)
	if err != nil {
		return movement.Decision{}, fmt.Errorf("buscar bodega destino: %w", err)
	}
	if dest == nil || dest.PackingWarehouseID == "" {
		return movement.Accept(), nil
	}
	product, err := v.productRepo.GetByID(unit.ProductID)
	if err != nil {
		return movement.Decision{}, fmt.Errorf("buscar producto: %w", err)
	}
	if product == nil || product.PackingWarehouseID == "" {
		return movement.Accept(), nil
	}
	if dest.PackingWarehouseID == product.PackingWarehouseID {
		return movement.Accept(), nil
	}

	conflictName := dest.PackingWarehouseID
	if packing, err := v.warehouseRepo.GetByID(dest.PackingWarehouseID); err == nil && packing != nil {
		conflictName = packing.Name
	}
	return movement.Reject(movement.ReasonLocationMismatch,
		fmt.Sprintf("la bodega de empaque %s configurada en %s no corresponde al comprador del producto del fardo %s",
			conflictName, dest.Name, unit.Barcode)).
		WithUnit(unit.ID, unit.Barcode).
		WithWarehouse(dest.PackingWarehouseID), nil
}

// checkInternalEligibility carga la bodega origen y aplica la regla pura.
func (v *Validator) checkInternalEligibility(unit *entity.Unit, doc *entity.MovementDocument) (movement.Decision, error) {
	sourceID := unit.WarehouseID
	if doc != nil && doc.SourceWarehouseID != "" {
		sourceID = doc.SourceWarehouseID
	}
	source, err := v.warehouseRepo.GetByID(sourceID)
	if err != nil {
		return movement.Decision{}, fmt.Errorf("buscar bodega origen: %w", err)
	}
	return movement.InternalStockEligible(unit, source), nil
}

// checkQuota compara la masa del fardo contra el cupo restante, neto de la
// masa ya reservada por el mismo lote. Un cupo excedido acepta con override;
// la asignación queda igualmente registrada.
func (v *Validator) checkQuota(unit *entity.Unit, doc *entity.MovementDocument, reserved decimal.Decimal) (movement.Decision, error) {
	il, err := v.instructionRepo.Get(doc.InstructionID, unit.ProductID, unit.Grade)
	if err != nil {
		return movement.Decision{}, fmt.Errorf("buscar cupo de instrucción: %w", err)
	}
	if il == nil {
		return movement.Reject(movement.ReasonProductMismatch,
			fmt.Sprintf("la instrucción no ampara producto/calidad del fardo %s", unit.Barcode)).
			WithUnit(unit.ID, unit.Barcode).
			WithDocument(doc.ID), nil
	}
	available := il.RemainingMass.Sub(reserved)
	if unit.Mass.GreaterThan(available) {
		return movement.AcceptWithOverride(movement.ReasonQuotaExceeded,
			fmt.Sprintf("la masa del fardo %s (%s kg) excede el cupo restante de la instrucción (%s kg)",
				unit.Barcode, unit.Mass.String(), available.String())).
			WithUnit(unit.ID, unit.Barcode).
			WithDocument(doc.ID), nil
	}
	return movement.Accept(), nil
}
