package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/application/scan"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/movement"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// AttachInputDTO entrada para registrar un escaneo contra un documento. La
// operación se deriva de la clase del documento: recepción para
// receipt/missing_receipt, despacho para dispatch.
type AttachInputDTO struct {
	UserID     string
	DocumentID string
	Code       string
	Override   bool
}

// RackInputDTO entrada para despachar un pallet completo contra una guía.
type RackInputDTO struct {
	UserID        string
	DocumentID    string
	PalletBarcode string
	Override      bool
}

// CreateInputDTO entrada para abrir un documento en borrador.
type CreateInputDTO struct {
	UserID                 string
	Kind                   string
	SourceWarehouseID      string
	DestinationWarehouseID string
	ProductID              string
	InstructionID          string
	ExpectedUnitCount      int
}

// AggregatorUseCase agrupa movimientos aceptados bajo documentos de despacho,
// recepción o faltantes, controla esperado-vs-capturado y la compuerta de
// cierre. Delega la validación al motor de reglas antes de crear cada línea.
type AggregatorUseCase struct {
	txRunner      TxRunner
	registry      *scan.Registry
	validator     *scan.Validator
	docRepo       repository.MovementDocumentRepository
	lineRepo      repository.MovementLineRepository
	unitRepo      repository.UnitRepository
	palletRepo    repository.PalletRepository
	warehouseRepo repository.WarehouseRepository
}

// NewAggregatorUseCase construye el agregador.
func NewAggregatorUseCase(
	txRunner TxRunner,
	registry *scan.Registry,
	validator *scan.Validator,
	docRepo repository.MovementDocumentRepository,
	lineRepo repository.MovementLineRepository,
	unitRepo repository.UnitRepository,
	palletRepo repository.PalletRepository,
	warehouseRepo repository.WarehouseRepository,
) *AggregatorUseCase {
	return &AggregatorUseCase{
		txRunner:      txRunner,
		registry:      registry,
		validator:     validator,
		docRepo:       docRepo,
		lineRepo:      lineRepo,
		unitRepo:      unitRepo,
		palletRepo:    palletRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Create abre un documento en borrador validando clase y bodegas.
func (uc *AggregatorUseCase) Create(ctx context.Context, input CreateInputDTO) (*entity.MovementDocument, error) {
	switch input.Kind {
	case entity.DocumentKindDispatch, entity.DocumentKindReceipt, entity.DocumentKindMissingReceipt:
	default:
		return nil, domain.ErrInvalidInput
	}
	if input.SourceWarehouseID != "" {
		if wh, err := uc.warehouseRepo.GetByID(input.SourceWarehouseID); err != nil || wh == nil {
			return nil, domain.ErrNotFound
		}
	}
	if input.DestinationWarehouseID != "" {
		if wh, err := uc.warehouseRepo.GetByID(input.DestinationWarehouseID); err != nil || wh == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	doc := &entity.MovementDocument{
		ID:                     uuid.New().String(),
		Kind:                   input.Kind,
		SourceWarehouseID:      input.SourceWarehouseID,
		DestinationWarehouseID: input.DestinationWarehouseID,
		ProductID:              input.ProductID,
		InstructionID:          input.InstructionID,
		State:                  entity.DocumentStateDraft,
		ExpectedUnitCount:      input.ExpectedUnitCount,
		CreatedAt:              now,
		UpdatedAt:              now,
		CreatedBy:              input.UserID,
	}
	if err := uc.docRepo.Create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetByID devuelve el documento o ErrNotFound.
func (uc *AggregatorUseCase) GetByID(ctx context.Context, id string) (*entity.MovementDocument, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// List lista documentos por estado (vacío = todos) con paginación.
func (uc *AggregatorUseCase) List(ctx context.Context, state string, limit, offset int) ([]*entity.MovementDocument, error) {
	return uc.docRepo.List(state, limit, offset)
}

// Attach valida y registra un fardo escaneado contra el documento. Reescanear
// el mismo código contra el mismo documento es un no-op: una sola línea, los
// contadores incrementan una sola vez.
func (uc *AggregatorUseCase) Attach(ctx context.Context, input AttachInputDTO) (movement.Decision, error) {
	doc, err := uc.docRepo.GetByID(input.DocumentID)
	if err != nil {
		return movement.Decision{}, err
	}
	if doc == nil {
		return movement.Reject(movement.ReasonNotFound, "documento no encontrado").
			WithDocument(input.DocumentID), nil
	}
	if doc.IsFinalized() {
		return movement.Reject(movement.ReasonAlreadyFinalized, "el documento ya fue contabilizado").
			WithDocument(doc.ID), nil
	}

	unit, err := uc.registry.Resolve(input.Code)
	if err != nil {
		return movement.Decision{}, err
	}
	if unit == nil {
		return movement.Reject(movement.ReasonNotFound,
			fmt.Sprintf("código %s no corresponde a ningún fardo", input.Code)), nil
	}

	// Idempotencia del re-escaneo: línea ya existente = no-op aceptado.
	existing, err := uc.lineRepo.GetByDocumentAndUnit(doc.ID, unit.ID)
	if err != nil {
		return movement.Decision{}, err
	}
	if existing != nil && !existing.Cancelled {
		d := movement.Accept().WithUnit(unit.ID, unit.Barcode).WithDocument(doc.ID)
		d.Message = fmt.Sprintf("el fardo %s ya está registrado en el documento", unit.Barcode)
		return d, nil
	}

	op := operationFor(doc)
	decision, err := uc.validator.Validate(unit, op, scan.ValidationContext{Document: doc})
	if err != nil {
		return movement.Decision{}, err
	}
	if decision.Rejected() || (decision.NeedsOverride() && !input.Override) {
		return decision, nil
	}

	override := decision.NeedsOverride() && input.Override
	if err := uc.applyAttach(ctx, doc, []*entity.Unit{unit}, op, input.UserID, override, ""); err != nil {
		return movement.Decision{}, err
	}
	return decision, nil
}

// AttachRack valida cada fardo del pallet y, si todos pasan las reglas duras,
// los registra en bloque contra la guía. Un solo fardo que falle una regla
// dura rechaza el pallet completo nombrándolo, sin tocar ningún estado; si
// solo dispara la cuota, procede tras una única confirmación.
func (uc *AggregatorUseCase) AttachRack(ctx context.Context, input RackInputDTO) (movement.Decision, error) {
	doc, err := uc.docRepo.GetByID(input.DocumentID)
	if err != nil {
		return movement.Decision{}, err
	}
	if doc == nil {
		return movement.Reject(movement.ReasonNotFound, "documento no encontrado").
			WithDocument(input.DocumentID), nil
	}
	if doc.IsFinalized() {
		return movement.Reject(movement.ReasonAlreadyFinalized, "el documento ya fue contabilizado").
			WithDocument(doc.ID), nil
	}
	if doc.Kind != entity.DocumentKindDispatch {
		return movement.Reject(movement.ReasonInvalidState,
			"el despacho de pallet solo aplica a guías de despacho").
			WithDocument(doc.ID), nil
	}

	pallet, err := uc.palletRepo.GetByBarcode(input.PalletBarcode)
	if err != nil {
		return movement.Decision{}, err
	}
	if pallet == nil {
		return movement.Reject(movement.ReasonNotFound,
			fmt.Sprintf("código %s no corresponde a ningún pallet", input.PalletBarcode)), nil
	}

	units, err := uc.unitRepo.ListByPallet(pallet.ID)
	if err != nil {
		return movement.Decision{}, err
	}
	if len(units) == 0 {
		return movement.Reject(movement.ReasonInvalidState,
			fmt.Sprintf("el pallet %s no tiene fardos consolidados", pallet.Barcode)), nil
	}

	var pending []*entity.Unit
	var overrideDecision *movement.Decision
	// Masa ya aceptada en este lote por cupo (producto/calidad): el cupo se
	// evalúa contra el restante neto, no contra el inicial, para que el pallet
	// completo no pase fardo a fardo lo que en conjunto excede la instrucción.
	reserved := make(map[string]decimal.Decimal)
	for _, unit := range units {
		existing, err := uc.lineRepo.GetByDocumentAndUnit(doc.ID, unit.ID)
		if err != nil {
			return movement.Decision{}, err
		}
		if existing != nil && !existing.Cancelled {
			continue // ya registrado en un escaneo anterior
		}
		quotaKey := unit.ProductID + "|" + unit.Grade
		decision, err := uc.validator.Validate(unit, movement.OpDispatchRack, scan.ValidationContext{
			Document:      doc,
			QuotaReserved: reserved[quotaKey],
		})
		if err != nil {
			return movement.Decision{}, err
		}
		if decision.Rejected() {
			// Regla dura (3,4,5,7): el pallet completo se rechaza.
			return decision, nil
		}
		if decision.NeedsOverride() && overrideDecision == nil {
			overrideDecision = &decision
		}
		if doc.InstructionID != "" {
			reserved[quotaKey] = reserved[quotaKey].Add(unit.Mass)
		}
		pending = append(pending, unit)
	}

	if overrideDecision != nil && !input.Override {
		return *overrideDecision, nil
	}
	if len(pending) == 0 {
		d := movement.Accept().WithDocument(doc.ID)
		d.Message = fmt.Sprintf("todos los fardos del pallet %s ya estaban registrados", pallet.Barcode)
		return d, nil
	}

	override := overrideDecision != nil && input.Override
	if err := uc.applyAttach(ctx, doc, pending, movement.OpDispatchRack, input.UserID, override, pallet.ID); err != nil {
		return movement.Decision{}, err
	}
	if overrideDecision != nil {
		return *overrideDecision, nil
	}
	return movement.Accept().WithDocument(doc.ID), nil
}

// applyAttach aplica en una sola transacción el alta de línea, la transición
// del fardo, los contadores del documento, el descuento de cupo y la
// operación pendiente, para uno o varios fardos.
func (uc *AggregatorUseCase) applyAttach(
	ctx context.Context,
	doc *entity.MovementDocument,
	units []*entity.Unit,
	op movement.Operation,
	userID string,
	override bool,
	palletID string,
) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		unitRepo repository.UnitRepository,
		docRepo repository.MovementDocumentRepository,
		lineRepo repository.MovementLineRepository,
		instructionRepo repository.InstructionLineRepository,
		pendingRepo repository.PendingOperationRepository,
	) error {
		locked, err := docRepo.GetForUpdate(doc.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if locked.IsFinalized() {
			return domain.ErrConflict
		}

		for _, unit := range units {
			u, err := unitRepo.GetForUpdate(unit.ID)
			if err != nil {
				return err
			}
			if u == nil {
				return domain.ErrNotFound
			}
			// Revalidación de idempotencia bajo lock.
			if existing, err := lineRepo.GetByDocumentAndUnit(locked.ID, u.ID); err != nil {
				return err
			} else if existing != nil && !existing.Cancelled {
				continue
			}

			scan.Apply(u, op, ApplyDocumentParams(locked, now))
			if err := unitRepo.Update(u); err != nil {
				return err
			}

			if err := lineRepo.Create(&entity.MovementLine{
				ID:         uuid.New().String(),
				DocumentID: locked.ID,
				UnitID:     u.ID,
				Mass:       u.Mass,
				CreatedAt:  now,
				CreatedBy:  userID,
			}); err != nil {
				return err
			}

			locked.CapturedUnitCount++
			if op == movement.OpReceive {
				locked.ReceivedMass = locked.ReceivedMass.Add(u.Mass)
			} else {
				locked.ShippedMass = locked.ShippedMass.Add(u.Mass)
			}

			// Descuento de cupo; con override puede quedar negativo y queda
			// igualmente registrado.
			if locked.InstructionID != "" && op != movement.OpReceive {
				il, err := instructionRepo.GetForUpdate(locked.InstructionID, u.ProductID, u.Grade)
				if err != nil {
					return err
				}
				if il == nil {
					return domain.ErrNotFound
				}
				remaining := il.RemainingMass.Sub(u.Mass)
				if err := instructionRepo.UpdateRemainingMass(locked.InstructionID, u.ProductID, u.Grade, remaining); err != nil {
					return err
				}
			}
		}

		locked.UpdatedAt = now
		if err := docRepo.Update(locked); err != nil {
			return err
		}

		kind := entity.PendingOpDispatch
		switch {
		case op == movement.OpReceive:
			kind = entity.PendingOpReceive
		case op == movement.OpDispatchRack:
			kind = entity.PendingOpDispatchRack
		}
		pendingOp := &entity.PendingOperation{
			ID:         uuid.New().String(),
			Kind:       kind,
			DocumentID: locked.ID,
			PalletID:   palletID,
			Override:   override,
			CreatedAt:  now,
			CreatedBy:  userID,
		}
		if len(units) == 1 {
			pendingOp.UnitID = units[0].ID
		}
		return pendingRepo.Create(pendingOp)
	})
}

// Close aplica la compuerta de cierre: los documentos estilo recepción exigen
// captura completa; las guías exigen al menos una línea. Al cerrar, documento
// y fardos pasan a posted en la misma transacción.
func (uc *AggregatorUseCase) Close(ctx context.Context, documentID, userID string) (movement.Decision, error) {
	var decision movement.Decision
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		unitRepo repository.UnitRepository,
		docRepo repository.MovementDocumentRepository,
		lineRepo repository.MovementLineRepository,
		_ repository.InstructionLineRepository,
		pendingRepo repository.PendingOperationRepository,
	) error {
		doc, err := docRepo.GetForUpdate(documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			decision = movement.Reject(movement.ReasonNotFound, "documento no encontrado").
				WithDocument(documentID)
			return nil
		}
		if doc.IsFinalized() {
			decision = movement.Reject(movement.ReasonAlreadyFinalized, "el documento ya fue contabilizado").
				WithDocument(doc.ID)
			return nil
		}

		lines, err := lineRepo.ListByDocument(doc.ID)
		if err != nil {
			return err
		}
		active := make([]*entity.MovementLine, 0, len(lines))
		for _, l := range lines {
			if !l.Cancelled {
				active = append(active, l)
			}
		}

		if len(active) == 0 {
			decision = movement.Reject(movement.ReasonInvalidState,
				"el documento no tiene líneas registradas").WithDocument(doc.ID)
			return nil
		}
		if doc.IsReceiptStyle() && doc.CapturedUnitCount < doc.ExpectedUnitCount {
			decision = movement.Reject(movement.ReasonInvalidState,
				fmt.Sprintf("captura incompleta: %d de %d fardos esperados",
					doc.CapturedUnitCount, doc.ExpectedUnitCount)).
				WithDocument(doc.ID)
			return nil
		}

		doc.State = entity.DocumentStatePosted
		doc.UpdatedAt = now
		if err := docRepo.Update(doc); err != nil {
			return err
		}
		for _, l := range active {
			u, err := unitRepo.GetForUpdate(l.UnitID)
			if err != nil {
				return err
			}
			if u == nil {
				return domain.ErrNotFound
			}
			u.State = entity.UnitStatePosted
			u.UpdatedAt = now
			if err := unitRepo.Update(u); err != nil {
				return err
			}
		}

		decision = movement.Accept().WithDocument(doc.ID)
		return pendingRepo.Create(&entity.PendingOperation{
			ID:         uuid.New().String(),
			Kind:       entity.PendingOpCloseDocument,
			DocumentID: doc.ID,
			CreatedAt:  now,
			CreatedBy:  userID,
		})
	})
	if err != nil {
		return movement.Decision{}, err
	}
	return decision, nil
}

// operationFor deriva la operación de la clase del documento.
func operationFor(doc *entity.MovementDocument) movement.Operation {
	if doc.IsReceiptStyle() {
		return movement.OpReceive
	}
	return movement.OpDispatchToWarehouse
}

// ApplyDocumentParams arma los parámetros de transición para un attach.
func ApplyDocumentParams(doc *entity.MovementDocument, now time.Time) scan.ApplyParams {
	return scan.ApplyParams{Document: doc, Now: now}
}
