package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/movement"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// ScanInputDTO entrada para procesar un escaneo sin documento: reclasificar,
// re-etiquetar, consolidar en pallet o desconsolidar. Override viaja de
// vuelta tras la confirmación del operador y colapsa el flujo
// validar-alertar-escribir en una sola llamada.
type ScanInputDTO struct {
	UserID              string
	Code                string
	Operation           movement.Operation
	NewGrade            string // Reclassify
	NewLogisticsBarcode string // Relabel
	PalletBarcode       string // AssignToRack
	Override            bool
}

// ProcessScanUseCase procesa escaneos de operaciones a nivel de fardo con el
// patrón validar-y-aplicar: una sola decisión, una sola transacción.
type ProcessScanUseCase struct {
	txRunner   TxRunner
	registry   *Registry
	validator  *Validator
	palletRepo repository.PalletRepository
}

// NewProcessScanUseCase construye el caso de uso.
func NewProcessScanUseCase(
	txRunner TxRunner,
	registry *Registry,
	validator *Validator,
	palletRepo repository.PalletRepository,
) *ProcessScanUseCase {
	return &ProcessScanUseCase{
		txRunner:   txRunner,
		registry:   registry,
		validator:  validator,
		palletRepo: palletRepo,
	}
}

// ProcessScan resuelve el código, valida la operación y, si procede (con o
// sin override confirmado), la aplica atómicamente. La decisión devuelta es
// la que la capa de presentación muestra al operador; error solo ante fallos
// de infraestructura.
func (uc *ProcessScanUseCase) ProcessScan(ctx context.Context, input ScanInputDTO) (movement.Decision, error) {
	switch input.Operation {
	case movement.OpReclassify, movement.OpRelabel, movement.OpAssignToRack, movement.OpRemoveFromRack:
	default:
		return movement.Decision{}, domain.ErrInvalidInput
	}
	if input.Operation == movement.OpReclassify && input.NewGrade == "" {
		return movement.Decision{}, domain.ErrInvalidInput
	}
	if input.Operation == movement.OpRelabel && input.NewLogisticsBarcode == "" {
		return movement.Decision{}, domain.ErrInvalidInput
	}

	// Regla 1: existencia.
	unit, err := uc.registry.Resolve(input.Code)
	if err != nil {
		return movement.Decision{}, err
	}
	if unit == nil {
		return movement.Reject(movement.ReasonNotFound,
			fmt.Sprintf("código %s no corresponde a ningún fardo", input.Code)), nil
	}

	var pallet *entity.Pallet
	if input.Operation == movement.OpAssignToRack {
		pallet, err = uc.palletRepo.GetByBarcode(input.PalletBarcode)
		if err != nil {
			return movement.Decision{}, err
		}
		if pallet == nil {
			return movement.Reject(movement.ReasonNotFound,
				fmt.Sprintf("código %s no corresponde a ningún pallet", input.PalletBarcode)), nil
		}
	}

	decision, err := uc.validator.Validate(unit, input.Operation, ValidationContext{
		Pallet:   pallet,
		NewGrade: input.NewGrade,
	})
	if err != nil {
		return movement.Decision{}, err
	}
	if decision.Rejected() {
		return decision, nil
	}
	if decision.NeedsOverride() && !input.Override {
		return decision, nil
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		unitRepo repository.UnitRepository,
		palletRepo repository.PalletRepository,
		pendingRepo repository.PendingOperationRepository,
	) error {
		locked, err := unitRepo.GetForUpdate(unit.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		// Revalidación defensiva del terminal bajo lock.
		if locked.IsFinalized() {
			return domain.ErrConflict
		}

		// Pallet del que sale, antes de que Apply limpie la referencia.
		var previousPalletID string
		if locked.PalletID != nil {
			previousPalletID = *locked.PalletID
		}

		Apply(locked, input.Operation, ApplyParams{
			Pallet:              pallet,
			NewGrade:            input.NewGrade,
			NewLogisticsBarcode: input.NewLogisticsBarcode,
			Now:                 now,
		})
		if err := unitRepo.Update(locked); err != nil {
			return err
		}

		// Carga del pallet: siempre ±1, nunca recalculada.
		switch input.Operation {
		case movement.OpAssignToRack:
			if err := palletRepo.AdjustLoad(pallet.ID, +1); err != nil {
				return err
			}
		case movement.OpRemoveFromRack:
			if previousPalletID != "" {
				if err := palletRepo.AdjustLoad(previousPalletID, -1); err != nil {
					return err
				}
			}
		}

		return pendingRepo.Create(&entity.PendingOperation{
			ID:                  uuid.New().String(),
			Kind:                pendingKind(input.Operation),
			UnitID:              locked.ID,
			PalletID:            pendingPalletID(input.Operation, pallet, previousPalletID),
			NewGrade:            input.NewGrade,
			NewLogisticsBarcode: input.NewLogisticsBarcode,
			Override:            decision.NeedsOverride() && input.Override,
			CreatedAt:           now,
			CreatedBy:           input.UserID,
		})
	})
	if err != nil {
		return movement.Decision{}, err
	}
	return decision, nil
}

func pendingKind(op movement.Operation) string {
	switch op {
	case movement.OpReclassify:
		return entity.PendingOpReclassify
	case movement.OpRelabel:
		return entity.PendingOpRelabel
	case movement.OpAssignToRack:
		return entity.PendingOpAssignToRack
	case movement.OpRemoveFromRack:
		return entity.PendingOpRemoveFromRack
	}
	return string(op)
}

func pendingPalletID(op movement.Operation, pallet *entity.Pallet, previous string) string {
	if op == movement.OpAssignToRack && pallet != nil {
		return pallet.ID
	}
	if op == movement.OpRemoveFromRack {
		return previous
	}
	return ""
}
