package sequence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Logistica-api/internal/application/scan"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// PrepareGapInputDTO entrada para reservar un hueco tras el último fardo
// secuenciado de una fila/cama.
type PrepareGapInputDTO struct {
	UserID       string
	RowID        string
	LayID        string
	LastSequence int // secuencia del último fardo antes de los saltados
	SkipCount    int // cuántos fardos se saltaron
}

// InsertInputDTO entrada para reclamar una posición reservada del plan.
type InsertInputDTO struct {
	UserID    string
	PlanID    string
	SlotIndex int // índice dentro del plan; las posiciones se reclaman en orden
	Code      string
}

// GapUseCase es el único componente autorizado a reservar rangos de secuencia.
// Reserva (last, last+skip] sin renumerar las secuencias superiores: la fila
// mantiene el rango reservado hasta que InsertAt lo agota. Quien necesite una
// fila contigua debe pedir un plan nuevo y migrar manualmente.
type GapUseCase struct {
	txRunner TxRunner
	planRepo repository.GapPlanRepository
	registry *scan.Registry
}

// NewGapUseCase construye el caso de uso.
func NewGapUseCase(txRunner TxRunner, planRepo repository.GapPlanRepository, registry *scan.Registry) *GapUseCase {
	return &GapUseCase{txRunner: txRunner, planRepo: planRepo, registry: registry}
}

// PrepareGap reserva el rango de enteros (LastSequence, LastSequence+SkipCount]
// dentro de la misma fila/cama y devuelve el plan persistido.
func (uc *GapUseCase) PrepareGap(ctx context.Context, input PrepareGapInputDTO) (*entity.GapPlan, error) {
	if input.RowID == "" || input.SkipCount <= 0 || input.LastSequence < 0 {
		return nil, domain.ErrInvalidInput
	}
	plan := &entity.GapPlan{
		ID:                   uuid.New().String(),
		RowID:                input.RowID,
		LayID:                input.LayID,
		StartSequence:        input.LastSequence + 1,
		EndSequenceExclusive: input.LastSequence + 1 + input.SkipCount,
		FilledCount:          0,
		CreatedAt:            time.Now(),
		CreatedBy:            input.UserID,
	}
	if err := uc.planRepo.Create(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// InsertAt reclama la posición reservada StartSequence+SlotIndex para el fardo
// escaneado. Las posiciones se reclaman en orden estricto. Devuelve
// ErrAllSlotsFilled si el índice excede la capacidad restante del plan,
// ErrInvalidInput si salta posiciones, y ErrSlotConflict si la secuencia ya
// está ocupada; este último es un error de integridad fatal que detiene la
// sesión de secuenciado.
func (uc *GapUseCase) InsertAt(ctx context.Context, input InsertInputDTO) (*entity.SequenceSlot, error) {
	if input.SlotIndex < 0 {
		return nil, domain.ErrInvalidInput
	}
	unit, err := uc.registry.Resolve(input.Code)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	if unit.IsFinalized() {
		return nil, domain.ErrConflict
	}

	var slot *entity.SequenceSlot
	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		planRepo repository.GapPlanRepository,
		slotRepo repository.SequenceSlotRepository,
		pendingRepo repository.PendingOperationRepository,
	) error {
		plan, err := planRepo.GetForUpdate(input.PlanID)
		if err != nil {
			return err
		}
		if plan == nil {
			return domain.ErrNotFound
		}
		if input.SlotIndex >= plan.Capacity() || plan.Remaining() == 0 {
			return domain.ErrAllSlotsFilled
		}
		// Las posiciones se reclaman en orden: la siguiente libre es siempre
		// FilledCount. Un índice fuera de orden es error del operador, no un
		// conflicto de secuencia.
		if input.SlotIndex != plan.FilledCount {
			return domain.ErrInvalidInput
		}

		target := plan.StartSequence + input.SlotIndex
		occupied, err := slotRepo.Get(plan.RowID, plan.LayID, target)
		if err != nil {
			return err
		}
		if occupied != nil {
			// Doble escritura: nunca se recupera en silencio.
			return domain.ErrSlotConflict
		}

		slot = &entity.SequenceSlot{
			RowID:     plan.RowID,
			LayID:     plan.LayID,
			Sequence:  target,
			UnitID:    unit.ID,
			CreatedAt: now,
		}
		if err := slotRepo.Create(slot); err != nil {
			return err
		}

		plan.FilledCount++
		if err := planRepo.Update(plan); err != nil {
			return err
		}

		return pendingRepo.Create(&entity.PendingOperation{
			ID:        uuid.New().String(),
			Kind:      entity.PendingOpSequenceInsert,
			UnitID:    unit.ID,
			RowID:     plan.RowID,
			Sequence:  target,
			CreatedAt: now,
			CreatedBy: input.UserID,
		})
	})
	if err != nil {
		return nil, err
	}
	return slot, nil
}
