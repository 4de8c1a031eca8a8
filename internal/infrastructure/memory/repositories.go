package memory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// Los repos devuelven copias: los casos de uso mutan lo obtenido con
// GetForUpdate y lo persisten con Update, igual que contra PostgreSQL.

// ── units ─────────────────────────────────────────────────────────────────────

type unitRepo struct{ s *Store }

func (r *unitRepo) Create(u *entity.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.units[u.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *u
	r.s.units[u.ID] = &cp
	return nil
}

func (r *unitRepo) GetByID(id string) (*entity.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return copyUnit(r.s.units[id]), nil
}

func (r *unitRepo) GetForUpdate(id string) (*entity.Unit, error) {
	return r.GetByID(id)
}

func (r *unitRepo) GetByBarcode(barcode string) (*entity.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.units {
		if u.Barcode == barcode {
			return copyUnit(u), nil
		}
	}
	return nil, nil
}

func (r *unitRepo) GetByLogisticsBarcode(code string) (*entity.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.units {
		if u.LogisticsBarcode != "" && u.LogisticsBarcode == code {
			return copyUnit(u), nil
		}
	}
	return nil, nil
}

func (r *unitRepo) ListByPallet(palletID string) ([]*entity.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Unit
	for _, u := range r.s.units {
		if u.PalletID != nil && *u.PalletID == palletID {
			out = append(out, copyUnit(u))
		}
	}
	return out, nil
}

func (r *unitRepo) Update(u *entity.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.units[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	r.s.units[u.ID] = &cp
	return nil
}

func copyUnit(u *entity.Unit) *entity.Unit {
	if u == nil {
		return nil
	}
	cp := *u
	if u.PalletID != nil {
		pid := *u.PalletID
		cp.PalletID = &pid
	}
	return &cp
}

// ── pallets ───────────────────────────────────────────────────────────────────

type palletRepo struct{ s *Store }

func (r *palletRepo) Create(p *entity.Pallet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.pallets[p.ID] = &cp
	return nil
}

func (r *palletRepo) GetByID(id string) (*entity.Pallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.pallets[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *palletRepo) GetByBarcode(barcode string) (*entity.Pallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.pallets {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *palletRepo) AdjustLoad(palletID string, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pallets[palletID]
	if !ok {
		return fmt.Errorf("adjust pallet load: pallet %s no existe", palletID)
	}
	p.CurrentLoad += delta
	return nil
}

// ── warehouses ────────────────────────────────────────────────────────────────

type warehouseRepo struct{ s *Store }

func (r *warehouseRepo) Create(w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *warehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.s.warehouses[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *warehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

// ── products ──────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *productRepo) GetByCode(code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// ── movement documents ────────────────────────────────────────────────────────

type documentRepo struct{ s *Store }

func (r *documentRepo) Create(d *entity.MovementDocument) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *d
	r.s.documents[d.ID] = &cp
	return nil
}

func (r *documentRepo) GetByID(id string) (*entity.MovementDocument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.documents[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (r *documentRepo) GetForUpdate(id string) (*entity.MovementDocument, error) {
	return r.GetByID(id)
}

func (r *documentRepo) List(state string, limit, offset int) ([]*entity.MovementDocument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.MovementDocument
	for _, d := range r.s.documents {
		if state == "" || d.State == state {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *documentRepo) Update(d *entity.MovementDocument) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.documents[d.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *d
	r.s.documents[d.ID] = &cp
	return nil
}

// ── movement lines ────────────────────────────────────────────────────────────

type lineRepo struct{ s *Store }

func (r *lineRepo) Create(l *entity.MovementLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.lines = append(r.s.lines, &cp)
	return nil
}

func (r *lineRepo) GetActiveByUnit(unitID string) (*entity.MovementLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.lines {
		if l.UnitID != unitID || l.Cancelled {
			continue
		}
		doc, ok := r.s.documents[l.DocumentID]
		if ok && doc.State != entity.DocumentStatePosted {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *lineRepo) GetByDocumentAndUnit(documentID, unitID string) (*entity.MovementLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.lines {
		if l.DocumentID == documentID && l.UnitID == unitID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *lineRepo) ListByDocument(documentID string) ([]*entity.MovementLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.MovementLine
	for _, l := range r.s.lines {
		if l.DocumentID == documentID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── instruction lines ─────────────────────────────────────────────────────────

type instructionRepo struct{ s *Store }

func instructionKey(instructionID, productID, grade string) string {
	return instructionID + "|" + productID + "|" + grade
}

func (r *instructionRepo) Get(instructionID, productID, grade string) (*entity.InstructionLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if il, ok := r.s.instr[instructionKey(instructionID, productID, grade)]; ok {
		cp := *il
		return &cp, nil
	}
	return nil, nil
}

func (r *instructionRepo) GetForUpdate(instructionID, productID, grade string) (*entity.InstructionLine, error) {
	return r.Get(instructionID, productID, grade)
}

func (r *instructionRepo) UpdateRemainingMass(instructionID, productID, grade string, remaining decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	il, ok := r.s.instr[instructionKey(instructionID, productID, grade)]
	if !ok {
		return domain.ErrNotFound
	}
	il.RemainingMass = remaining
	return nil
}

// SeedInstruction inserta un cupo directamente (solo setup de tests).
func (s *Store) SeedInstruction(il *entity.InstructionLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *il
	s.instr[instructionKey(il.InstructionID, il.ProductID, il.Grade)] = &cp
}

// ── sequence slots ────────────────────────────────────────────────────────────

type slotRepo struct{ s *Store }

func slotKey(rowID, layID string, sequence int) string {
	return fmt.Sprintf("%s|%s|%d", rowID, layID, sequence)
}

func (r *slotRepo) Create(slot *entity.SequenceSlot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := slotKey(slot.RowID, slot.LayID, slot.Sequence)
	if _, ok := r.s.slots[key]; ok {
		return domain.ErrSlotConflict
	}
	cp := *slot
	r.s.slots[key] = &cp
	return nil
}

func (r *slotRepo) Get(rowID, layID string, sequence int) (*entity.SequenceSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if slot, ok := r.s.slots[slotKey(rowID, layID, sequence)]; ok {
		cp := *slot
		return &cp, nil
	}
	return nil, nil
}

func (r *slotRepo) MaxSequence(rowID, layID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	max := 0
	for _, slot := range r.s.slots {
		if slot.RowID == rowID && slot.LayID == layID && slot.Sequence > max {
			max = slot.Sequence
		}
	}
	return max, nil
}

// ── gap plans ─────────────────────────────────────────────────────────────────

type planRepo struct{ s *Store }

func (r *planRepo) Create(plan *entity.GapPlan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *plan
	r.s.plans[plan.ID] = &cp
	return nil
}

func (r *planRepo) GetByID(id string) (*entity.GapPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.plans[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *planRepo) GetForUpdate(id string) (*entity.GapPlan, error) {
	return r.GetByID(id)
}

func (r *planRepo) Update(plan *entity.GapPlan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.plans[plan.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *plan
	r.s.plans[plan.ID] = &cp
	return nil
}

// ── pending operations ────────────────────────────────────────────────────────

type pendingRepo struct{ s *Store }

func (r *pendingRepo) Create(op *entity.PendingOperation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *op
	r.s.pending = append(r.s.pending, &cp)
	return nil
}

// ── attachments ───────────────────────────────────────────────────────────────

type attachmentRepo struct{ s *Store }

func (r *attachmentRepo) Create(att *entity.Attachment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *att
	r.s.attachments[att.ID] = &cp
	return nil
}

func (r *attachmentRepo) ListPending(limit int) ([]*entity.Attachment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Attachment
	for _, a := range r.s.attachments {
		if !a.Uploaded && len(out) < limit {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *attachmentRepo) MarkUploaded(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attachments[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Uploaded = true
	a.LastError = ""
	return nil
}

func (r *attachmentRepo) MarkFailed(id string, lastError string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attachments[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Attempts++
	a.LastError = lastError
	return nil
}

// ── users ─────────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *userRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}
