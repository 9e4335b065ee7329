// Package memory implementa los repositorios sobre mapas en memoria. Lo usan las pruebas de
// casos de uso y de handlers HTTP, y el modo STORAGE=memory para demos locales sin Postgres.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Remisiones-api/internal/domain"
	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
	"github.com/jhoicas/Remisiones-api/internal/domain/report"
	"github.com/jhoicas/Remisiones-api/internal/domain/repository"
)

// Store datos compartidos por todos los repositorios en memoria.
// txMu serializa las transacciones con toda escritura sobre remisiones, ventas y créditos.
type Store struct {
	mu         sync.RWMutex
	txMu       sync.Mutex
	customers  map[string]entity.Customer
	orders     map[string]entity.Order
	remissions map[string]entity.Remission
	sales      []entity.Sale
	credits    []entity.CreditAssignment
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		customers:  make(map[string]entity.Customer),
		orders:     make(map[string]entity.Order),
		remissions: make(map[string]entity.Remission),
	}
}

// Repositorios.
func (s *Store) Customers() *CustomerRepository       { return &CustomerRepository{s} }
func (s *Store) Orders() *OrderRepository             { return &OrderRepository{s} }
func (s *Store) Remissions() *RemissionRepository     { return &RemissionRepository{s: s} }
func (s *Store) Sales() *SaleRepository               { return &SaleRepository{s: s} }
func (s *Store) Credits() *CreditAssignmentRepository { return &CreditAssignmentRepository{s: s} }
func (s *Store) Reports() *ReportRepository           { return &ReportRepository{s} }
func (s *Store) TxRunner() *TxRunner                  { return &TxRunner{s} }

// Ping siempre responde OK.
func (s *Store) Ping(context.Context) error { return nil }

// serialize toma txMu salvo que la escritura ocurra dentro de RunRemission, que ya lo tiene.
func (s *Store) serialize(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

// ── Customers ────────────────────────────────────────────────────────────────

// CustomerRepository implementa repository.CustomerRepository.
type CustomerRepository struct{ s *Store }

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func (r *CustomerRepository) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepository) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	list := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		c := c
		list = append(list, &c)
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *CustomerRepository) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepository) Delete(_ context.Context, id string) error {
	defer r.s.serialize(false)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.customers, id)
	for oid, o := range r.s.orders {
		if o.CustomerID == id {
			r.s.deleteOrderLocked(oid)
		}
	}
	return nil
}

// ── Orders ───────────────────────────────────────────────────────────────────

// OrderRepository implementa repository.OrderRepository.
type OrderRepository struct{ s *Store }

var _ repository.OrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.orderFolioTaken(o.Folio, o.ID) {
		return domain.ErrDuplicate
	}
	r.s.orders[o.ID] = *o
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OrderRepository) List(_ context.Context, f repository.OrderFilter, limit, offset int) ([]*entity.Order, error) {
	r.s.mu.RLock()
	list := make([]*entity.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		o := o
		list = append(list, &o)
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

func (r *OrderRepository) Update(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.s.orderFolioTaken(o.Folio, o.ID) {
		return domain.ErrDuplicate
	}
	r.s.orders[o.ID] = *o
	return nil
}

func (r *OrderRepository) Delete(_ context.Context, id string) error {
	defer r.s.serialize(false)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return domain.ErrNotFound
	}
	r.s.deleteOrderLocked(id)
	return nil
}

// ── Remissions ───────────────────────────────────────────────────────────────

// RemissionRepository implementa repository.RemissionRepository. Los bloqueos de fila se
// sustituyen por la serialización de TxRunner.
type RemissionRepository struct {
	s    *Store
	inTx bool
}

var _ repository.RemissionRepository = (*RemissionRepository)(nil)

func (r *RemissionRepository) Create(_ context.Context, rem *entity.Remission) error {
	defer r.s.serialize(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.remissions {
		if x.Folio == rem.Folio {
			return domain.ErrDuplicate
		}
	}
	if _, ok := r.s.orders[rem.OrderID]; !ok {
		return domain.ErrInvalidInput
	}
	stored := *rem
	stored.OrderFolio, stored.CustomerID, stored.CustomerName = "", "", ""
	r.s.remissions[rem.ID] = stored
	return nil
}

func (r *RemissionRepository) GetByID(_ context.Context, id string) (*entity.Remission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rem, ok := r.s.remissions[id]
	if !ok {
		return nil, nil
	}
	return r.s.joinLocked(rem), nil
}

func (r *RemissionRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Remission, error) {
	return r.GetByID(ctx, id)
}

func (r *RemissionRepository) GetByIDForShare(ctx context.Context, id string) (*entity.Remission, error) {
	return r.GetByID(ctx, id)
}

func (r *RemissionRepository) List(_ context.Context, f repository.RemissionFilter, limit, offset int) ([]*entity.Remission, error) {
	r.s.mu.RLock()
	list := make([]*entity.Remission, 0, len(r.s.remissions))
	for _, rem := range r.s.remissions {
		if f.OrderID != "" && rem.OrderID != f.OrderID {
			continue
		}
		if f.Status != "" && rem.Status != f.Status {
			continue
		}
		list = append(list, r.s.joinLocked(rem))
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

func (r *RemissionRepository) UpdateStatus(_ context.Context, id string, status entity.RemissionStatus) error {
	defer r.s.serialize(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rem, ok := r.s.remissions[id]
	if !ok {
		return domain.ErrNotFound
	}
	rem.Status = status
	r.s.remissions[id] = rem
	return nil
}

func (r *RemissionRepository) Delete(_ context.Context, id string) error {
	defer r.s.serialize(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.remissions[id]; !ok {
		return domain.ErrNotFound
	}
	r.s.deleteRemissionLocked(id)
	return nil
}

// ── Sales / credits ──────────────────────────────────────────────────────────

// SaleRepository implementa repository.SaleRepository.
type SaleRepository struct {
	s    *Store
	inTx bool
}

var _ repository.SaleRepository = (*SaleRepository)(nil)

func (r *SaleRepository) Create(_ context.Context, sale *entity.Sale) error {
	defer r.s.serialize(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.remissions[sale.RemissionID]; !ok {
		return domain.ErrNotFound
	}
	r.s.sales = append(r.s.sales, *sale)
	return nil
}

func (r *SaleRepository) ListByRemission(_ context.Context, remissionID string) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Sale, 0)
	for _, s := range r.s.sales {
		if s.RemissionID == remissionID {
			s := s
			out = append(out, &s)
		}
	}
	return out, nil
}

func (r *SaleRepository) ListBetween(_ context.Context, start, end time.Time) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Sale, 0)
	for _, s := range r.s.sales {
		if !s.CreatedAt.Before(start) && s.CreatedAt.Before(end) {
			s := s
			out = append(out, &s)
		}
	}
	return out, nil
}

// CreditAssignmentRepository implementa repository.CreditAssignmentRepository.
type CreditAssignmentRepository struct {
	s    *Store
	inTx bool
}

var _ repository.CreditAssignmentRepository = (*CreditAssignmentRepository)(nil)

func (r *CreditAssignmentRepository) Create(_ context.Context, c *entity.CreditAssignment) error {
	defer r.s.serialize(r.inTx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.remissions[c.RemissionID]; !ok {
		return domain.ErrNotFound
	}
	r.s.credits = append(r.s.credits, *c)
	return nil
}

func (r *CreditAssignmentRepository) ListByRemission(_ context.Context, remissionID string) ([]*entity.CreditAssignment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.CreditAssignment, 0)
	for _, c := range r.s.credits {
		if c.RemissionID == remissionID {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

// ReportRepository implementa repository.ReportRepository con el agregador de dominio.
type ReportRepository struct{ s *Store }

var _ repository.ReportRepository = (*ReportRepository)(nil)

func (r *ReportRepository) DailySales(ctx context.Context, rng report.Range) ([]report.DailySummary, error) {
	sales, err := r.s.Sales().ListBetween(ctx, rng.Start(), rng.End())
	if err != nil {
		return nil, err
	}
	return report.Aggregate(rng, sales), nil
}

// ── Tx ───────────────────────────────────────────────────────────────────────

// TxRunner serializa las transacciones y, si fn devuelve error, revierte remisiones, ventas y
// créditos. Clientes y órdenes quedan fuera del snapshot.
type TxRunner struct{ s *Store }

func (t *TxRunner) RunRemission(ctx context.Context, fn func(
	remissionRepo repository.RemissionRepository,
	saleRepo repository.SaleRepository,
	creditRepo repository.CreditAssignmentRepository,
) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	snap := t.s.snapshot()
	err := fn(
		&RemissionRepository{s: t.s, inTx: true},
		&SaleRepository{s: t.s, inTx: true},
		&CreditAssignmentRepository{s: t.s, inTx: true},
	)
	if err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

type snapshot struct {
	remissions map[string]entity.Remission
	sales      []entity.Sale
	credits    []entity.CreditAssignment
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		remissions: make(map[string]entity.Remission, len(s.remissions)),
		sales:      append([]entity.Sale(nil), s.sales...),
		credits:    append([]entity.CreditAssignment(nil), s.credits...),
	}
	for k, v := range s.remissions {
		snap.remissions[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remissions = snap.remissions
	s.sales, s.credits = snap.sales, snap.credits
}

func (s *Store) joinLocked(rem entity.Remission) *entity.Remission {
	if o, ok := s.orders[rem.OrderID]; ok {
		rem.OrderFolio = o.Folio
		rem.CustomerID = o.CustomerID
		if c, ok := s.customers[o.CustomerID]; ok {
			rem.CustomerName = c.Name
		}
	}
	return &rem
}

func (s *Store) orderFolioTaken(folio, exceptID string) bool {
	for id, o := range s.orders {
		if id != exceptID && o.Folio == folio {
			return true
		}
	}
	return false
}

func (s *Store) deleteOrderLocked(id string) {
	delete(s.orders, id)
	for rid, rem := range s.remissions {
		if rem.OrderID == id {
			s.deleteRemissionLocked(rid)
		}
	}
}

func (s *Store) deleteRemissionLocked(id string) {
	delete(s.remissions, id)
	sales := s.sales[:0]
	for _, x := range s.sales {
		if x.RemissionID != id {
			sales = append(sales, x)
		}
	}
	s.sales = sales
	credits := s.credits[:0]
	for _, x := range s.credits {
		if x.RemissionID != id {
			credits = append(credits, x)
		}
	}
	s.credits = credits
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return list[:0]
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
