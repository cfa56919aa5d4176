package billing_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/facturasegura/api/internal/domain"
	"github.com/facturasegura/api/internal/domain/entity"
	"github.com/facturasegura/api/internal/domain/repository"
)

// memStore es el estado compartido de los repositorios en memoria. Los tests
// del motor no usan base de datos: la atomicidad se simula restaurando un
// snapshot del estado cuando el callback transaccional falla.
type memStore struct {
	products  map[string]*entity.Product
	invoices  map[string]*entity.Invoice
	lines     []*entity.InvoiceLine
	movements []*entity.StockMovement
	clients   map[string]*entity.Client
	counter   int64
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		invoices: make(map[string]*entity.Invoice),
		clients:  make(map[string]*entity.Client),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, inv := range s.invoices {
		ci := *inv
		c.invoices[id] = &ci
	}
	for _, l := range s.lines {
		cl := *l
		c.lines = append(c.lines, &cl)
	}
	for _, m := range s.movements {
		cm := *m
		c.movements = append(c.movements, &cm)
	}
	for id, cl := range s.clients {
		cc := *cl
		c.clients[id] = &cc
	}
	c.counter = s.counter
	return c
}

// fakeTxRunner ejecuta el callback sobre el store y restaura el snapshot si
// falla, imitando el rollback de la transacción real.
type fakeTxRunner struct {
	s *memStore
}

func (r *fakeTxRunner) RunBilling(_ context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	backup := r.s.clone()
	err := fn(
		&memInvoiceRepo{s: r.s},
		&memProductRepo{s: r.s},
		&memMovementRepo{s: r.s},
		&memSequenceRepo{s: r.s},
	)
	if err != nil {
		*r.s = *backup
	}
	return err
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) List() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) UpdateStock(id string, stock int) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	ci := *inv
	r.s.invoices[inv.ID] = &ci
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	ci := *inv
	return &ci, nil
}

func (r *memInvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *memInvoiceRepo) List() ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		ci := *inv
		out = append(out, &ci)
	}
	return out, nil
}

func (r *memInvoiceRepo) UpdateTotals(id string, subtotal, tax, total decimal.Decimal, updatedAt time.Time) error {
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Subtotal, inv.Tax, inv.Total, inv.UpdatedAt = subtotal, tax, total, updatedAt
	return nil
}

func (r *memInvoiceRepo) SetStatus(id, status string, updatedAt time.Time) error {
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status, inv.UpdatedAt = status, updatedAt
	return nil
}

func (r *memInvoiceRepo) SetIssued(id, number string, updatedAt time.Time) error {
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	if inv.Number != "" {
		return domain.ErrInvalidTransition
	}
	inv.Number = number
	inv.Status = entity.InvoiceStatusIssued
	inv.UpdatedAt = updatedAt
	return nil
}

func (r *memInvoiceRepo) Delete(id string) error {
	if _, ok := r.s.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.invoices, id)
	var kept []*entity.InvoiceLine
	for _, l := range r.s.lines {
		if l.InvoiceID != id {
			kept = append(kept, l)
		}
	}
	r.s.lines = kept
	return nil
}

func (r *memInvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	cl := *line
	r.s.lines = append(r.s.lines, &cl)
	return nil
}

func (r *memInvoiceRepo) GetLine(lineID string) (*entity.InvoiceLine, error) {
	for _, l := range r.s.lines {
		if l.ID == lineID {
			cl := *l
			return &cl, nil
		}
	}
	return nil, nil
}

func (r *memInvoiceRepo) DeleteLine(lineID string) error {
	var kept []*entity.InvoiceLine
	for _, l := range r.s.lines {
		if l.ID != lineID {
			kept = append(kept, l)
		}
	}
	r.s.lines = kept
	return nil
}

func (r *memInvoiceRepo) DeleteLines(invoiceID string) error {
	var kept []*entity.InvoiceLine
	for _, l := range r.s.lines {
		if l.InvoiceID != invoiceID {
			kept = append(kept, l)
		}
	}
	r.s.lines = kept
	return nil
}

func (r *memInvoiceRepo) ListLines(invoiceID string) ([]*entity.InvoiceLine, error) {
	var out []*entity.InvoiceLine
	for _, l := range r.s.lines {
		if l.InvoiceID == invoiceID {
			cl := *l
			out = append(out, &cl)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) ListLineDetails(invoiceID string) ([]*entity.InvoiceLineDetail, error) {
	var out []*entity.InvoiceLineDetail
	for _, l := range r.s.lines {
		if l.InvoiceID != invoiceID {
			continue
		}
		p, ok := r.s.products[l.ProductID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		out = append(out, &entity.InvoiceLineDetail{
			InvoiceLine: *l,
			ProductName: p.Name,
			UnitPrice:   p.Price,
		})
	}
	return out, nil
}

func (r *memInvoiceRepo) CountLines(invoiceID string) (int, error) {
	count := 0
	for _, l := range r.s.lines {
		if l.InvoiceID == invoiceID {
			count++
		}
	}
	return count, nil
}

func (r *memInvoiceRepo) CountByDay(days int) ([]entity.InvoiceDayCount, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	counts := make(map[time.Time]int)
	for _, inv := range r.s.invoices {
		if inv.Date.Before(cutoff) {
			continue
		}
		day := inv.Date.Truncate(24 * time.Hour)
		counts[day]++
	}
	var out []entity.InvoiceDayCount
	for day, n := range counts {
		out = append(out, entity.InvoiceDayCount{Day: day, Count: n})
	}
	return out, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	cm := *m
	r.s.movements = append(r.s.movements, &cm)
	return nil
}

func (r *memMovementRepo) ListByInvoice(invoiceID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.InvoiceID == invoiceID {
			cm := *m
			out = append(out, &cm)
		}
	}
	return out, nil
}

type memSequenceRepo struct{ s *memStore }

func (r *memSequenceRepo) Next() (int64, error) {
	r.s.counter++
	return r.s.counter, nil
}

type memClientRepo struct{ s *memStore }

func (r *memClientRepo) Create(c *entity.Client) error {
	cc := *c
	r.s.clients[c.ID] = &cc
	return nil
}

func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *memClientRepo) List() ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.s.clients {
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}

// auditCall registra una invocación al sink de auditoría.
type auditCall struct {
	Model, ObjectID, Description, Reason, UserID string
}

type fakeAuditSink struct {
	calls []auditCall
}

func (f *fakeAuditSink) RecordDeletion(_ context.Context, model, objectID, description, reason, userID string) {
	f.calls = append(f.calls, auditCall{model, objectID, description, reason, userID})
}
