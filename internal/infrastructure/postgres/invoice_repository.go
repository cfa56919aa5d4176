package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/facturasegura/api/internal/domain"
	"github.com/facturasegura/api/internal/domain/entity"
	"github.com/facturasegura/api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, creator_id, client_id, date, status, COALESCE(number, ''), subtotal, tax, total, created_at, updated_at`

// Create persiste la cabecera de la factura (estado borrador, sin número).
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, creator_id, client_id, date, status, number, subtotal, tax, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CreatorID, invoice.ClientID, invoice.Date, invoice.Status,
		nullIfEmpty(invoice.Number), invoice.Subtotal, invoice.Tax, invoice.Total,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene la factura bloqueando la fila (SELECT FOR UPDATE)
// para serializar transiciones de estado concurrentes.
func (r *InvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// List lista las facturas, más recientes primero.
func (r *InvoiceRepo) List() ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// UpdateTotals persiste los campos monetarios derivados.
func (r *InvoiceRepo) UpdateTotals(id string, subtotal, tax, total decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE invoices SET subtotal = $2, tax = $3, total = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, subtotal, tax, total, updatedAt)
	if err != nil {
		return fmt.Errorf("update invoice totals: %w", err)
	}
	return nil
}

// SetStatus cambia el estado de la factura.
func (r *InvoiceRepo) SetStatus(id, status string, updatedAt time.Time) error {
	query := `UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// SetIssued asigna el número y pasa a ISSUED en una sola sentencia.
// El UNIQUE sobre number es el respaldo del generador de consecutivos.
func (r *InvoiceRepo) SetIssued(id, number string, updatedAt time.Time) error {
	query := `UPDATE invoices SET number = $2, status = $3, updated_at = $4 WHERE id = $1 AND number IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id, number, entity.InvoiceStatusIssued, updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de factura duplicado %s: %w", number, err)
		}
		return fmt.Errorf("emit invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// La factura ya tenía número: el número asignado nunca se reasigna.
		return domain.ErrInvalidTransition
	}
	return nil
}

// Delete elimina la factura; invoice_lines cae por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateLine persiste una línea.
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, line.ID, line.InvoiceID, line.ProductID, line.Quantity)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// GetLine obtiene una línea por ID.
func (r *InvoiceRepo) GetLine(lineID string) (*entity.InvoiceLine, error) {
	query := `SELECT id, invoice_id, product_id, quantity FROM invoice_lines WHERE id = $1`
	var l entity.InvoiceLine
	err := r.q.QueryRow(context.Background(), query, lineID).Scan(&l.ID, &l.InvoiceID, &l.ProductID, &l.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice line: %w", err)
	}
	return &l, nil
}

// DeleteLine elimina una línea.
func (r *InvoiceRepo) DeleteLine(lineID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoice_lines WHERE id = $1`, lineID)
	if err != nil {
		return fmt.Errorf("delete invoice line: %w", err)
	}
	return nil
}

// DeleteLines elimina todas las líneas de una factura.
func (r *InvoiceRepo) DeleteLines(invoiceID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoice_lines WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice lines: %w", err)
	}
	return nil
}

// ListLines obtiene las líneas de una factura.
func (r *InvoiceRepo) ListLines(invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `SELECT id, invoice_id, product_id, quantity FROM invoice_lines WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListLineDetails obtiene las líneas con nombre y precio actual del producto.
func (r *InvoiceRepo) ListLineDetails(invoiceID string) ([]*entity.InvoiceLineDetail, error) {
	query := `
		SELECT l.id, l.invoice_id, l.product_id, l.quantity, p.name, p.price
		FROM invoice_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.invoice_id = $1 ORDER BY l.id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice line details: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceLineDetail
	for rows.Next() {
		var d entity.InvoiceLineDetail
		if err := rows.Scan(&d.ID, &d.InvoiceID, &d.ProductID, &d.Quantity, &d.ProductName, &d.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan line detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// CountLines cuenta las líneas de una factura.
func (r *InvoiceRepo) CountLines(invoiceID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invoice_lines WHERE invoice_id = $1`, invoiceID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invoice lines: %w", err)
	}
	return count, nil
}

// CountByDay cuenta facturas por día en los últimos days días (métricas).
func (r *InvoiceRepo) CountByDay(days int) ([]entity.InvoiceDayCount, error) {
	query := `
		SELECT date_trunc('day', date) AS day, COUNT(*)
		FROM invoices
		WHERE date >= now() - ($1 || ' days')::interval
		GROUP BY day ORDER BY day`
	rows, err := r.q.Query(context.Background(), query, days)
	if err != nil {
		return nil, fmt.Errorf("count invoices by day: %w", err)
	}
	defer rows.Close()
	var list []entity.InvoiceDayCount
	for rows.Next() {
		var c entity.InvoiceDayCount
		if err := rows.Scan(&c.Day, &c.Count); err != nil {
			return nil, fmt.Errorf("scan day count: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *InvoiceRepo) scanOne(query string, args ...any) (*entity.Invoice, error) {
	row := r.q.QueryRow(context.Background(), query, args...)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.CreatorID, &inv.ClientID, &inv.Date, &inv.Status, &inv.Number,
		&inv.Subtotal, &inv.Tax, &inv.Total, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
