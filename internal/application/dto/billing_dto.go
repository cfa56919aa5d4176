package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body para POST /api/invoices. La factura nace en
// borrador, sin líneas y con totales en cero.
type CreateInvoiceRequest struct {
	ClientID string `json:"client_id"`
}

// AddLineRequest body para POST /api/invoices/:id/lines.
type AddLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ReplaceLinesRequest body para PUT /api/invoices/:id/lines: reemplazo
// atómico de todas las líneas.
type ReplaceLinesRequest struct {
	Lines []AddLineRequest `json:"lines"`
}

// DeleteInvoiceRequest body opcional para DELETE /api/invoices/:id.
// Si Reason no va vacío, la eliminación queda en el registro de auditoría.
type DeleteInvoiceRequest struct {
	Reason string `json:"reason,omitempty"`
}

// InvoiceResponse factura con detalle. Los totales son siempre derivados.
type InvoiceResponse struct {
	ID        string                `json:"id"`
	CreatorID string                `json:"creator_id"`
	ClientID  string                `json:"client_id"`
	Date      string                `json:"date"`
	Status    string                `json:"status"`
	Number    string                `json:"number,omitempty"`
	Subtotal  decimal.Decimal       `json:"subtotal"`
	Tax       decimal.Decimal       `json:"tax"`
	Total     decimal.Decimal       `json:"total"`
	Lines     []InvoiceLineResponse `json:"lines"`
}

// InvoiceLineResponse línea en la respuesta, con precio actual del producto.
type InvoiceLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InvoiceSummaryResponse factura sin líneas, para listados.
type InvoiceSummaryResponse struct {
	ID       string          `json:"id"`
	ClientID string          `json:"client_id"`
	Date     string          `json:"date"`
	Status   string          `json:"status"`
	Number   string          `json:"number,omitempty"`
	Total    decimal.Decimal `json:"total"`
}

// InvoiceMetricsResponse facturas por día (últimos 7 días).
type InvoiceMetricsResponse struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Active bool   `json:"active"`
}
