package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/facturasegura/api/internal/application/billing"
	"github.com/facturasegura/api/internal/application/dto"
	"github.com/facturasegura/api/internal/domain"
	"github.com/facturasegura/api/internal/domain/authz"
	"github.com/facturasegura/api/internal/domain/entity"
)

// InvoiceHandler maneja las peticiones HTTP del motor de facturación.
// Todas las rutas son protegidas; el actor sale del token vía c.Locals.
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// actorFrom arma el actor de autorización desde los locals del middleware.
func actorFrom(c *fiber.Ctx) authz.Actor {
	return authz.Actor{
		ID:        GetUserID(c),
		Role:      GetRole(c),
		Superuser: GetSuperuser(c),
	}
}

// mapBillingError traduce los errores del motor al status HTTP.
// Los conflictos de estado y de stock van como 409: la petición era válida
// pero el estado actual del sistema la rechaza.
func mapBillingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser un entero positivo"})
	case errors.Is(err, domain.ErrEmptyInvoice):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_INVOICE", Message: "no se puede emitir una factura sin items"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrPermissionDenied):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PERMISSION_DENIED", Message: "no tiene permiso sobre esta factura"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrInvoiceNotEditable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_EDITABLE", Message: "solo se pueden editar facturas en borrador"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado inválida"})
	case errors.Is(err, domain.ErrCannotDeleteIssued):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CANNOT_DELETE_ISSUED", Message: "no se puede eliminar una factura emitida; anúlela en su lugar"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create crea una factura en borrador.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.CreateInvoice(c.Context(), GetUserID(c), in.ClientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return mapBillingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInvoiceResponse(inv, nil))
}

// GetByID obtiene la factura con líneas y totales.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, details, err := h.uc.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.JSON(toInvoiceResponse(inv, details))
}

// List lista las facturas (resumen).
// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	invoices, err := h.uc.ListInvoices(c.Context())
	if err != nil {
		return mapBillingError(c, err)
	}
	out := make([]dto.InvoiceSummaryResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, dto.InvoiceSummaryResponse{
			ID:       inv.ID,
			ClientID: inv.ClientID,
			Date:     inv.Date.Format(time.RFC3339),
			Status:   inv.Status,
			Number:   inv.Number,
			Total:    inv.Total,
		})
	}
	return c.JSON(out)
}

// Metrics facturas por día, últimos 7 días.
// GET /api/invoices/metrics
func (h *InvoiceHandler) Metrics(c *fiber.Ctx) error {
	counts, err := h.uc.Metrics(c.Context())
	if err != nil {
		return mapBillingError(c, err)
	}
	out := dto.InvoiceMetricsResponse{
		Labels: make([]string, 0, len(counts)),
		Data:   make([]int, 0, len(counts)),
	}
	for _, dc := range counts {
		out.Labels = append(out.Labels, dc.Day.Format("2006-01-02"))
		out.Data = append(out.Data, dc.Count)
	}
	return c.JSON(out)
}

// AddLine agrega una línea al borrador.
// POST /api/invoices/:id/lines
func (h *InvoiceHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AddLine(c.Context(), actorFrom(c), c.Params("id"), in.ProductID, in.Quantity); err != nil {
		return mapBillingError(c, err)
	}
	return h.respondWithInvoice(c, c.Params("id"))
}

// RemoveLine quita una línea del borrador.
// DELETE /api/invoices/:id/lines/:lineID
func (h *InvoiceHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.uc.RemoveLine(c.Context(), actorFrom(c), c.Params("id"), c.Params("lineID")); err != nil {
		return mapBillingError(c, err)
	}
	return h.respondWithInvoice(c, c.Params("id"))
}

// ReplaceLines reemplaza todas las líneas del borrador de forma atómica.
// PUT /api/invoices/:id/lines
func (h *InvoiceHandler) ReplaceLines(c *fiber.Ctx) error {
	var in dto.ReplaceLinesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]entity.InvoiceLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, entity.InvoiceLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	if err := h.uc.ReplaceLines(c.Context(), actorFrom(c), c.Params("id"), lines); err != nil {
		return mapBillingError(c, err)
	}
	return h.respondWithInvoice(c, c.Params("id"))
}

// Emit emite el borrador y asigna el consecutivo.
// POST /api/invoices/:id/emitir
func (h *InvoiceHandler) Emit(c *fiber.Ctx) error {
	if _, err := h.uc.Emit(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return mapBillingError(c, err)
	}
	return h.respondWithInvoice(c, c.Params("id"))
}

// Pay marca la factura emitida como pagada.
// POST /api/invoices/:id/pagar
func (h *InvoiceHandler) Pay(c *fiber.Ctx) error {
	if err := h.uc.MarkPaid(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return mapBillingError(c, err)
	}
	return h.respondWithInvoice(c, c.Params("id"))
}

// Void anula la factura y restituye el stock.
// POST /api/invoices/:id/anular
func (h *InvoiceHandler) Void(c *fiber.Ctx) error {
	if err := h.uc.Void(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return mapBillingError(c, err)
	}
	return h.respondWithInvoice(c, c.Params("id"))
}

// Delete elimina físicamente un borrador. El body es opcional; si trae
// reason la eliminación queda en auditoría.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	var in dto.DeleteInvoiceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	if err := h.uc.Delete(c.Context(), actorFrom(c), c.Params("id"), in.Reason); err != nil {
		return mapBillingError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// respondWithInvoice devuelve el estado actual de la factura después de una
// mutación exitosa.
func (h *InvoiceHandler) respondWithInvoice(c *fiber.Ctx, id string) error {
	inv, details, err := h.uc.GetInvoice(c.Context(), id)
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.JSON(toInvoiceResponse(inv, details))
}

func toInvoiceResponse(inv *entity.Invoice, details []*entity.InvoiceLineDetail) dto.InvoiceResponse {
	lines := make([]dto.InvoiceLineResponse, 0, len(details))
	for _, d := range details {
		lines = append(lines, dto.InvoiceLineResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			Subtotal:    d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity))).Round(2),
		})
	}
	return dto.InvoiceResponse{
		ID:        inv.ID,
		CreatorID: inv.CreatorID,
		ClientID:  inv.ClientID,
		Date:      inv.Date.Format(time.RFC3339),
		Status:    inv.Status,
		Number:    inv.Number,
		Subtotal:  inv.Subtotal,
		Tax:       inv.Tax,
		Total:     inv.Total,
		Lines:     lines,
	}
}
