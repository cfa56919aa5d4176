package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")

	// Motor de facturación.
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvoiceNotEditable = errors.New("solo se pueden editar facturas en borrador")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrEmptyInvoice       = errors.New("no se puede emitir una factura sin items")
	ErrCannotDeleteIssued = errors.New("no se puede eliminar una factura emitida; use anular en su lugar")

	// ErrPermissionDenied es una negación por actor ("usted no puede"), distinta de
	// las negaciones por estado ("nadie puede ahora") como ErrInvalidTransition.
	ErrPermissionDenied = errors.New("permiso denegado")
)
