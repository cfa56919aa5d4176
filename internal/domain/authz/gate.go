// Package authz centraliza todas las reglas de autorización sobre facturas.
// Las reglas son predicados puros: no consultan la base de datos ni producen
// efectos. La distinción entre "usted no puede" (permiso) y "nadie puede
// ahora" (estado) la hace el caso de uso con el error correspondiente.
package authz

import "github.com/facturasegura/api/internal/domain/entity"

// Actor es la identidad del llamador, extraída del token por la capa HTTP.
type Actor struct {
	ID        string
	Role      string
	Superuser bool
}

// IsAdmin indica si el actor tiene privilegios administrativos.
func (a Actor) IsAdmin() bool {
	return a.Superuser || a.Role == entity.RoleAdmin
}

// IsOwnerOrAdmin es la regla de actor compartida por todas las operaciones:
// el creador de la factura o un administrador/superusuario. Los casos de uso
// la consultan por separado del estado para producir ErrPermissionDenied o
// un error de estado según corresponda.
func IsOwnerOrAdmin(a Actor, inv *entity.Invoice) bool {
	return a.IsAdmin() || a.ID == inv.CreatorID
}

// CanEdit indica si el actor puede modificar los items de la factura.
// Solo aplica sobre borradores; sobre otros estados nadie puede editar,
// ni siquiera un administrador.
func CanEdit(a Actor, inv *entity.Invoice) bool {
	return inv.IsEditable() && IsOwnerOrAdmin(a, inv)
}

// CanEmit indica si el actor puede emitir la factura (misma regla de actor
// que la edición).
func CanEmit(a Actor, inv *entity.Invoice) bool {
	return IsOwnerOrAdmin(a, inv)
}

// CanVoid indica si el actor puede anular la factura.
func CanVoid(a Actor, inv *entity.Invoice) bool {
	return inv.CanVoid() && IsOwnerOrAdmin(a, inv)
}

// CanDelete indica si el actor puede eliminar la factura. No valida el
// estado: esa verificación la hace la máquina de estados y produce
// ErrCannotDeleteIssued, un error distinto al de permisos.
func CanDelete(a Actor, inv *entity.Invoice) bool {
	return IsOwnerOrAdmin(a, inv)
}
