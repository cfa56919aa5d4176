package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facturasegura/api/internal/application/auth"
	"github.com/facturasegura/api/internal/application/billing"
	"github.com/facturasegura/api/internal/application/usecase"
	"github.com/facturasegura/api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InvoiceUC *billing.InvoiceUseCase
	ProductUC *usecase.ProductUseCase
	ClientUC  *usecase.ClientUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; alta solo admin/bodeguero)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), productHandler.Create)
	products.Get("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor), productHandler.List)
	products.Get("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor), productHandler.GetByID)

	// Clients (protegido; alta solo admin/secretario)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", RequireRole(entity.RoleAdmin, entity.RoleSecretario), clientHandler.Create)
	clients.Get("/", RequireRole(entity.RoleAdmin, entity.RoleSecretario, entity.RoleVendedor), clientHandler.List)
	clients.Get("/:id", RequireRole(entity.RoleAdmin, entity.RoleSecretario, entity.RoleVendedor), clientHandler.GetByID)

	// Invoices (protegido, solo roles de venta; la regla fina creador-o-admin
	// la aplica el gate de autorización dentro del caso de uso)
	invoices := protected.Group("/invoices", RequireRole(entity.RoleAdmin, entity.RoleVendedor))
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/metrics", invoiceHandler.Metrics)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Post("/:id/lines", invoiceHandler.AddLine)
	invoices.Put("/:id/lines", invoiceHandler.ReplaceLines)
	invoices.Delete("/:id/lines/:lineID", invoiceHandler.RemoveLine)
	invoices.Post("/:id/emitir", invoiceHandler.Emit)
	invoices.Post("/:id/pagar", invoiceHandler.Pay)
	invoices.Post("/:id/anular", invoiceHandler.Void)
}
