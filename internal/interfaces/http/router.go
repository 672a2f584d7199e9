package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/stellarmotion-erp/internal/application/auth"
	"github.com/jhoicas/stellarmotion-erp/internal/application/billing"
	"github.com/jhoicas/stellarmotion-erp/internal/application/crm"
	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/application/invitation"
	"github.com/jhoicas/stellarmotion-erp/internal/application/messaging"
	"github.com/jhoicas/stellarmotion-erp/internal/application/owners"
	"github.com/jhoicas/stellarmotion-erp/internal/application/roles"
	"github.com/jhoicas/stellarmotion-erp/internal/application/usecase"
	"github.com/jhoicas/stellarmotion-erp/pkg/logger"
)

// Módulos y acciones de la matriz de permisos usados por las rutas.
const (
	moduloAjustes  = "ajustes"
	moduloClientes = "clientes"

	accionVer      = "ver"
	accionEditar   = "editar"
	accionEliminar = "eliminar"
	accionAdmin    = "admin"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	RolesUC        *roles.UseCase
	PermisoService *roles.PermisoService
	InvitationUC   *invitation.UseCase
	LeadUC         *crm.LeadUseCase
	InvoiceUC      *billing.InvoiceUseCase
	InvoicePDF     *billing.PDFUseCase
	MessagingUC    *messaging.UseCase
	OwnersUC       *owners.UseCase
	ProductUC      *usecase.ProductUseCase
	SessionSecret  string
	Cookie         CookieConfig
	LoginRateLimit int // intentos por minuto e IP; 0 = sin límite
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")
	session := SessionMiddleware(deps.SessionSecret, deps.Cookie.Name)
	perm := func(modulo, accion string) fiber.Handler {
		return RequirePermiso(modulo, accion, deps.PermisoService, log)
	}

	// Auth (público salvo me)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", loginLimiter(deps.LoginRateLimit), authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Get("/me", session, authHandler.Me)

	// Products: lectura pública, alta con sesión
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/export.kml", productHandler.ExportKML)
	products.Post("/", session, productHandler.Create)

	// Rutas protegidas (requieren sesión)
	protected := api.Group("/", session)

	roleHandler := NewRoleHandler(deps.RolesUC, deps.PermisoService)
	protected.Get("/permisos", roleHandler.Permisos)

	// Ajustes (admin)
	ajustes := protected.Group("/ajustes", perm(moduloAjustes, accionAdmin))
	ajustes.Get("/roles", roleHandler.List)
	ajustes.Post("/roles", roleHandler.Create)
	ajustes.Put("/roles", roleHandler.Update)
	ajustes.Delete("/roles", roleHandler.Delete)

	invitationHandler := NewInvitationHandler(deps.InvitationUC)
	ajustes.Get("/invitaciones", invitationHandler.List)
	ajustes.Post("/invitaciones", invitationHandler.Create)
	ajustes.Put("/invitaciones", invitationHandler.Update)
	ajustes.Delete("/invitaciones", invitationHandler.Delete)

	// Leads (módulo clientes)
	leadHandler := NewLeadHandler(deps.LeadUC)
	leads := protected.Group("/leads")
	leads.Get("/", perm(moduloClientes, accionVer), leadHandler.List)
	leads.Get("/papelera", perm(moduloClientes, accionVer), leadHandler.Trash)
	leads.Post("/", perm(moduloClientes, accionEditar), leadHandler.Create)
	leads.Post("/kill", perm(moduloClientes, accionEliminar), leadHandler.Kill)
	leads.Post("/restore", perm(moduloClientes, accionEditar), leadHandler.Restore)
	leads.Get("/:id", perm(moduloClientes, accionVer), leadHandler.GetByID)
	leads.Put("/:id", perm(moduloClientes, accionEditar), leadHandler.Update)

	// Facturas de la marca
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices := protected.Group("/brand/invoices")
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/payments", invoiceHandler.Payments)
	invoices.Post("/:id/payments", invoiceHandler.Pay)
	invoices.Post("/:id/pay", invoiceHandler.Pay)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Mensajería
	conversationHandler := NewConversationHandler(deps.MessagingUC)
	protected.Get("/conversations", conversationHandler.List)
	protected.Post("/conversations", conversationHandler.Create)

	// Owners
	ownerHandler := NewOwnerHandler(deps.OwnersUC)
	protected.Post("/owners/complete", ownerHandler.Complete)
}

func loginLimiter(max int) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "TOO_MANY_REQUESTS",
				Message: "demasiados intentos, espere un minuto",
			})
		},
	})
}
