package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserAdminUC *auth.UserAdminUseCase
	ItemUC      *usecase.ItemUseCase
	LocationUC  *usecase.LocationUseCase
	DocumentUC  *ledger.DocumentUseCase
	StockQuery  *ledger.StockQueryUseCase
	JWTSecret   string
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

	// Administración de usuarios: solo admin
	userHandler := NewUserHandler(deps.UserAdminUC)
	users := protected.Group("/users", RequireAdmin())
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Catálogo: artículos, ubicaciones y vista de stock
	catalogHandler := NewCatalogHandler(deps.ItemUC, deps.LocationUC, deps.StockQuery)
	items := protected.Group("/items")
	items.Get("/", catalogHandler.ListItems)
	items.Post("/", RequirePermission(entity.PermItemsEdit), catalogHandler.CreateItem)
	items.Put("/:id", RequirePermission(entity.PermItemsEdit), catalogHandler.UpdateItem)
	items.Delete("/:id", RequirePermission(entity.PermItemsEdit), catalogHandler.DeleteItem)

	locations := protected.Group("/locations")
	locations.Get("/", catalogHandler.ListLocations)
	locations.Post("/", RequirePermission(entity.PermLocationsEdit), catalogHandler.CreateLocation)

	protected.Get("/stock", catalogHandler.ListStock)

	// Documentos de movimiento: mismas rutas para las tres clases,
	// cada grupo con su clase fijada y sus permisos propios.
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	for _, kind := range entity.Kinds() {
		mountDocuments(protected, kind, documentHandler)
	}
}

// mountDocuments registra list/get/create/update/delete/post de una clase de
// documento bajo su prefijo, con los permisos del descriptor de la clase.
func mountDocuments(router fiber.Router, kind entity.DocumentKind, h *DocumentHandler) {
	spec := kind.Spec()
	group := router.Group("/" + spec.RoutePrefix)
	group.Get("/", h.List(kind))
	group.Get("/:id", h.Get(kind))
	group.Post("/", RequirePermission(spec.EditPermission), h.Create(kind))
	group.Put("/:id", RequirePermission(spec.EditPermission), h.Update(kind))
	group.Delete("/:id", RequirePermission(spec.EditPermission), h.Delete(kind))
	group.Post("/:id/post", RequirePermission(spec.PostPermission), h.Post(kind))
}
