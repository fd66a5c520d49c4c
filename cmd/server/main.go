package main

import (
	"log"
	"strings"

	"wasabi-backend/internal/admin"
	"wasabi-backend/internal/audit"
	"wasabi-backend/internal/auth"
	"wasabi-backend/internal/bolsas"
	"wasabi-backend/internal/config"
	"wasabi-backend/internal/database"
	"wasabi-backend/internal/inventario"
	"wasabi-backend/internal/models"
	"wasabi-backend/internal/ordenes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Auth público
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Resto de rutas con sesión
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Rutas de administración
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RolAdministrador))

	// Departamentos
	adminRoutes.Post("/departamentos", admin.CreateDepartamentoHandler())
	adminRoutes.Put("/departamentos/:id", admin.UpdateDepartamentoHandler())
	adminRoutes.Delete("/departamentos/:id", admin.DeleteDepartamentoHandler())

	// Proveedores
	adminRoutes.Post("/proveedores", admin.CreateProveedorHandler())
	adminRoutes.Put("/proveedores/:id", admin.UpdateProveedorHandler())
	adminRoutes.Delete("/proveedores/:id", admin.DeleteProveedorHandler())

	// Usuarios (jefes de departamento y contables)
	adminRoutes.Post("/usuarios", admin.CreateUsuarioHandler())
	adminRoutes.Get("/usuarios", admin.ListUsuariosHandler())
	adminRoutes.Delete("/usuarios/:id", admin.DeleteUsuarioHandler())

	// Catálogos de lectura para todos los roles
	protected.Get("/departamentos", admin.ListDepartamentosHandler())
	protected.Get("/proveedores", admin.ListProveedoresHandler())

	// Órdenes: el contable solo consulta y exporta
	escritura := auth.RequireRole(models.RolAdministrador, models.RolJefeDepartamento)

	protected.Get("/ordenes", ordenes.ListOrdenesHandler())
	protected.Post("/ordenes", escritura, ordenes.CreateOrdenHandler())
	protected.Put("/ordenes/:id", escritura, ordenes.UpdateOrdenHandler())
	protected.Post("/ordenes/eliminar", escritura, ordenes.DeleteOrdenesHandler())
	protected.Post("/ordenes/exportar", ordenes.ExportOrdenesHandler())

	// Inventario (proyección de las órdenes)
	protected.Get("/inventario", inventario.ListInventarioHandler())
	protected.Get("/inventario/exportar", inventario.ExportInventarioHandler())

	// Bolsas y resumen anual
	protected.Post("/bolsas", escritura, bolsas.CrearBolsasHandler())
	protected.Get("/bolsas/:departamento/años", bolsas.ExistingYearsHandler())
	protected.Get("/bolsas/:departamento", bolsas.BolsasByYearHandler())
	protected.Get("/resumen/:departamento", bolsas.ResumenHandler())

	// Auditoría
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	log.Println("Servidor escuchando en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
