package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC     *usecase.MaterialCatalogUseCase
	ApplyMovement *ledger.ApplyMovementUseCase
	TrackerUC     *usecase.AllocationTrackerUseCase
	AuditorUC     *usecase.StockAuditorUseCase
	DedupUC       *usecase.AlertDeduplicatorUseCase
	Sweeper       *usecase.CriticalStockSweeper
	JWTSecret     string
}

// Router registra las rutas de la API. Todo el libro de almacén requiere
// Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Catálogo de materiales
	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.CatalogUC)
	materials.Post("/", materialHandler.Register)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Patch("/:id/status", materialHandler.SetStatus)

	// Movimientos (escritura) y línea de tiempo (lectura)
	inventory := api.Group("/inventory")
	movementHandler := NewMovementHandler(deps.ApplyMovement)
	auditHandler := NewAuditHandler(deps.AuditorUC)
	inventory.Post("/movements", movementHandler.Apply)
	inventory.Get("/movements", auditHandler.Timeline)

	// Asignaciones (proyección de lectura)
	allocations := api.Group("/allocations")
	allocationHandler := NewAllocationHandler(deps.TrackerUC)
	allocations.Get("/", allocationHandler.List)
	allocations.Get("/lookup", allocationHandler.Lookup)

	// Auditoría
	audit := api.Group("/audit")
	audit.Get("/balance/:materialId", auditHandler.ReconstructBalance)
	audit.Get("/critical", auditHandler.FindCritical)

	// Alertas
	alerts := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.DedupUC, deps.Sweeper)
	alerts.Post("/sweep", alertHandler.Sweep)
	alerts.Get("/unread", alertHandler.ListUnread)
	alerts.Patch("/:id/read", alertHandler.MarkRead)
}
