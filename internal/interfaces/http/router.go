package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/RestoStock-api/internal/application/count"
	"github.com/jhoicas/RestoStock-api/internal/application/ledger"
	"github.com/jhoicas/RestoStock-api/internal/application/master"
	"github.com/jhoicas/RestoStock-api/internal/application/transfer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC    *ledger.LedgerUseCase
	TransferUC  *transfer.TransferUseCase
	CountUC     *count.CountUseCase
	CountReport *count.ReportUseCase
	MasterUC    *master.MasterUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todo el dominio es multi-cuenta: cada
// ruta protegida resuelve account_id desde el token, nunca desde el cuerpo.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Libro de movimientos y stock derivado (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	invGroup.Post("/movements", inventoryHandler.AppendMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/movements/:id/corrections", inventoryHandler.CorrectMovement)
	invGroup.Get("/stock", inventoryHandler.GetCurrentStock)
	invGroup.Get("/alerts", inventoryHandler.GetAlerts)

	// Traslados entre sedes (protegido)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/in-transit", transferHandler.MarkInTransit)
	transfers.Post("/:id/complete", transferHandler.Complete)
	transfers.Post("/:id/cancel", transferHandler.Cancel)
	transfers.Delete("/:id", transferHandler.Delete)

	// Conteos físicos y conciliación (protegido)
	counts := protected.Group("/counts")
	countHandler := NewCountHandler(deps.CountUC, deps.CountReport)
	counts.Post("/", countHandler.Start)
	counts.Get("/", countHandler.List)
	counts.Get("/:id", countHandler.GetByID)
	counts.Post("/:id/entries", countHandler.AddEntry)
	counts.Put("/:id/entries/:entryId", countHandler.UpdateEntry)
	counts.Delete("/:id/entries/:entryId", countHandler.DeleteEntry)
	counts.Post("/:id/complete", countHandler.Complete)
	counts.Post("/:id/approve", RequireRole("admin", "manager"), countHandler.Approve)
	counts.Get("/:id/report", countHandler.GetReport)

	// Datos de referencia y notificaciones (protegido)
	masterHandler := NewMasterHandler(deps.MasterUC)
	protected.Get("/items", masterHandler.ListItems)
	protected.Get("/stores", masterHandler.ListStores)
	protected.Get("/notifications", masterHandler.ListNotifications)
}
