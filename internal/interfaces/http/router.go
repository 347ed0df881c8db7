package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/LabStock-api/internal/application/auth"
	"github.com/jhoicas/LabStock-api/internal/application/digest"
	"github.com/jhoicas/LabStock-api/internal/application/export"
	"github.com/jhoicas/LabStock-api/internal/application/inventory"
	"github.com/jhoicas/LabStock-api/internal/application/report"
	"github.com/jhoicas/LabStock-api/internal/application/usecase"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
	"github.com/jhoicas/LabStock-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReagentUC        *usecase.ReagentUseCase
	LotUC            *usecase.LotUseCase
	AlertUC          *usecase.AlertUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementRepo     repository.MovementRepository
	AuthUC           *auth.AuthUseCase
	ExportUC         *export.UseCase
	ReportUC         *report.UseCase
	Digest           *digest.Dispatcher
	JWTSecret        string
	CronSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; registro solo admin)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Cron (protegido por secreto compartido, no por JWT)
	digestHandler := NewDigestHandler(deps.Digest, deps.CronSecret)
	api.Get("/cron/alert-digest", digestHandler.Run)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/me", authHandler.UpdateProfile)

	// Reagents
	reagents := protected.Group("/reagents")
	reagentHandler := NewReagentHandler(deps.ReagentUC)
	reagents.Post("/", reagentHandler.Create)
	reagents.Get("/", reagentHandler.List)
	reagents.Get("/barcode/:code", reagentHandler.GetByBarcode)
	reagents.Get("/:id", reagentHandler.GetByID)
	reagents.Get("/:id/label", reagentHandler.Label)
	reagents.Put("/:id", reagentHandler.Update)
	reagents.Delete("/:id", RequireRole(entity.RoleAdmin), reagentHandler.Delete)

	// Lots (anidados bajo el reactivo para alta y listado)
	lotHandler := NewLotHandler(deps.LotUC)
	reagents.Post("/:id/lots", lotHandler.Create)
	reagents.Get("/:id/lots", lotHandler.ListByReagent)
	lots := protected.Group("/lots")
	lots.Get("/expiring", lotHandler.ListExpiring)
	lots.Put("/:id", lotHandler.Update)
	lots.Delete("/:id", lotHandler.Delete)

	// Stock movements
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.MovementRepo)
	protected.Post("/movements", movementHandler.Register)
	reagents.Get("/:id/movements", movementHandler.ListByReagent)

	// Alerts (dashboard)
	alertHandler := NewAlertHandler(deps.AlertUC)
	protected.Get("/alerts", alertHandler.Current)

	// Exports
	exportHandler := NewExportHandler(deps.ExportUC)
	exports := protected.Group("/exports")
	exports.Post("/", exportHandler.Create)
	exports.Get("/:id", exportHandler.GetByID)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/inventory", reportHandler.Inventory)
}
