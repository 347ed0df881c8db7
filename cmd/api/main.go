package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/LabStock-api/internal/application/auth"
	"github.com/jhoicas/LabStock-api/internal/application/digest"
	"github.com/jhoicas/LabStock-api/internal/application/export"
	"github.com/jhoicas/LabStock-api/internal/application/inventory"
	"github.com/jhoicas/LabStock-api/internal/application/report"
	"github.com/jhoicas/LabStock-api/internal/application/usecase"
	"github.com/jhoicas/LabStock-api/internal/infrastructure/exportworker"
	inframail "github.com/jhoicas/LabStock-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/LabStock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/LabStock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/LabStock-api/internal/interfaces/http"
	"github.com/jhoicas/LabStock-api/internal/scheduler"
	"github.com/jhoicas/LabStock-api/pkg/config"
	"github.com/jhoicas/LabStock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	reagentRepo := postgres.NewReagentRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	exportRepo := postgres.NewExportJobRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	reagentUC := usecase.NewReagentUseCase(reagentRepo)
	lotUC := usecase.NewLotUseCase(lotRepo, reagentRepo)
	alertUC := usecase.NewAlertUseCase(reagentRepo, lotRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	mailClient := inframail.NewResendClient(cfg.Mail)
	dispatcher := digest.NewDispatcher(userRepo, reagentRepo, lotRepo, notificationRepo, mailClient, log)

	workerClient := exportworker.NewClient(cfg.Export.WorkerURL)
	exportUC := export.NewUseCase(exportRepo, workerClient,
		time.Duration(cfg.Export.TimeoutMinutes)*time.Minute, log)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := report.NewUseCase(reagentRepo, lotRepo, pdfGenerator)

	// Tareas periódicas internas: digest diario y barrido de exports.
	sched := scheduler.New(dispatcher, exportUC, cfg.Cron, log)
	sched.Start()
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "LabStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReagentUC:        reagentUC,
		LotUC:            lotUC,
		AlertUC:          alertUC,
		RegisterMovement: registerMovementUC,
		MovementRepo:     movementRepo,
		AuthUC:           authUC,
		ExportUC:         exportUC,
		ReportUC:         reportUC,
		Digest:           dispatcher,
		JWTSecret:        cfg.JWT.Secret,
		CronSecret:       cfg.Cron.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
