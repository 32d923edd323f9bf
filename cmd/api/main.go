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

	_ "github.com/jhoicas/stock-distribution/docs"
	"github.com/jhoicas/stock-distribution/internal/application/distribution"
	"github.com/jhoicas/stock-distribution/internal/application/report"
	"github.com/jhoicas/stock-distribution/internal/application/usecase"
	infrapdf "github.com/jhoicas/stock-distribution/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-distribution/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/stock-distribution/internal/interfaces/http"
	"github.com/jhoicas/stock-distribution/pkg/config"
	"github.com/jhoicas/stock-distribution/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio para la API")
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	if applied, err := backend.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	} else if len(applied) > 0 {
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}

	productUC := usecase.NewProductUseCase(backend.Products)
	branchUC := usecase.NewBranchUseCase(backend.Branches)
	distributionUC := distribution.NewUseCase(backend.TxRunner, backend.Products, backend.Branches, log.Zerolog())

	// PDF: reporte de stock por sucursal
	pdfGenerator := infrapdf.NewMarotoStockReportGenerator(cfg.App.Name + " - stock por sucursal")
	reportUC := report.NewUseCase(backend.Products, backend.Branches, backend.Stocks, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Distribution API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": backend.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		BranchUC:       branchUC,
		DistributionUC: distributionUC,
		ReportUC:       reportUC,
		JWTSecret:      cfg.JWT.Secret,
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
