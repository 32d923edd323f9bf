package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-distribution/internal/application/distribution"
	"github.com/jhoicas/stock-distribution/internal/application/report"
	"github.com/jhoicas/stock-distribution/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	BranchUC       *usecase.BranchUseCase
	DistributionUC *distribution.UseCase
	ReportUC       *report.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API. Lecturas con cualquier token válido;
// escrituras y corridas solo admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	writer := RequireRole(RoleAdmin, RoleBodeguero)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", writer, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", writer, productHandler.Update)
	products.Post("/:id/restock", writer, productHandler.Restock)

	branches := api.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", writer, branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Put("/:id/target", writer, branchHandler.UpdateSalesTarget)

	distributions := api.Group("/distributions")
	distributionHandler := NewDistributionHandler(deps.DistributionUC)
	distributions.Post("/", writer, distributionHandler.Run)
	distributions.Post("/:productId", writer, distributionHandler.RunProduct)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/stock.pdf", reportHandler.StockPDF)
}
