package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-distribution/internal/application/distribution"
)

// DistributionHandler dispara corridas de distribución.
type DistributionHandler struct {
	uc *distribution.UseCase
}

// NewDistributionHandler construye el handler.
func NewDistributionHandler(uc *distribution.UseCase) *DistributionHandler {
	return &DistributionHandler{uc: uc}
}

// Run godoc
// @Summary      Distribuir stock de todos los productos
// @Description  Reparte el stock de bodega de cada producto entre las sucursales según su meta de ventas.
// @Description  Cada producto se confirma en su propia transacción; ante una falla la corrida se detiene
// @Description  y la respuesta lista los productos ya confirmados y el producto fallido en "failed".
// @Tags         distributions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DistributionRunResponse
// @Failure      400  {object}  dto.DistributionRunResponse
// @Failure      503  {object}  dto.DistributionRunResponse
// @Router       /api/distributions [post]
func (h *DistributionHandler) Run(c *fiber.Ctx) error {
	resp, err := h.uc.Run(c.UserContext())
	if err != nil {
		if resp == nil {
			return writeError(c, err)
		}
		status, _ := statusFor(err)
		return c.Status(status).JSON(resp)
	}
	return c.JSON(resp)
}

// RunProduct godoc
// @Summary      Distribuir stock de un producto
// @Tags         distributions
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductDistributionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/distributions/{productId} [post]
func (h *DistributionHandler) RunProduct(c *fiber.Ctx) error {
	out, err := h.uc.RunProduct(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
