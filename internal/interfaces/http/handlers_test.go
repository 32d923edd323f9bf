package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-distribution/internal/application/distribution"
	"github.com/jhoicas/stock-distribution/internal/application/dto"
	"github.com/jhoicas/stock-distribution/internal/application/report"
	"github.com/jhoicas/stock-distribution/internal/application/usecase"
	"github.com/jhoicas/stock-distribution/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stock-distribution/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stock-distribution/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app   *fiber.App
	store *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:      usecase.NewProductUseCase(store.Products()),
		BranchUC:       usecase.NewBranchUseCase(store.Branches()),
		DistributionUC: distribution.NewUseCase(memory.NewTxRunner(store), store.Products(), store.Branches(), zerolog.Nop()),
		ReportUC: report.NewUseCase(store.Products(), store.Branches(), store.BranchStocks(),
			infrapdf.NewMarotoStockReportGenerator("Stock por sucursal")),
		JWTSecret: testJWTSecret,
	})
	return &testServer{app: app, store: store}
}

// call lanza la petición con el rol indicado ("" = sin token) y devuelve la respuesta.
func (s *testServer) call(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// seed crea Laptop/Mouse y las cuatro sucursales vía API. Devuelve los IDs de producto.
func (s *testServer) seed(t *testing.T) (laptopID, mouseID string) {
	t.Helper()
	resp := s.call(t, http.MethodPost, "/api/products", "bodeguero", map[string]any{"name": "Laptop", "unit_price": "1200.00", "stock_level": 100})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	laptopID = decode[dto.ProductResponse](t, resp).ID

	resp = s.call(t, http.MethodPost, "/api/products", "admin", map[string]any{"name": "Mouse", "unit_price": "25.00", "stock_level": 200})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	mouseID = decode[dto.ProductResponse](t, resp).ID

	for _, b := range []struct {
		name   string
		target int64
	}{{"Nairobi", 50}, {"Mombasa", 30}, {"Kisumu", 20}, {"Nakuru", 0}} {
		resp := s.call(t, http.MethodPost, "/api/branches", "admin", map[string]any{"name": b.name, "sales_target": b.target})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	return laptopID, mouseID
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de autorización por ruta
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_SinTokenRetorna401(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodGet, "/api/products", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_VendedorLeePeroNoEscribe(t *testing.T) {
	s := newTestServer(t)

	resp := s.call(t, http.MethodGet, "/api/branches", "vendedor", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.call(t, http.MethodPost, "/api/distributions", "vendedor", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.call(t, http.MethodPost, "/api/products", "vendedor", map[string]any{"name": "Laptop"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestProductHandler_Errores(t *testing.T) {
	s := newTestServer(t)
	s.seed(t)

	resp := s.call(t, http.MethodPost, "/api/products", "admin", map[string]any{"name": "laptop", "unit_price": "1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.call(t, http.MethodPost, "/api/products", "admin", map[string]any{"name": "Cable", "stock_level": -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.call(t, http.MethodGet, "/api/products/nope", "vendedor", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.call(t, http.MethodPost, "/api/products/nope/restock", "admin", map[string]any{"quantity": 5})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductHandler_RestockYUpdate(t *testing.T) {
	s := newTestServer(t)
	laptopID, _ := s.seed(t)

	resp := s.call(t, http.MethodPost, "/api/products/"+laptopID+"/restock", "bodeguero", map[string]any{"quantity": 20})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(120), decode[dto.ProductResponse](t, resp).StockLevel)

	resp = s.call(t, http.MethodPut, "/api/products/"+laptopID, "admin", map[string]any{"name": "Laptop Pro"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Laptop Pro", decode[dto.ProductResponse](t, resp).Name)
}

func TestBranchHandler_MetaYOrden(t *testing.T) {
	s := newTestServer(t)
	s.seed(t)

	list := decode[dto.BranchListResponse](t, s.call(t, http.MethodGet, "/api/branches?limit=2&offset=1", "vendedor", nil))
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Mombasa", list.Items[0].Name)
	assert.Equal(t, 2, list.Page.Limit)

	resp := s.call(t, http.MethodPut, "/api/branches/"+list.Items[0].ID+"/target", "admin", map[string]any{"sales_target": -3})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.call(t, http.MethodPut, "/api/branches/"+list.Items[0].ID+"/target", "admin", map[string]any{"sales_target": 45})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(45), decode[dto.BranchResponse](t, resp).SalesTarget)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de distribución y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestDistributionHandler_Run(t *testing.T) {
	s := newTestServer(t)
	s.seed(t)

	resp := s.call(t, http.MethodPost, "/api/distributions", "bodeguero", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.DistributionRunResponse](t, resp)

	require.Len(t, out.Products, 2)
	assert.Nil(t, out.Failed)
	laptop := out.Products[0]
	assert.Equal(t, int64(28), laptop.WarehouseAfter)
	shares := make([]int64, 0, len(laptop.Branches))
	for _, b := range laptop.Branches {
		shares = append(shares, b.Share)
	}
	assert.Equal(t, []int64{50, 15, 7, 0}, shares)
}

func TestDistributionHandler_FallaDelAlmacenRetorna503(t *testing.T) {
	s := newTestServer(t)
	_, mouseID := s.seed(t)
	s.store.SetFault(func(op memory.Op, productID string) error {
		if op == memory.OpUpsertStock && productID == mouseID {
			return errors.New("conexión perdida")
		}
		return nil
	})

	resp := s.call(t, http.MethodPost, "/api/distributions", "admin", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	out := decode[dto.DistributionRunResponse](t, resp)
	require.Len(t, out.Products, 1)
	require.NotNil(t, out.Failed)
	assert.Equal(t, mouseID, out.Failed.ProductID)
	assert.Equal(t, "STORE_FAILURE", out.Failed.Code)
}

func TestDistributionHandler_RunProduct(t *testing.T) {
	s := newTestServer(t)
	_, mouseID := s.seed(t)

	resp := s.call(t, http.MethodPost, "/api/distributions/"+mouseID, "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(56), decode[dto.ProductDistributionDTO](t, resp).WarehouseAfter)

	resp = s.call(t, http.MethodPost, "/api/distributions/nope", "admin", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReportHandler(t *testing.T) {
	s := newTestServer(t)
	s.seed(t)
	resp := s.call(t, http.MethodPost, "/api/distributions", "admin", nil)
	resp.Body.Close()

	rep := decode[dto.StockReportResponse](t, s.call(t, http.MethodGet, "/api/reports/stock", "vendedor", nil))
	require.Len(t, rep.Products, 2)
	assert.Equal(t, int64(100), rep.Products[0].TotalUnits)

	resp = s.call(t, http.MethodGet, "/api/reports/stock.pdf", "vendedor", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "stock_")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestProductHandler_RestockDesbordeRetorna400(t *testing.T) {
	s := newTestServer(t)
	resp := s.call(t, http.MethodPost, "/api/products", "admin", map[string]any{"name": "Laptop", "unit_price": "1200.00", "stock_level": int64(math.MaxInt64)})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[dto.ProductResponse](t, resp).ID

	resp = s.call(t, http.MethodPost, "/api/products/"+id+"/restock", "bodeguero", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestReportHandler_FallaDelAlmacenRetorna503(t *testing.T) {
	s := newTestServer(t)
	s.seed(t)
	s.store.SetFault(func(op memory.Op, _ string) error {
		if op == memory.OpListBranches {
			return errors.New("conexión perdida")
		}
		return nil
	})

	resp := s.call(t, http.MethodGet, "/api/reports/stock", "vendedor", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "STORE_FAILURE", decode[dto.ErrorResponse](t, resp).Code)

	resp = s.call(t, http.MethodGet, "/api/reports/stock.pdf", "vendedor", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
