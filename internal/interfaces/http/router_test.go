package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feriavalle/feriavalle/internal/application/dto"
	"github.com/feriavalle/feriavalle/internal/application/usecase"
	"github.com/feriavalle/feriavalle/internal/domain/entity"
	"github.com/feriavalle/feriavalle/internal/infrastructure/csv"
	"github.com/feriavalle/feriavalle/internal/infrastructure/pdf"
	"github.com/feriavalle/feriavalle/internal/infrastructure/vault"
	httpapi "github.com/feriavalle/feriavalle/internal/interfaces/http"
	"github.com/feriavalle/feriavalle/internal/store"
	"github.com/feriavalle/feriavalle/pkg/config"
	"github.com/feriavalle/feriavalle/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: la aplicación completa sobre infraestructura temporal
// ──────────────────────────────────────────────────────────────────────────────

// stateMirror espejo en memoria: evita depender de SQLite en los tests de
// la capa HTTP.
type stateMirror struct {
	payload []byte
}

func (m *stateMirror) SaveState(state *entity.State) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.payload = b
	return nil
}

func (m *stateMirror) LoadState() (*entity.State, error) {
	if m.payload == nil {
		return nil, nil
	}
	var state entity.State
	if err := json.Unmarshal(m.payload, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (m *stateMirror) StateSize() (int64, error) {
	return int64(len(m.payload)), nil
}

type backupMeta struct {
	last time.Time
}

func (m *backupMeta) SaveLastBackup(t time.Time) error { m.last = t; return nil }

func (m *backupMeta) LastBackup() (time.Time, error) { return m.last, nil }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.Nop()
	mirror := &stateMirror{}
	s, err := store.New(mirror, log)
	require.NoError(t, err)

	v := vault.New(t.TempDir())
	meta := &backupMeta{}
	backupUC := usecase.NewBackupUseCase(s, v, meta, log)

	app := fiber.New()
	httpapi.Router(app, httpapi.RouterDeps{
		ProductUC: usecase.NewProductUseCase(s),
		SaleUC:    usecase.NewSaleUseCase(s),
		BackupUC:  backupUC,
		UsageUC:   usecase.NewUsageUseCase(mirror, config.DefaultStorageLimit),
		ReportUC:  usecase.NewReportUseCase(s, pdf.NewMarotoReportGenerator(), csv.NewExporter()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *stdhttp.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *stdhttp.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createProduct(t *testing.T, app *fiber.App, name string, price float64, stock int) dto.ProductResponse {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/api/products/", map[string]any{
		"name":  name,
		"price": fmt.Sprintf("%g", price),
		"cost":  "400",
		"stock": stock,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestHTTP_ProductCRUD(t *testing.T) {
	app := newTestApp(t)

	created := createProduct(t, app, "Collar artesanal", 1000, 10)
	assert.NotEmpty(t, created.ID)

	resp := doJSON(t, app, fiber.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "Collar artesanal", got.Name)

	resp = doJSON(t, app, fiber.MethodPatch, "/api/products/"+created.ID, map[string]any{"stock": 4})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 4, decode[dto.ProductResponse](t, resp).Stock)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.ProductListResponse](t, resp).Total)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/products/"+created.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/"+created.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHTTP_ProductCreate_SinNombre(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/products/", map[string]any{"price": "100"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestHTTP_SaleCreate_DescuentaStock(t *testing.T) {
	app := newTestApp(t)
	p := createProduct(t, app, "Collar artesanal", 1000, 10)

	resp := doJSON(t, app, fiber.MethodPost, "/api/sales/", map[string]any{
		"productId":     p.ID,
		"quantity":      3,
		"paymentMethod": "efectivo",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	sale := decode[dto.SaleResponse](t, resp)
	assert.Equal(t, "Collar artesanal", sale.ProductName)
	assert.Equal(t, "3000", sale.TotalPrice.String())

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/"+p.ID, nil)
	assert.Equal(t, 7, decode[dto.ProductResponse](t, resp).Stock)
}

func TestHTTP_SaleCreate_ProductoInexistente(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/sales/", map[string]any{
		"productId": "fantasma",
		"quantity":  1,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHTTP_SaleList_PorFecha(t *testing.T) {
	app := newTestApp(t)
	p := createProduct(t, app, "Collar artesanal", 1000, 10)
	resp := doJSON(t, app, fiber.MethodPost, "/api/sales/", map[string]any{"productId": p.ID, "quantity": 1})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	hoy := time.Now().Format("2006-01-02")
	resp = doJSON(t, app, fiber.MethodGet, "/api/sales/?date="+hoy, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.SaleListResponse](t, resp).Total)

	resp = doJSON(t, app, fiber.MethodGet, "/api/sales/?date=2000-01-01", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Zero(t, decode[dto.SaleListResponse](t, resp).Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Respaldos y almacenamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestHTTP_BackupCreate_Tier1(t *testing.T) {
	app := newTestApp(t)
	createProduct(t, app, "Collar artesanal", 1000, 10)

	resp := doJSON(t, app, fiber.MethodPost, "/api/backups/", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	res := decode[dto.BackupResult](t, resp)
	assert.Equal(t, dto.TierLocal, res.Tier)
	assert.True(t, strings.HasPrefix(res.Filename, "feriavalle-respaldo-"))

	resp = doJSON(t, app, fiber.MethodGet, "/api/backups/last", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotNil(t, decode[dto.LastBackupResponse](t, resp).LastBackup)
}

func TestHTTP_BackupDownload_EntregaAdjunto(t *testing.T) {
	app := newTestApp(t)
	createProduct(t, app, "Collar artesanal", 1000, 10)

	resp := doJSON(t, app, fiber.MethodGet, "/api/backups/download", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "feriavalle-respaldo-")

	body := decode[map[string]any](t, resp)
	assert.Contains(t, body, "products")
	assert.Contains(t, body, "sales")
}

func TestHTTP_Restore_RoundTrip(t *testing.T) {
	app := newTestApp(t)
	p := createProduct(t, app, "Collar artesanal", 1000, 10)

	resp := doJSON(t, app, fiber.MethodGet, "/api/backups/download", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload := decode[json.RawMessage](t, resp)

	// Borrar el producto y restaurar el respaldo debe traerlo de vuelta.
	doJSON(t, app, fiber.MethodDelete, "/api/products/"+p.ID, nil)

	req := httptest.NewRequest(fiber.MethodPost, "/api/backups/restore", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	restoreResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, restoreResp.StatusCode)
	assert.Equal(t, 1, decode[dto.RestoreResult](t, restoreResp).Products)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/"+p.ID, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "el producto respaldado reaparece")
}

func TestHTTP_Restore_FormatoInvalido(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/api/backups/restore", strings.NewReader(`{"products":[]}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INVALID_BACKUP", decode[dto.ErrorResponse](t, resp).Code)
}

func TestHTTP_RestoreAutomatic_SinRespaldo(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/backups/restore/auto", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHTTP_StorageUsage(t *testing.T) {
	app := newTestApp(t)
	createProduct(t, app, "Collar artesanal", 1000, 10)

	resp := doJSON(t, app, fiber.MethodGet, "/api/storage/usage", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	usage := decode[dto.UsageResponse](t, resp)
	assert.Positive(t, usage.Bytes)
	assert.NotEmpty(t, usage.Label)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestHTTP_ReportSummary_PorDefectoEsHoy(t *testing.T) {
	app := newTestApp(t)
	p := createProduct(t, app, "Collar artesanal", 1000, 10)
	doJSON(t, app, fiber.MethodPost, "/api/sales/", map[string]any{"productId": p.ID, "quantity": 2})

	resp := doJSON(t, app, fiber.MethodGet, "/api/reports/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	sum := decode[dto.SalesSummary](t, resp)
	assert.Equal(t, 1, sum.SalesCount)
	assert.Equal(t, 2, sum.TotalUnits)
}

func TestHTTP_ReportCSV_Adjunto(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/reports/sales.csv?month=3&year=2024", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "feriavalle-ventas-202403.csv")
}

func TestHTTP_ReportPDF_Adjunto(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/reports/sales.pdf?date=2024-03-06", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "feriavalle-ventas-20240306.pdf")
}
