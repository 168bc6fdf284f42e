package invoices

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"textile-erp-backend/internal/database"
	"textile-erp-backend/internal/models"
	"textile-erp-backend/internal/web"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	app := fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler})
	api := app.Group("/api")
	api.Post("/invoices", CreateInvoiceHandler())
	api.Put("/invoices/:id", UpdateInvoiceHandler())
	api.Post("/direct-invoices", CreateDirectInvoiceHandler())
	return app
}

func postJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func seedProductAndAccount(t *testing.T) (*models.Product, *models.Account) {
	t.Helper()
	p := models.Product{Code: "Y-40s", Name: "Yarn Y-40s", MillStock: decimal.RequireFromString("1000")}
	require.NoError(t, database.DB.Create(&p).Error)
	a := models.Account{Name: "Sri Textiles"}
	require.NoError(t, database.DB.Create(&a).Error)
	return &p, &a
}

func TestCreateInvoiceAcceptsEmptyStringFKs(t *testing.T) {
	app := setupApp(t)
	p, _ := seedProductAndAccount(t)

	// clients send "" for optional references; must bind as null
	status, resp := postJSON(t, app, "POST", "/api/invoices", `{
		"invoice_no": "INV-001",
		"date": "2026-04-01",
		"account_id": 1,
		"broker_id": "",
		"transport_id": "",
		"invoice_type_id": "",
		"order_header_id": "",
		"details": [{"product_id": 1, "bags": 8, "total_kgs": "200", "rate": "310"}]
	}`)
	require.Equal(t, fiber.StatusCreated, status, "response: %v", resp)

	var header models.InvoiceHeader
	require.NoError(t, database.DB.First(&header, "invoice_no = ?", "INV-001").Error)
	require.Nil(t, header.BrokerID)
	require.Nil(t, header.TransportID)

	var loaded models.Product
	require.NoError(t, database.DB.First(&loaded, "id = ?", p.ID).Error)
	require.True(t, decimal.RequireFromString("800").Equal(loaded.MillStock))
}

func TestUpdateInvoiceAcceptsEmptyStringFKs(t *testing.T) {
	app := setupApp(t)
	seedProductAndAccount(t)

	status, _ := postJSON(t, app, "POST", "/api/invoices", `{
		"invoice_no": "INV-001",
		"date": "2026-04-01",
		"account_id": 1,
		"details": [{"product_id": 1, "total_kgs": "200"}]
	}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, resp := postJSON(t, app, "PUT", "/api/invoices/1", `{
		"invoice_no": "INV-001",
		"date": "2026-04-02",
		"account_id": 1,
		"broker_id": "",
		"details": [{"product_id": 1, "total_kgs": "150"}]
	}`)
	require.Equal(t, fiber.StatusOK, status, "response: %v", resp)
}

func TestCreateDirectInvoiceAcceptsEmptyStringFKs(t *testing.T) {
	app := setupApp(t)
	seedProductAndAccount(t)

	status, resp := postJSON(t, app, "POST", "/api/direct-invoices", `{
		"order_no": "DO-001",
		"date": "2026-04-01",
		"account_id": 1,
		"transport_id": "",
		"details": [{"product_id": 1, "qty_kgs": "250"}]
	}`)
	require.Equal(t, fiber.StatusCreated, status, "response: %v", resp)

	var header models.DirectInvoiceHeader
	require.NoError(t, database.DB.First(&header, "order_no = ?", "DO-001").Error)
	require.Nil(t, header.TransportID)
}

func TestCreateInvoiceEmptyAccountIsValidationError(t *testing.T) {
	app := setupApp(t)
	seedProductAndAccount(t)

	// "" on a required reference becomes null, then fails validation
	// cleanly instead of erroring during unmarshal
	status, resp := postJSON(t, app, "POST", "/api/invoices", `{
		"invoice_no": "INV-002",
		"date": "2026-04-01",
		"account_id": "",
		"details": [{"product_id": 1, "total_kgs": "200"}]
	}`)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, false, resp["success"])
}
