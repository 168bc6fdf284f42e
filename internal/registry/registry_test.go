package registry

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
	Resource[models.Account]{
		Name:     "accounts",
		Preloads: []string{"Broker"},
		FKFields: []string{"broker_id"},
	}.Register(api)
	Resource[models.Broker]{Name: "brokers"}.Register(api)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
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

func TestCreateAndGetWithPreload(t *testing.T) {
	app := setupApp(t)

	status, resp := doJSON(t, app, "POST", "/api/brokers", fiber.Map{"name": "Kumar Agencies"})
	require.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, true, resp["success"])

	status, resp = doJSON(t, app, "POST", "/api/accounts", fiber.Map{
		"name":      "Sri Textiles",
		"broker_id": 1,
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, resp = doJSON(t, app, "GET", "/api/accounts/1", nil)
	require.Equal(t, fiber.StatusOK, status)
	data := resp["data"].(map[string]any)
	require.Equal(t, "Sri Textiles", data["name"])
	require.NotNil(t, data["broker"], "broker association must be eager-loaded")
}

func TestCreateNormalizesEmptyStringFK(t *testing.T) {
	app := setupApp(t)

	// clients send "" for "no broker"; must become NULL, not a type error
	status, resp := doJSON(t, app, "POST", "/api/accounts", fiber.Map{
		"name":      "Sri Textiles",
		"broker_id": "",
	})
	require.Equal(t, fiber.StatusCreated, status, "response: %v", resp)

	var acct models.Account
	require.NoError(t, database.DB.First(&acct, "id = ?", 1).Error)
	require.Nil(t, acct.BrokerID)
}

func TestGetNotFound(t *testing.T) {
	app := setupApp(t)

	status, resp := doJSON(t, app, "GET", "/api/accounts/99", nil)
	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, false, resp["success"])
}

func TestUpdatePersistsChanges(t *testing.T) {
	app := setupApp(t)

	status, _ := doJSON(t, app, "POST", "/api/accounts", fiber.Map{"name": "Sri Textiles"})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, "PUT", "/api/accounts/1", fiber.Map{
		"name": "Sri Textiles Pvt Ltd",
		"city": "Salem",
	})
	require.Equal(t, fiber.StatusOK, status)

	var acct models.Account
	require.NoError(t, database.DB.First(&acct, "id = ?", 1).Error)
	require.Equal(t, "Sri Textiles Pvt Ltd", acct.Name)
	require.Equal(t, "Salem", acct.City)
}

func TestUpdateNotFound(t *testing.T) {
	app := setupApp(t)

	status, _ := doJSON(t, app, "PUT", "/api/accounts/99", fiber.Map{"name": "X"})
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestBulkDeleteRejectsEmptyIDList(t *testing.T) {
	app := setupApp(t)

	status, _ := doJSON(t, app, "POST", "/api/brokers", fiber.Map{"name": "Kumar Agencies"})
	require.Equal(t, fiber.StatusCreated, status)

	status, resp := doJSON(t, app, "POST", "/api/brokers/bulk-delete", fiber.Map{"ids": []uint{}})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, false, resp["success"])

	status, resp = doJSON(t, app, "POST", "/api/brokers/bulk-delete", fiber.Map{})
	require.Equal(t, fiber.StatusBadRequest, status)

	// nothing was deleted
	var count int64
	database.DB.Model(&models.Broker{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestBulkDeleteRemovesRows(t *testing.T) {
	app := setupApp(t)

	for _, name := range []string{"A", "B", "C"} {
		status, _ := doJSON(t, app, "POST", "/api/brokers", fiber.Map{"name": name})
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, _ := doJSON(t, app, "POST", "/api/brokers/bulk-delete", fiber.Map{"ids": []uint{1, 3}})
	require.Equal(t, fiber.StatusOK, status)

	var remaining []models.Broker
	require.NoError(t, database.DB.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, "B", remaining[0].Name)
}

func TestNormalizeFKs(t *testing.T) {
	out, err := web.NormalizeFKs([]byte(`{"name":"X","broker_id":""}`), []string{"broker_id"})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out, &m))
	require.Nil(t, m["broker_id"])
	require.Equal(t, "X", m["name"])

	// numbers pass through untouched
	raw := []byte(`{"broker_id":7}`)
	out, err = web.NormalizeFKs(raw, []string{"broker_id"})
	require.NoError(t, err)
	require.Equal(t, raw, out)

	// absent fields are fine
	raw = []byte(`{"name":"X"}`)
	out, err = web.NormalizeFKs(raw, []string{"broker_id"})
	require.NoError(t, err)
	require.Equal(t, raw, out)
}
