package stock

import (
	"testing"
	"time"

	"textile-erp-backend/internal/database"
	"textile-erp-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// one connection, or every pooled conn gets its own :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, code string, millStock string) *models.Product {
	t.Helper()
	p := models.Product{
		Code:      code,
		Name:      "Yarn " + code,
		Commodity: "Cotton Yarn",
		MillStock: dec(millStock),
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func createPackingType(t *testing.T, db *gorm.DB, bagWeight string) *models.PackingType {
	t.Helper()
	pt := models.PackingType{Name: "Bag", BagWeightKgs: dec(bagWeight)}
	require.NoError(t, db.Create(&pt).Error)
	return &pt
}

func createAccount(t *testing.T, db *gorm.DB, name string) *models.Account {
	t.Helper()
	a := models.Account{Name: name, City: "Coimbatore"}
	require.NoError(t, db.Create(&a).Error)
	return &a
}

func createDepot(t *testing.T, db *gorm.DB, name string) *models.Depot {
	t.Helper()
	d := models.Depot{Name: name}
	require.NoError(t, db.Create(&d).Error)
	return &d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func millStockOf(t *testing.T, db *gorm.DB, productID uint) decimal.Decimal {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", productID).Error)
	return p.MillStock
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func requireDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "expected %s, got %s", want, got)
}
