package database

import (
	"textile-erp-backend/internal/config"
	"textile-erp-backend/internal/logging"
	"textile-erp-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logging.Log.Fatalf("could not connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		logging.Log.Fatalf("migration failed: %v", err)
	}

	logging.Log.Info("database connected, migration complete")
}

// Migrate runs AutoMigrate for every model. Shared with the test harness,
// which runs it against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.AuditLog{},
		// masters
		&models.Broker{},
		&models.TariffSubHead{},
		&models.Account{},
		&models.Transport{},
		&models.PackingType{},
		&models.InvoiceType{},
		&models.Depot{},
		&models.Product{},
		// transactional
		&models.OrderHeader{},
		&models.OrderDetail{},
		&models.InvoiceHeader{},
		&models.InvoiceDetail{},
		&models.DirectInvoiceHeader{},
		&models.DirectInvoiceDetail{},
		&models.RG1Production{},
		&models.DepotReceived{},
		&models.DepotSalesHeader{},
		&models.DepotSalesDetail{},
		&models.DespatchEntry{},
	)
}
