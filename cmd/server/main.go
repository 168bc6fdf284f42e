package main

import (
	"strings"

	"textile-erp-backend/internal/audit"
	"textile-erp-backend/internal/auth"
	"textile-erp-backend/internal/config"
	"textile-erp-backend/internal/database"
	"textile-erp-backend/internal/depot"
	"textile-erp-backend/internal/invoices"
	"textile-erp-backend/internal/logging"
	"textile-erp-backend/internal/models"
	"textile-erp-backend/internal/orders"
	"textile-erp-backend/internal/production"
	"textile-erp-backend/internal/registry"
	"textile-erp-backend/internal/reports"
	"textile-erp-backend/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel)
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: web.ErrorHandler,
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Master registries: uniform CRUD + bulk-delete per entity
	registry.Resource[models.Product]{
		Name:     "products",
		Preloads: []string{"TariffSubHead"},
		FKFields: []string{"tariff_sub_head_id"},
	}.Register(protected)
	registry.Resource[models.Account]{
		Name:     "accounts",
		Preloads: []string{"Broker"},
		FKFields: []string{"broker_id"},
	}.Register(protected)
	registry.Resource[models.Broker]{Name: "brokers"}.Register(protected)
	registry.Resource[models.Transport]{Name: "transports"}.Register(protected)
	registry.Resource[models.TariffSubHead]{Name: "tariff-sub-heads"}.Register(protected)
	registry.Resource[models.PackingType]{Name: "packing-types"}.Register(protected)
	registry.Resource[models.InvoiceType]{Name: "invoice-types"}.Register(protected)
	registry.Resource[models.Depot]{Name: "depots"}.Register(protected)
	registry.Resource[models.DespatchEntry]{
		Name:     "despatch-entries",
		Preloads: []string{"InvoiceHeader", "Transport"},
		FKFields: []string{"invoice_header_id", "transport_id"},
	}.Register(protected)

	// Orders
	protected.Post("/orders", orders.CreateOrderHandler())
	protected.Get("/orders", orders.ListOrdersHandler())
	protected.Get("/orders/:id", orders.GetOrderHandler())

	// RG1 production
	protected.Post("/production", production.CreateProductionHandler())
	protected.Get("/production", production.ListProductionHandler())

	// Invoices
	protected.Post("/invoices", invoices.CreateInvoiceHandler())
	protected.Get("/invoices", invoices.ListInvoicesHandler())
	protected.Get("/invoices/print/:id", invoices.PrintInvoiceHandler())
	protected.Get("/invoices/:id", invoices.GetInvoiceHandler())
	protected.Put("/invoices/:id", invoices.UpdateInvoiceHandler())
	protected.Put("/invoices/approve/:id", invoices.ApproveInvoiceHandler())
	protected.Put("/invoices/reject/:id", invoices.RejectInvoiceHandler())

	// Direct invoices
	protected.Post("/direct-invoices", invoices.CreateDirectInvoiceHandler())
	protected.Get("/direct-invoices", invoices.ListDirectInvoicesHandler())
	protected.Put("/direct-invoices/:id", invoices.UpdateDirectInvoiceHandler())

	// Depot movements & inventory
	protected.Post("/depot-received", depot.CreateDepotReceivedHandler())
	protected.Post("/depot-opening", depot.CreateDepotOpeningHandler())
	protected.Get("/depot-received", depot.ListDepotReceivedHandler())
	protected.Post("/depot-sales", depot.CreateDepotSalesHandler())
	protected.Get("/depot-sales", depot.ListDepotSalesHandler())
	protected.Get("/depots/:id/inventory", depot.DepotInventoryHandler())

	// Reports
	protected.Get("/reports/:reportId/export", reports.ExportReportHandler())
	protected.Get("/reports/:reportId", reports.GetReportHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	logging.Log.Infof("server listening on port %s", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logging.Log.Fatal(err)
	}
}
