package stock

import (
	"testing"

	"textile-erp-backend/internal/apperr"
	"textile-erp-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestSyncDepotInwardStandardInvoice(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Y-40s", "1000")
	acct := createAccount(t, db, "Sri Textiles")
	d := createDepot(t, db, "Madurai Depot")

	header := newInvoiceHeader(acct.ID, "INV-001", "2026-04-01")
	require.NoError(t, CreateInvoice(db, header, []models.InvoiceDetail{
		{ProductID: p.ID, TotalKgs: dec("200")},
	}))

	received, err := SyncDepotInward(db, "INV-001", d.ID, day("2026-04-03"))
	require.NoError(t, err)
	require.Equal(t, models.DepotReceivedInward, received.ReceivedType)
	require.NotNil(t, received.InvoiceHeaderID)
	require.Equal(t, header.ID, *received.InvoiceHeaderID)

	var loaded models.InvoiceHeader
	require.NoError(t, db.First(&loaded, "id = ?", header.ID).Error)
	require.True(t, loaded.IsDepotInwarded)
	require.NotNil(t, loaded.DepotID)
	require.Equal(t, d.ID, *loaded.DepotID)
}

func TestSyncDepotInwardFallsBackToDirectInvoice(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Y-40s", "1000")
	acct := createAccount(t, db, "Sri Textiles")
	d := createDepot(t, db, "Madurai Depot")

	header := newDirectHeader(acct.ID, "DO-055", "2026-04-01")
	require.NoError(t, CreateDirectInvoice(db, header, []models.DirectInvoiceDetail{
		{ProductID: p.ID, QtyKgs: dec("150")},
	}))

	received, err := SyncDepotInward(db, "DO-055", d.ID, day("2026-04-03"))
	require.NoError(t, err)
	require.NotNil(t, received.DirectInvoiceHeaderID)
	require.Equal(t, header.ID, *received.DirectInvoiceHeaderID)

	var loaded models.DirectInvoiceHeader
	require.NoError(t, db.First(&loaded, "id = ?", header.ID).Error)
	require.True(t, loaded.IsDepotInwarded)
}

func TestSyncDepotInwardNotFound(t *testing.T) {
	db := newTestDB(t)
	d := createDepot(t, db, "Madurai Depot")

	_, err := SyncDepotInward(db, "NO-SUCH-INVOICE", d.ID, day("2026-04-03"))
	require.Equal(t, apperr.SyncNotFound, apperr.KindOf(err))

	// no inward row on failure
	var count int64
	db.Model(&models.DepotReceived{}).Count(&count)
	require.Zero(t, count)
}

func TestSyncDepotInwardRejectsDoubleCounting(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Y-40s", "1000")
	acct := createAccount(t, db, "Sri Textiles")
	d := createDepot(t, db, "Madurai Depot")

	require.NoError(t, CreateInvoice(db, newInvoiceHeader(acct.ID, "INV-001", "2026-04-01"), []models.InvoiceDetail{
		{ProductID: p.ID, TotalKgs: dec("200")},
	}))

	_, err := SyncDepotInward(db, "INV-001", d.ID, day("2026-04-03"))
	require.NoError(t, err)

	_, err = SyncDepotInward(db, "INV-001", d.ID, day("2026-04-04"))
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestComputeDepotInventoryEmptyDepot(t *testing.T) {
	db := newTestDB(t)
	createProduct(t, db, "Y-40s", "1000")
	createProduct(t, db, "Y-60s", "500")
	d := createDepot(t, db, "Madurai Depot")

	inventory, err := ComputeDepotInventory(db, d.ID)
	require.NoError(t, err)
	require.Len(t, inventory, 2)
	for _, row := range inventory {
		requireDecimalEqual(t, "0", row.DepotStockKgs)
	}
}

func TestComputeDepotInventoryFormula(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Y-40s", "10000")
	acct := createAccount(t, db, "Sri Textiles")
	src := createDepot(t, db, "Erode Depot")
	dst := createDepot(t, db, "Madurai Depot")

	// opening 100
	_, err := RecordDepotOpening(db, dst.ID, p.ID, day("2026-04-01"), dec("100"))
	require.NoError(t, err)

	// standard inward 200
	require.NoError(t, CreateInvoice(db, newInvoiceHeader(acct.ID, "INV-001", "2026-04-02"), []models.InvoiceDetail{
		{ProductID: p.ID, TotalKgs: dec("200")},
	}))
	_, err = SyncDepotInward(db, "INV-001", dst.ID, day("2026-04-03"))
	require.NoError(t, err)

	// direct inward 80
	require.NoError(t, CreateDirectInvoice(db, newDirectHeader(acct.ID, "DO-001", "2026-04-02"), []models.DirectInvoiceDetail{
		{ProductID: p.ID, QtyKgs: dec("80")},
	}))
	_, err = SyncDepotInward(db, "DO-001", dst.ID, day("2026-04-03"))
	require.NoError(t, err)

	// transfer in 50 from the source depot
	toDepot := dst.ID
	require.NoError(t, CreateDepotSale(db, &models.DepotSalesHeader{
		DepotID:   src.ID,
		Date:      day("2026-04-04"),
		SalesType: models.DepotSalesTypeTransfer,
		ToDepotID: &toDepot,
	}, []models.DepotSalesDetail{
		{ProductID: p.ID, QtyKgs: dec("50")},
	}))

	// outward 75
	acctID := acct.ID
	require.NoError(t, CreateDepotSale(db, &models.DepotSalesHeader{
		DepotID:   dst.ID,
		Date:      day("2026-04-05"),
		SalesType: models.DepotSalesTypeSale,
		AccountID: &acctID,
	}, []models.DepotSalesDetail{
		{ProductID: p.ID, QtyKgs: dec("75")},
	}))

	inventory, err := ComputeDepotInventory(db, dst.ID)
	require.NoError(t, err)
	require.Len(t, inventory, 1)
	// 100 + 200 + 80 + 50 - 75
	requireDecimalEqual(t, "355", inventory[0].DepotStockKgs)

	// the source depot only sees its own outward movement, clamped at zero
	srcInventory, err := ComputeDepotInventory(db, src.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, "0", srcInventory[0].DepotStockKgs)
}

func TestComputeDepotInventoryClampsAtZero(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Y-40s", "1000")
	acct := createAccount(t, db, "Sri Textiles")
	d := createDepot(t, db, "Madurai Depot")

	acctID := acct.ID
	require.NoError(t, CreateDepotSale(db, &models.DepotSalesHeader{
		DepotID:   d.ID,
		Date:      day("2026-04-05"),
		SalesType: models.DepotSalesTypeSale,
		AccountID: &acctID,
	}, []models.DepotSalesDetail{
		{ProductID: p.ID, QtyKgs: dec("75")},
	}))

	inventory, err := ComputeDepotInventory(db, d.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, "0", inventory[0].DepotStockKgs)
}

func TestCreateDepotSaleValidation(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Y-40s", "1000")
	d := createDepot(t, db, "Madurai Depot")
	other := createDepot(t, db, "Erode Depot")

	details := []models.DepotSalesDetail{{ProductID: p.ID, QtyKgs: dec("10")}}

	// transfer without destination
	err := CreateDepotSale(db, &models.DepotSalesHeader{
		DepotID:   d.ID,
		Date:      day("2026-04-05"),
		SalesType: models.DepotSalesTypeTransfer,
	}, details)
	require.Equal(t, apperr.Validation, apperr.KindOf(err))

	// transfer to itself
	self := d.ID
	err = CreateDepotSale(db, &models.DepotSalesHeader{
		DepotID:   d.ID,
		Date:      day("2026-04-05"),
		SalesType: models.DepotSalesTypeTransfer,
		ToDepotID: &self,
	}, details)
	require.Equal(t, apperr.Validation, apperr.KindOf(err))

	// sale without a party
	err = CreateDepotSale(db, &models.DepotSalesHeader{
		DepotID:   d.ID,
		Date:      day("2026-04-05"),
		SalesType: models.DepotSalesTypeSale,
	}, details)
	require.Equal(t, apperr.Validation, apperr.KindOf(err))

	// unknown type
	dest := other.ID
	err = CreateDepotSale(db, &models.DepotSalesHeader{
		DepotID:   d.ID,
		Date:      day("2026-04-05"),
		SalesType: "SOMETHING ELSE",
		ToDepotID: &dest,
	}, details)
	require.Equal(t, apperr.Validation, apperr.KindOf(err))

	// depot sales move depot balances only, never the mill counter
	requireDecimalEqual(t, "1000", millStockOf(t, db, p.ID))
}

func TestRecordDepotOpeningValidation(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Y-40s", "1000")
	d := createDepot(t, db, "Madurai Depot")

	_, err := RecordDepotOpening(db, 0, p.ID, day("2026-04-01"), dec("10"))
	require.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = RecordDepotOpening(db, d.ID, 0, day("2026-04-01"), dec("10"))
	require.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = RecordDepotOpening(db, d.ID, p.ID, day("2026-04-01"), dec("-1"))
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
}
