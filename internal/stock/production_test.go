package stock

import (
	"testing"

	"textile-erp-backend/internal/apperr"
	"textile-erp-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCreateProductionEntryOverwritesMillStock(t *testing.T) {
	db := newTestDB(t)
	// the counter holds an arbitrary value before the entry; the production
	// path overwrites it with the computed closing stock
	p := createProduct(t, db, "Y-40s", "123.456")
	pt := createPackingType(t, db, "25")
	acct := createAccount(t, db, "Sri Textiles")

	// one 100 kg sale dated the same day
	require.NoError(t, CreateInvoice(db, newInvoiceHeader(acct.ID, "INV-001", "2026-04-10"), []models.InvoiceDetail{
		{ProductID: p.ID, TotalKgs: dec("100")},
	}))

	entry, err := CreateProductionEntry(db, ProductionInput{
		Date:           day("2026-04-10"),
		ProductID:      p.ID,
		PackingTypeID:  pt.ID,
		WeightPerBag:   dec("25"),
		PrevClosingKgs: dec("500"),
		ProductionKgs:  dec("300"),
	})
	require.NoError(t, err)

	requireDecimalEqual(t, "100", entry.InvoiceKgs)
	requireDecimalEqual(t, "700", entry.StockKgs)
	require.EqualValues(t, 28, entry.StockBags)
	requireDecimalEqual(t, "0", entry.StockLooseKgs)

	// 123.456 - 100 (invoice) would be 23.456; the entry overwrites it
	requireDecimalEqual(t, "700", millStockOf(t, db, p.ID))
}

func TestCreateProductionEntryCountsDirectInvoices(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Y-40s", "0")
	pt := createPackingType(t, db, "50")
	acct := createAccount(t, db, "Sri Textiles")

	require.NoError(t, CreateInvoice(db, newInvoiceHeader(acct.ID, "INV-001", "2026-04-10"), []models.InvoiceDetail{
		{ProductID: p.ID, TotalKgs: dec("60")},
	}))
	require.NoError(t, CreateDirectInvoice(db, newDirectHeader(acct.ID, "DO-001", "2026-04-10"), []models.DirectInvoiceDetail{
		{ProductID: p.ID, QtyKgs: dec("40")},
	}))
	// different day: must not count
	require.NoError(t, CreateDirectInvoice(db, newDirectHeader(acct.ID, "DO-002", "2026-04-11"), []models.DirectInvoiceDetail{
		{ProductID: p.ID, QtyKgs: dec("500")},
	}))

	entry, err := CreateProductionEntry(db, ProductionInput{
		Date:           day("2026-04-10"),
		ProductID:      p.ID,
		PackingTypeID:  pt.ID,
		WeightPerBag:   dec("50"),
		PrevClosingKgs: dec("200"),
		ProductionKgs:  dec("100"),
	})
	require.NoError(t, err)

	requireDecimalEqual(t, "100", entry.InvoiceKgs)
	requireDecimalEqual(t, "200", entry.StockKgs)
}

func TestCreateProductionEntryNegativeClosingIsRecorded(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "Y-40s", "0")
	pt := createPackingType(t, db, "25")
	acct := createAccount(t, db, "Sri Textiles")

	require.NoError(t, CreateInvoice(db, newInvoiceHeader(acct.ID, "INV-001", "2026-04-10"), []models.InvoiceDetail{
		{ProductID: p.ID, TotalKgs: dec("150")},
	}))

	entry, err := CreateProductionEntry(db, ProductionInput{
		Date:           day("2026-04-10"),
		ProductID:      p.ID,
		PackingTypeID:  pt.ID,
		WeightPerBag:   dec("25"),
		PrevClosingKgs: dec("40"),
		ProductionKgs:  dec("10"),
	})
	require.NoError(t, err)

	requireDecimalEqual(t, "-100", entry.StockKgs)
	requireDecimalEqual(t, "-100", millStockOf(t, db, p.ID))
}

func TestCreateProductionEntryValidation(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateProductionEntry(db, ProductionInput{
		Date:          day("2026-04-10"),
		PackingTypeID: 1,
	})
	require.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = CreateProductionEntry(db, ProductionInput{
		Date:      day("2026-04-10"),
		ProductID: 1,
	})
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestCreateProductionEntryUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	pt := createPackingType(t, db, "25")

	_, err := CreateProductionEntry(db, ProductionInput{
		Date:          day("2026-04-10"),
		ProductID:     9999,
		PackingTypeID: pt.ID,
		WeightPerBag:  dec("25"),
	})
	require.Error(t, err)

	var count int64
	db.Model(&models.RG1Production{}).Count(&count)
	require.Zero(t, count)
}

func TestSplitBags(t *testing.T) {
	cases := []struct {
		name      string
		closing   string
		perBag    string
		wantBags  int64
		wantLoose string
	}{
		{"exact split", "700", "25", 28, "0"},
		{"remainder", "510", "25", 20, "10"},
		{"fractional remainder", "100.750", "25", 4, "0.75"},
		{"zero weight skips split", "510", "0", 0, "510"},
		{"negative weight skips split", "510", "-5", 0, "510"},
		{"closing smaller than a bag", "10", "25", 0, "10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bags, loose := splitBags(dec(tc.closing), dec(tc.perBag))
			require.Equal(t, tc.wantBags, bags)
			requireDecimalEqual(t, tc.wantLoose, loose)

			// bags * weight + loose must reconstruct the closing stock
			if dec(tc.perBag).Sign() > 0 {
				total := decimal.NewFromInt(bags).Mul(dec(tc.perBag)).Add(loose)
				requireDecimalEqual(t, tc.closing, total)
			}
		})
	}
}
