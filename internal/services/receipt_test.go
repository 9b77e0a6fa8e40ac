package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/ezpay-app/internal/db"
	"github.com/diewo77/ezpay-app/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func mustDec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func addItem(t *testing.T, gdb *gorm.DB, desc, price string) {
	t.Helper()
	require.NoError(t, gdb.Create(&models.ReceiptItem{Description: desc, Price: mustDec(price)}).Error)
}

func countRows(t *testing.T, gdb *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(model).Count(&n).Error)
	return n
}

func TestSummaryEmptyReceipt(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewReceiptService(gdb)

	sum, err := svc.Summary()
	require.NoError(t, err)
	require.True(t, sum.Total.IsZero())
	require.True(t, sum.PaymentsTotal.IsZero())
	require.True(t, sum.Remaining.IsZero())
	require.True(t, sum.FullyPaid, "an empty receipt counts as fully paid")
}

func TestSummaryRecomputesTotals(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewReceiptService(gdb)
	addItem(t, gdb, "Coffee", "3.50")
	addItem(t, gdb, "Bagel", "2.25")

	sum, err := svc.Summary()
	require.NoError(t, err)
	require.True(t, sum.Total.Equal(mustDec("5.75")), "total = %s", sum.Total)
	require.True(t, sum.Remaining.Equal(mustDec("5.75")))
	require.False(t, sum.FullyPaid)

	require.NoError(t, db.SeedCards(gdb))
	var card models.CardAccount
	require.NoError(t, gdb.First(&card).Error)
	require.NoError(t, gdb.Create(&models.Payment{Amount: mustDec("2.00"), CardAccountID: card.ID}).Error)

	sum, err = svc.Summary()
	require.NoError(t, err)
	require.True(t, sum.PaymentsTotal.Equal(mustDec("2.00")))
	require.True(t, sum.Remaining.Equal(mustDec("3.75")))
	require.False(t, sum.FullyPaid)
	require.Len(t, sum.Payments, 1)
	require.Equal(t, card.CardholderName, sum.Payments[0].CardAccount.CardholderName, "payments preload their card")
}

func TestAddItemInvalidInputIsNoOp(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewReceiptService(gdb)

	for _, tc := range []struct{ name, price string }{
		{"", "5.00"},
		{"   ", "5.00"},
		{"Coffee", ""},
		{"Coffee", "abc"},
		{"Coffee", "-3"},
		{"Coffee", "0"},
	} {
		added, err := svc.AddItem(tc.name, tc.price)
		require.NoError(t, err)
		require.False(t, added, "name=%q price=%q", tc.name, tc.price)
	}
	require.Zero(t, countRows(t, gdb, &models.ReceiptItem{}))
}

func TestAddItemVoidsExistingPayments(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewReceiptService(gdb)
	require.NoError(t, db.SeedCards(gdb))
	addItem(t, gdb, "Lunch", "10.00")
	var card models.CardAccount
	require.NoError(t, gdb.First(&card).Error)
	require.NoError(t, gdb.Create(&models.Payment{Amount: mustDec("10.00"), CardAccountID: card.ID}).Error)

	sum, err := svc.Summary()
	require.NoError(t, err)
	require.True(t, sum.FullyPaid)

	added, err := svc.AddItem("Dessert", "4.00")
	require.NoError(t, err)
	require.True(t, added)

	require.Zero(t, countRows(t, gdb, &models.Payment{}), "prior payments are voided")
	sum, err = svc.Summary()
	require.NoError(t, err)
	require.True(t, sum.Remaining.Equal(mustDec("14.00")))
	require.False(t, sum.FullyPaid)
}

func TestResetReceipt(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewReceiptService(gdb)
	require.NoError(t, db.SeedCards(gdb))
	addItem(t, gdb, "Lunch", "10.00")
	var card models.CardAccount
	require.NoError(t, gdb.First(&card).Error)
	require.NoError(t, gdb.Create(&models.Payment{Amount: mustDec("1.00"), CardAccountID: card.ID}).Error)

	require.NoError(t, svc.ResetReceipt())
	require.Zero(t, countRows(t, gdb, &models.ReceiptItem{}))
	require.Zero(t, countRows(t, gdb, &models.Payment{}))
	require.Equal(t, int64(5), countRows(t, gdb, &models.CardAccount{}), "cards survive a receipt reset")
}

func TestResetEZPayReseedsFixedCards(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewReceiptService(gdb)
	require.NoError(t, db.SeedCards(gdb))
	var card models.CardAccount
	require.NoError(t, gdb.First(&card).Error)
	require.NoError(t, gdb.Create(&models.Payment{Amount: mustDec("1.00"), CardAccountID: card.ID}).Error)
	// drain a balance so the reseed has something to restore
	require.NoError(t, gdb.Model(&card).Update("available_balance", mustDec("0.50")).Error)

	for i := 0; i < 2; i++ {
		require.NoError(t, svc.ResetEZPay())
		require.Zero(t, countRows(t, gdb, &models.Payment{}))

		var cards []models.CardAccount
		require.NoError(t, gdb.Order("id asc").Find(&cards).Error)
		require.Len(t, cards, 5)
		for j, want := range db.DemoCards() {
			require.Equal(t, want.CardholderName, cards[j].CardholderName)
			require.True(t, cards[j].AvailableBalance.Equal(want.AvailableBalance),
				"%s balance = %s, want %s", want.CardholderName, cards[j].AvailableBalance, want.AvailableBalance)
		}
	}
}
