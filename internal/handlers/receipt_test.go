package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/diewo77/ezpay-app/internal/db"
	"github.com/diewo77/ezpay-app/internal/models"
	"github.com/diewo77/ezpay-app/internal/services"
)

func TestReceiptShowRendersItems(t *testing.T) {
	gdb := setupHandlerDB(t)
	seedItem(t, gdb, "3.50")
	h := NewReceiptHandler(services.NewReceiptService(gdb), true)

	w := httptest.NewRecorder()
	h.Show(w, httptest.NewRequest(http.MethodGet, "/receipt", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "$3.50")
}

func TestReceiptAddItem(t *testing.T) {
	gdb := setupHandlerDB(t)
	h := NewReceiptHandler(services.NewReceiptService(gdb), true)

	w := postForm(t, h.AddItem, "/receipt", url.Values{
		"itemName":  {"Coffee"},
		"itemPrice": {"3.50"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/receipt", w.Header().Get("Location"))

	var items []models.ReceiptItem
	require.NoError(t, gdb.Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, "Coffee", items[0].Description)
}

func TestReceiptAddItemInvalidIsSilent(t *testing.T) {
	gdb := setupHandlerDB(t)
	h := NewReceiptHandler(services.NewReceiptService(gdb), true)

	for _, form := range []url.Values{
		{"itemName": {""}, "itemPrice": {"3.50"}},
		{"itemName": {"Coffee"}, "itemPrice": {"free"}},
		{"itemName": {"Coffee"}, "itemPrice": {"-1"}},
	} {
		w := postForm(t, h.AddItem, "/receipt", form)
		require.Equal(t, http.StatusSeeOther, w.Code, "invalid input still redirects")
		require.Equal(t, "/receipt", w.Header().Get("Location"))
	}
	var n int64
	require.NoError(t, gdb.Model(&models.ReceiptItem{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestReceiptResetClearsItemsAndPayments(t *testing.T) {
	gdb := setupHandlerDB(t)
	require.NoError(t, db.SeedCards(gdb))
	seedItem(t, gdb, "10.00")
	card := seededCard(t, gdb, "Alice Smith")
	require.NoError(t, gdb.Create(&models.Payment{Amount: mustDec("2.00"), CardAccountID: card.ID}).Error)
	h := NewReceiptHandler(services.NewReceiptService(gdb), true)

	w := postForm(t, h.Reset, "/receipt/reset", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)

	var items, payments int64
	require.NoError(t, gdb.Model(&models.ReceiptItem{}).Count(&items).Error)
	require.NoError(t, gdb.Model(&models.Payment{}).Count(&payments).Error)
	require.Zero(t, items)
	require.Zero(t, payments)
}
