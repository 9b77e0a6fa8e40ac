package handlers

import (
	"net/http"

	"github.com/diewo77/ezpay-app/internal/services"
	"github.com/diewo77/ezpay-app/internal/view"
)

// ReceiptHandler serves the receipt pages.
type ReceiptHandler struct {
	Svc *services.ReceiptService
	Dev bool
}

func NewReceiptHandler(svc *services.ReceiptService, dev bool) *ReceiptHandler {
	return &ReceiptHandler{Svc: svc, Dev: dev}
}

// Show: GET /receipt
func (h *ReceiptHandler) Show(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Svc.Summary()
	if err != nil {
		RenderError(w, http.StatusInternalServerError, err, h.Dev)
		return
	}
	_ = view.Render(w, "receipt.html", map[string]any{
		"Title": "Receipt",
		"Items": sum.Items,
		"Total": sum.Total,
	})
}

// AddItem: POST /receipt. Invalid input redirects without an error message.
func (h *ReceiptHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/receipt", http.StatusSeeOther)
		return
	}
	if _, err := h.Svc.AddItem(r.FormValue("itemName"), r.FormValue("itemPrice")); err != nil {
		RenderError(w, http.StatusInternalServerError, err, h.Dev)
		return
	}
	http.Redirect(w, r, "/receipt", http.StatusSeeOther)
}

// Reset: POST /receipt/reset
func (h *ReceiptHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.ResetReceipt(); err != nil {
		RenderError(w, http.StatusInternalServerError, err, h.Dev)
		return
	}
	http.Redirect(w, r, "/receipt", http.StatusSeeOther)
}
