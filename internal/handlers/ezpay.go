package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/diewo77/ezpay-app/internal/metrics"
	"github.com/diewo77/ezpay-app/internal/services"
	"github.com/diewo77/ezpay-app/internal/view"
)

// EZPayHandler serves the split-payment simulator pages.
type EZPayHandler struct {
	Receipt *services.ReceiptService
	Charges *services.ChargeService
	Dev     bool
}

func NewEZPayHandler(receipt *services.ReceiptService, charges *services.ChargeService, dev bool) *EZPayHandler {
	return &EZPayHandler{Receipt: receipt, Charges: charges, Dev: dev}
}

// Show: GET /ezpay
func (h *EZPayHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.renderView(w, nil)
}

// Charge: POST /ezpay/charge. Rejections re-render the view at 200 with an
// inline message and the echoed form; only store failures produce a 500.
func (h *EZPayHandler) Charge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderView(w, nil)
		return
	}
	req := services.ChargeRequest{
		CardNumber:     r.FormValue("cardNumber"),
		CardholderName: r.FormValue("cardholderName"),
		ExpiryMonth:    r.FormValue("expiryMonth"),
		ExpiryYear:     r.FormValue("expiryYear"),
		CVV:            r.FormValue("cvv"),
		Amount:         r.FormValue("amount"),
	}
	res, err := h.Charges.Charge(req)
	switch {
	case err == nil:
		outcome := "accepted"
		msg := fmt.Sprintf("Charge of $%s accepted. $%s remaining.", res.Amount.StringFixed(2), res.Remaining.StringFixed(2))
		if res.FullyPaid {
			outcome = "fully_paid"
			msg = "Receipt fully paid. Thank you!"
		}
		metrics.ChargesTotal.WithLabelValues(outcome).Inc()
		h.renderView(w, map[string]any{"SuccessMessage": msg})
	case services.IsRejection(err):
		metrics.ChargesTotal.WithLabelValues(rejectionOutcome(err)).Inc()
		h.renderView(w, map[string]any{"ErrorMessage": err.Error(), "Form": req})
	default:
		metrics.ChargesTotal.WithLabelValues("error").Inc()
		RenderError(w, http.StatusInternalServerError, err, h.Dev)
	}
}

// Ready: GET /ezpay/ready. Redirects back to the payment page while anything
// is left to pay; an empty receipt counts as paid.
func (h *EZPayHandler) Ready(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Receipt.Summary()
	if err != nil {
		RenderError(w, http.StatusInternalServerError, err, h.Dev)
		return
	}
	if sum.PaymentsTotal.LessThan(sum.Total) {
		http.Redirect(w, r, "/ezpay", http.StatusSeeOther)
		return
	}
	_ = view.Render(w, "ezpay_ready.html", map[string]any{
		"Title": "Payment complete",
		"Total": sum.Total,
	})
}

// Reset: POST /ezpay/reset
func (h *EZPayHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Receipt.ResetEZPay(); err != nil {
		RenderError(w, http.StatusInternalServerError, err, h.Dev)
		return
	}
	http.Redirect(w, r, "/ezpay", http.StatusSeeOther)
}

// renderView composes the reconciled summary with any per-request fields
// (success/error message, echoed form) and renders the ezpay page.
func (h *EZPayHandler) renderView(w http.ResponseWriter, extra map[string]any) {
	sum, err := h.Receipt.Summary()
	if err != nil {
		RenderError(w, http.StatusInternalServerError, err, h.Dev)
		return
	}
	data := map[string]any{
		"Title":         "EZPay",
		"Items":         sum.Items,
		"Total":         sum.Total,
		"PaymentsTotal": sum.PaymentsTotal,
		"Remaining":     sum.Remaining,
		"Payments":      sum.Payments,
		"FullyPaid":     sum.FullyPaid,
	}
	for k, v := range extra {
		data[k] = v
	}
	_ = view.Render(w, "ezpay.html", data)
}

func rejectionOutcome(err error) string {
	var exceeds *services.AmountExceedsRemainingError
	var funds *services.InsufficientFundsError
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, services.ErrCardNotFound):
		return "card_not_found"
	case errors.As(err, &exceeds):
		return "exceeds_remaining"
	case errors.As(err, &funds):
		return "insufficient_funds"
	}
	return "rejected"
}
