package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/koltukutsu/listele/internal/billing"
	"github.com/koltukutsu/listele/internal/plan"
)

// checkoutRequest keeps the provider-style field names the clients already
// send. The amount and user id their older payloads also carry are ignored:
// the price comes from the plan catalog and the identity from the header.
type checkoutRequest struct {
	PlanID       plan.Tier `json:"planId"`
	Installments int       `json:"installments_number"`
	HolderName   string    `json:"cc_holder_name"`
	CardNumber   string    `json:"cc_no"`
	ExpiryMonth  string    `json:"expiry_month"`
	ExpiryYear   string    `json:"expiry_year"`
	CVV          string    `json:"cvv"`
}

// checkout starts a 3-D Secure payment. On success the response body is the
// provider's HTML, served verbatim for the client to render in an iframe.
func (h *handlers) checkout(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	// Lenient decode: legacy clients send extra fields.
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Geçersiz istek."})
		return
	}

	acct := accountFrom(r.Context())
	html, err := h.Billing.InitiateCheckout(r.Context(), acct.ID, req.PlanID, billing.CardDetails{
		HolderName:  req.HolderName,
		Number:      req.CardNumber,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		CVV:         req.CVV,
	}, req.Installments)
	if err != nil {
		if errors.Is(err, billing.ErrGateway) {
			// The provider's message is part of the diagnostic contract.
			respondJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		respondError(w, h.Log, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(html)
}

// paymentWebhook receives the provider's payment callback as a form post.
// The provider retries anything that is not a 200, so only errors that a
// retry could fix are allowed to produce one.
func (h *handlers) paymentWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	err := h.Billing.HandleWebhook(r.Context(), billing.WebhookCallback{
		InvoiceID: r.PostFormValue("invoice_id"),
		Status:    r.PostFormValue("status"),
		NetAmount: r.PostFormValue("net_amount"),
		HashKey:   r.PostFormValue("hash_key"),
	})
	switch {
	case errors.Is(err, billing.ErrHashMismatch):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, billing.ErrUnknownInvoice):
		http.Error(w, "unknown invoice", http.StatusNotFound)
	case err != nil:
		respondError(w, h.Log, err)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("OK"))
	}
}
