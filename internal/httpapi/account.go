package httpapi

import (
	"log/slog"
	"net/http"
)

// deleteAccount removes the caller's account and everything it owns. The
// project cascade runs first so a failure there leaves the account intact
// and the request retryable.
func (h *handlers) deleteAccount(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r.Context())

	if err := h.Projects.DeleteAllForOwner(r.Context(), acct.ID); err != nil {
		respondError(w, h.Log, err)
		return
	}
	if err := h.Accounts.Delete(r.Context(), acct.ID); err != nil {
		respondError(w, h.Log, err)
		return
	}

	h.Log.Info("account deleted", slog.String("account_id", acct.ID))
	w.WriteHeader(http.StatusNoContent)
}
