package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/koltukutsu/listele/internal/lead"
)

func (h *handlers) listLeads(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r.Context())
	leads, err := h.Leads.ListForProject(r.Context(), acct.ID, chi.URLParam(r, "projectID"))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}
	if leads == nil {
		leads = []lead.Lead{}
	}
	respondJSON(w, http.StatusOK, leads)
}

func (h *handlers) setLeadStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status lead.Status `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Geçersiz istek."})
		return
	}

	acct := accountFrom(r.Context())
	if err := h.Leads.SetStatus(r.Context(), acct.ID, chi.URLParam(r, "leadID"), req.Status); err != nil {
		respondError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
