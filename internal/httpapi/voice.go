package httpapi

import (
	"net/http"
)

type voiceRequest struct {
	Minutes int64 `json:"minutes"`
}

type voiceResponse struct {
	VoiceCreditsUsed  int64 `json:"voiceCreditsUsed"`
	VoiceCreditsLimit int64 `json:"voiceCreditsLimit"`
}

// consumeVoice reserves voice credits before a generation request. The
// reservation is a single conditional increment, so two concurrent requests
// cannot both take the last credit.
func (h *handlers) consumeVoice(w http.ResponseWriter, r *http.Request) {
	var req voiceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Geçersiz istek."})
		return
	}
	if req.Minutes < 1 {
		req.Minutes = 1
	}

	acct := accountFrom(r.Context())
	limit, err := h.Entitlements.VoiceCreditLimit(acct.Tier)
	if err != nil {
		respondError(w, h.Log, err)
		return
	}

	if err := h.Accounts.ConsumeVoiceCredits(r.Context(), acct.ID, req.Minutes, limit); err != nil {
		respondError(w, h.Log, err)
		return
	}

	updated, err := h.Accounts.GetByID(r.Context(), acct.ID)
	if err != nil {
		respondError(w, h.Log, err)
		return
	}

	respondJSON(w, http.StatusOK, voiceResponse{
		VoiceCreditsUsed:  updated.VoiceCreditsUsed,
		VoiceCreditsLimit: limit,
	})
}
