package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/koltukutsu/listele/internal/account"
	"github.com/koltukutsu/listele/internal/billing"
	"github.com/koltukutsu/listele/internal/entitlement"
	"github.com/koltukutsu/listele/internal/lead"
	"github.com/koltukutsu/listele/internal/plan"
	"github.com/koltukutsu/listele/internal/project"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps domain errors onto HTTP statuses with user-facing
// Turkish messages. Unmapped errors become an opaque 500; the detail goes to
// the log, not the client.
func respondError(w http.ResponseWriter, log *slog.Logger, err error) {
	status, msg := classify(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error("request failed", slog.Any("error", err))
	}
	respondJSON(w, status, errorResponse{Error: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, lead.ErrEmailRequired):
		return http.StatusUnprocessableEntity, "E-posta adresi gerekli."
	case errors.Is(err, lead.ErrInvalidEmail):
		return http.StatusUnprocessableEntity, "Geçersiz e-posta adresi."
	case errors.Is(err, lead.ErrEmptySubmission):
		return http.StatusUnprocessableEntity, "En az bir iletişim alanı doldurulmalı."
	case errors.Is(err, lead.ErrValidation):
		return http.StatusUnprocessableEntity, "Form doğrulanamadı."
	case errors.Is(err, entitlement.ErrLimitExceeded), errors.Is(err, account.ErrLimitExceeded):
		return http.StatusPaymentRequired, "Plan limitinize ulaştınız. Devam etmek için planınızı yükseltin."
	case errors.Is(err, project.ErrForbidden):
		return http.StatusForbidden, "Bu işlem için yetkiniz yok."
	case errors.Is(err, project.ErrNotFound),
		errors.Is(err, lead.ErrNotFound),
		errors.Is(err, account.ErrNotFound):
		return http.StatusNotFound, "Bulunamadı."
	case errors.Is(err, plan.ErrPlanNotFound):
		return http.StatusBadRequest, "Bilinmeyen plan."
	case errors.Is(err, billing.ErrHashMismatch):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, billing.ErrUnknownInvoice):
		return http.StatusNotFound, "Bulunamadı."
	case errors.Is(err, billing.ErrGateway):
		return http.StatusInternalServerError, "Ödeme başlatılamadı. Lütfen tekrar deneyin."
	default:
		return http.StatusInternalServerError, "Beklenmeyen bir hata oluştu."
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
