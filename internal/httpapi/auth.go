package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/koltukutsu/listele/internal/account"
)

// HeaderAccountID carries the verified identity uid, set by the upstream
// identity proxy. Token verification happens there, not here.
const (
	HeaderAccountID    = "X-Account-ID"
	HeaderAccountEmail = "X-Account-Email"
	HeaderAccountName  = "X-Account-Name"
)

type ctxKey int

const accountCtxKey ctxKey = 0

// Accounts is the identity surface the auth middleware and the voice handler
// need.
type Accounts interface {
	Ensure(ctx context.Context, id, email, name string) (*account.Account, error)
	GetByID(ctx context.Context, id string) (*account.Account, error)
	ConsumeVoiceCredits(ctx context.Context, id string, amount, limit int64) error
	Delete(ctx context.Context, id string) error
}

// requireAccount resolves the caller's account from the identity headers and
// puts it on the request context. The account document is created on first
// sight, so sign-up is implicit in the first authenticated request.
func requireAccount(accounts Accounts, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderAccountID)
			if id == "" {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Oturum açmanız gerekiyor."})
				return
			}

			acct, err := accounts.Ensure(r.Context(),
				id,
				r.Header.Get(HeaderAccountEmail),
				r.Header.Get(HeaderAccountName),
			)
			if err != nil {
				respondError(w, log, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), accountCtxKey, acct),
			))
		})
	}
}

// accountFrom returns the authenticated account. Only valid below
// requireAccount; a missing value is a programming error.
func accountFrom(ctx context.Context) *account.Account {
	acct, _ := ctx.Value(accountCtxKey).(*account.Account)
	return acct
}
