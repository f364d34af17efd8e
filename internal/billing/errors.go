package billing

import "errors"

var (
	// ErrGateway wraps any transport or provider-side checkout failure. The
	// provider's message is attached for diagnostics; checkout is never
	// retried server-side because a duplicate invoice id must not be reused.
	ErrGateway = errors.New("billing: payment gateway error")

	// ErrHashMismatch means the webhook signature did not verify. Fail
	// closed: 401, no state change.
	ErrHashMismatch = errors.New("billing: webhook hash mismatch")

	// ErrUnknownInvoice means no account carries the callback's invoice id.
	ErrUnknownInvoice = errors.New("billing: unknown invoice id")
)
