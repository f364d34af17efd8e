package entitlement

import "errors"

// ErrLimitExceeded means the tier quota for the requested resource is
// already used up. Handlers translate it into a payment-required response.
var ErrLimitExceeded = errors.New("entitlement: limit exceeded")
