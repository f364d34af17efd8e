package account

import "errors"

var (
	ErrNotFound      = errors.New("account: not found")
	ErrLimitExceeded = errors.New("account: credit limit exceeded")
)
