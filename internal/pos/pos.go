// Package pos holds the session-scoped point-of-sale core: product catalog,
// cart, sales ledger, and the checkout computation that ties them together.
// Every store lives for one session and is discarded with it; nothing here
// persists across sessions or processes.
package pos

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrNegativeTotal = errors.New("total is negative")
	ErrSessionLimit  = errors.New("session limit reached")
)
