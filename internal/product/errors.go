package product

import "errors"

var (
	ErrNotFound       = errors.New("product not found")
	ErrInvalidProduct = errors.New("invalid product")
	// ErrUnavailable marks transport failures and server errors; only these are retried.
	ErrUnavailable = errors.New("inventory service unavailable")
)
