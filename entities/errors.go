package entities

import "errors"

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product already exists")
	ErrOrderNotFound        = errors.New("order not found")

	// ErrInsufficientStock is returned by a reduction that would drive
	// quantity negative. The stored quantity is left untouched.
	ErrInsufficientStock = errors.New("not enough stock to reduce")

	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrTransportNotReady means the broker channel was not initialized yet,
	// so the supply request could not even be published.
	ErrTransportNotReady = errors.New("message transport is not ready")
)
