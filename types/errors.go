package types

import "errors"

var (
	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("not found")

	// ErrMissingSignature is returned when a transaction was not signed by the fee payer
	ErrMissingSignature = errors.New("missing transaction signature")

	// ErrBlockHeightExceeded is returned when the block height window of a
	// transaction elapsed before it was confirmed
	ErrBlockHeightExceeded = errors.New("block height exceeded")
)
