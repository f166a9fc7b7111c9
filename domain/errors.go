package domain

import "errors"

// ErrInvalidInput gross income (or another user supplied field) could not be parsed.
// The calculation is aborted and no Result is produced.
var ErrInvalidInput = errors.New("invalid input")

// ErrRateFetch the exchange rate could not be loaded. Never surfaced to estimation.
var ErrRateFetch = errors.New("rate fetch failed")
