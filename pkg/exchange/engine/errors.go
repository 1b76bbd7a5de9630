package engine

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidTime  = errors.New("invalid time")

	ErrAlreadyGraduated = errors.New("curve has already graduated")
	ErrAlreadyResolved  = errors.New("market has already been resolved")

	ErrUnauthorized = errors.New("unauthorized")

	ErrTakeoverInProgress           = errors.New("takeover already in progress")
	ErrInsufficientStakeForTakeover = errors.New("insufficient stake for takeover")

	ErrNothingToClaim = errors.New("nothing to claim")
)
