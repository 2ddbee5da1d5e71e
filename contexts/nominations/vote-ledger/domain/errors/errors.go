package errors

import "errors"

var (
	ErrInvalidBallotInput    = errors.New("invalid ballot input")
	ErrNomineeNotFound       = errors.New("nominee not found")
	ErrInsufficientCredits   = errors.New("not enough votes to transfer")
	ErrInvalidTransferAmount = errors.New("transfer amount must be positive")
	ErrSameNominee           = errors.New("source and destination nominee must differ")
	ErrInvalidRankQuery      = errors.New("invalid rank query")
	ErrConflict              = errors.New("ledger transaction conflict")
	ErrUnavailable           = errors.New("ledger temporarily unavailable")
	ErrNegativeTally         = errors.New("nominee tally would become negative")
	ErrBallotVersionMismatch = errors.New("ballot changed since it was read")
)
