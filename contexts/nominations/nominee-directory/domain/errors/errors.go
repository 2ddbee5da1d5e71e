package errors

import "errors"

var (
	ErrNomineeNotFound   = errors.New("nominee not found")
	ErrNomineeExists     = errors.New("nominee already registered")
	ErrInvalidNomination = errors.New("invalid nomination")
)
