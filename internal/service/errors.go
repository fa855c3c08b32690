package service

import "errors"

var (
	ErrInternal         = errors.New("internal server error")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrWrongCredentials = errors.New("invalid token or old credentials")
	ErrNothingToUpdate  = errors.New("nothing to update")
)
