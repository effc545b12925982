package service

import "errors"

var (
	ErrConfirmationRequired = errors.New("ignoring an imported order requires explicit confirmation")
	ErrDriveUnavailable     = errors.New("google drive credentials are not configured")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrChromeUnavailable    = errors.New("no chrome executable found for PDF rendering")
)
