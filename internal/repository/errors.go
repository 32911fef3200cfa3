package repository

import "errors"

// ErrProgressNotFound is returned by every progress store when a user has no record.
var ErrProgressNotFound = errors.New("progress not found")
