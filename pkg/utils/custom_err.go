package utils

import "errors"

var (
	ErrBookNotFound           = errors.New("book not found")
	ErrPersonNotFound         = errors.New("person not found")
	ErrInvalidPage            = errors.New("invalid page parameter")
	ErrInvalidPageSize        = errors.New("invalid page size parameter")
	ErrDatabaseError          = errors.New("database error")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected ai response")
	ErrBrowserAction          = errors.New("browser action failed")
)
