package model

import "errors"

var (
	ErrBookNotFound = errors.New("book not found")
	ErrInvalidID    = errors.New("book id must be a positive integer")
	ErrInvalidPage  = errors.New("page must be an integer")
)
