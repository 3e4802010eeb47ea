package repository

import "errors"

var (
	ErrBookNotFound = errors.New("book not found")
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateID  = errors.New("duplicate id")
)
