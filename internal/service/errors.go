package service

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateName    = errors.New("project name already taken")
	ErrAlreadyFinalised = errors.New("project already finalised")
	ErrNotFinalised     = errors.New("project has not been finalised")
)
