package domain

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrEmptyContent     = errors.New("content is required")
	ErrMissingCategory  = errors.New("category is required")
	ErrMissingURL       = errors.New("url is required")
	ErrInvalidURL       = errors.New("invalid url format")
	ErrMissingLocation  = errors.New("location name is required")
	ErrMissingRawInput  = errors.New("raw input is required")
	ErrMissingInventory = errors.New("ingredients are required")
)
