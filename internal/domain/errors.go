package domain

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnusableBody    = errors.New("response body has no usable data")
)
