package ir

import "errors"

var (
	ErrConversion         = errors.New("conversion error")
	ErrInvalidAssignment  = errors.New("invalid assignment")
	ErrUnknownConstructor = errors.New("unknown constructor")
	ErrInvalidNode        = errors.New("invalid node")
)
