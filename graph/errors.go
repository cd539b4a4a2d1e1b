package graph

import "errors"

var (
	ErrNodeNotFound      = errors.New("node not found")
	ErrParamNotFound     = errors.New("parameter not found")
	ErrSameDirection     = errors.New("parameters have the same direction")
	ErrIncompatibleTypes = errors.New("parameter types are incompatible")
	ErrInvalidSnapshot   = errors.New("invalid graph snapshot")
)
