package core

import "errors"

// Common errors.
var (
	ErrEmptyPath = errors.New("manifest path cannot be empty")
	ErrNotObject = errors.New("manifest must be an object at the top level")
)
