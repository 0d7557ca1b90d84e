package catalog

import "errors"

var (
	ErrClassNotRegistered = errors.New("class not registered")
	ErrAlreadyRegistered  = errors.New("class already registered")
	ErrNilFactory         = errors.New("nil factory")
	ErrNotText            = errors.New("content is not text")
	ErrNotInitialized     = errors.New("component not initialized")
	ErrUnloaded           = errors.New("component unloaded")
)
