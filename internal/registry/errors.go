package registry

import "errors"

// ErrNotExist is reported for absent keys and values.
var ErrNotExist = errors.New("registry: key or value does not exist")
