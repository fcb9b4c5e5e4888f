package files

import "errors"

// ErrValidation marks create input that was rejected before reaching the store.
var ErrValidation = errors.New("invalid file record")
