package repositories

import "errors"

// ErrNotFound is returned when a referenced entity does not exist. Handlers
// map it to 404.
var ErrNotFound = errors.New("record not found")
