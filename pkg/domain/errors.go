package domain

import "errors"

// ErrSessionNotFound is returned when a user has no active session in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrCityNotFound is returned by the city resolver when no directory entry
// matches the requested name.
var ErrCityNotFound = errors.New("city not found")
