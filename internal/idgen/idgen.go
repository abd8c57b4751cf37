package idgen

import "github.com/google/uuid"

// NewFunc returns a random (version 4) UUID string
var NewFunc = func() string { return uuid.New().String() }

// New returns a new deployment id
func New() string { return NewFunc() }

// Valid reports whether id is a well formed UUID
func Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
