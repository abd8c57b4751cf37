package descriptor

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldTooLong is returned when a variable length field does not fit its u16 length prefix
	ErrFieldTooLong = errors.New("descriptor: field too long")

	// ErrCorrupt is returned when a record cannot be decoded
	ErrCorrupt = errors.New("descriptor: corrupt record")
)

// FieldError identifies the field that could not be encoded
type FieldError struct {
	Field  string
	Length int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("descriptor: %s length %d exceeds %d", e.Field, e.Length, maxVarLength)
}

func (e *FieldError) Unwrap() error {
	return ErrFieldTooLong
}

// EncodingCapacityError is returned when a record would exceed the encoder
// size ceiling; records are never truncated
type EncodingCapacityError struct {
	Required int
	Limit    int
}

func (e *EncodingCapacityError) Error() string {
	return fmt.Sprintf("descriptor: encoded size %d exceeds capacity limit %d", e.Required, e.Limit)
}
