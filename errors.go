package dualcol

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken indicates a ciphertext token that no configured key can
	// authenticate, or a token too short or malformed to parse. Either way the
	// stored value is unreadable with the current key material.
	ErrInvalidToken = errors.New("dualcol: invalid token")

	// ErrNoKeys indicates the key list is empty.
	ErrNoKeys = errors.New("dualcol: no keys provided")

	// ErrInvalidKeySize indicates a raw key is not exactly 32 bytes.
	// Only possible when key derivation is disabled.
	ErrInvalidKeySize = errors.New("dualcol: key must be 32 bytes when derivation is disabled")

	// ErrDecompressionFailed indicates the token authenticated but its payload
	// could not be decompressed.
	ErrDecompressionFailed = errors.New("dualcol: decompression failed")
)

// ConfigurationError reports a field declared with options the encryption
// model cannot honor, such as a unique constraint on a ciphertext column.
// It is returned at declaration time, before any value is processed.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("dualcol: field %q: %s", e.Field, e.Reason)
}

// UnsupportedLookupError reports a query operator that cannot be evaluated
// against the field: anything at all on an encrypted field, anything but
// exact, in, or isnull on a dual field.
type UnsupportedLookupError struct {
	Field  string
	Lookup Lookup
}

func (e *UnsupportedLookupError) Error() string {
	return fmt.Sprintf("dualcol: field %q does not support %q lookups", e.Field, e.Lookup)
}

// SerializationError wraps a codec failure while converting a value to or
// from its canonical byte form.
type SerializationError struct {
	Field string
	Err   error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("dualcol: field %q: serialization: %v", e.Field, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
