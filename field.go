package dualcol

import "sync"

// EncryptedField is the declaration of one encrypted column: a name, a codec
// for the logical type, and the cipher configuration. The column holds a
// self-describing ciphertext token and nothing else; it cannot be queried,
// indexed, or constrained.
//
// A field is immutable after construction and safe for concurrent use. Its
// MultiCipher is built lazily on first use and cached for the field's
// lifetime.
type EncryptedField[T any] struct {
	name       string
	codec      Codec[T]
	null       bool
	settings   *Settings
	defaultVal *T

	cipherOnce sync.Once
	cipher     *MultiCipher
	cipherErr  error
}

// NewEncryptedField declares an encrypted column. The primary key, unique,
// and index options are rejected with a ConfigurationError: ciphertext is
// randomized per write, so none of them can ever hold.
func NewEncryptedField[T any](name string, codec Codec[T], opts ...Option) (*EncryptedField[T], error) {
	var cfg fieldConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return newEncryptedField(name, codec, cfg, "encrypted field")
}

func newEncryptedField[T any](name string, codec Codec[T], cfg fieldConfig, kind string) (*EncryptedField[T], error) {
	if !isValidColumnName(name) {
		return nil, &ConfigurationError{Field: name, Reason: "invalid column name"}
	}
	if cfg.primaryKey {
		return nil, &ConfigurationError{Field: name, Reason: kind + " does not support the primary key option"}
	}
	if cfg.unique {
		return nil, &ConfigurationError{Field: name, Reason: kind + " does not support the unique option"}
	}
	if cfg.index {
		return nil, &ConfigurationError{Field: name, Reason: kind + " does not support the index option"}
	}

	f := &EncryptedField[T]{
		name:     name,
		codec:    codec,
		null:     cfg.null,
		settings: cfg.settings,
	}

	if cfg.hasDefault {
		v, ok := cfg.defaultVal.(T)
		if !ok {
			return nil, &ConfigurationError{Field: name, Reason: "default value does not match the field's logical type"}
		}
		f.defaultVal = &v
	}

	return f, nil
}

// Name returns the column name.
func (f *EncryptedField[T]) Name() string { return f.name }

// Null reports whether the column is nullable.
func (f *EncryptedField[T]) Null() bool { return f.null }

// Default returns the declared default value, or nil.
func (f *EncryptedField[T]) Default() *T {
	if f.defaultVal == nil {
		return nil
	}
	v := *f.defaultVal
	return &v
}

func (f *EncryptedField[T]) multiCipher() (*MultiCipher, error) {
	f.cipherOnce.Do(func() {
		if f.settings != nil {
			f.cipher, f.cipherErr = NewMultiCipher(*f.settings)
			return
		}
		f.cipher, f.cipherErr = DefaultCipher()
	})
	return f.cipher, f.cipherErr
}

// PrepareForStorage serializes a value to its canonical bytes and encrypts
// them under the primary key. A nil value propagates as a nil cell (NULL).
func (f *EncryptedField[T]) PrepareForStorage(v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}

	cipher, err := f.multiCipher()
	if err != nil {
		return nil, err
	}

	data, err := f.codec.Encode(*v)
	if err != nil {
		return nil, &SerializationError{Field: f.name, Err: err}
	}
	return cipher.Encrypt(data), nil
}

// LoadFromStorage decrypts a stored cell and deserializes it back to the
// logical type. A nil cell loads as nil (NULL). Fails with ErrInvalidToken
// when no configured key authenticates the token; that failure is never
// swallowed, since a silent NULL would hide corruption or a key-rotation
// misconfiguration.
func (f *EncryptedField[T]) LoadFromStorage(raw []byte) (*T, error) {
	if raw == nil {
		return nil, nil
	}

	cipher, err := f.multiCipher()
	if err != nil {
		return nil, err
	}

	data, err := cipher.Decrypt(raw)
	if err != nil {
		return nil, err
	}

	v, err := f.codec.Decode(data)
	if err != nil {
		return nil, &SerializationError{Field: f.name, Err: err}
	}
	return &v, nil
}

// Cond always fails with UnsupportedLookupError: encrypting the same value
// twice yields different ciphertexts, so no comparison against this column
// is ever meaningful. Declare a dual field when lookups are needed.
func (f *EncryptedField[T]) Cond(lookup Lookup, paramOffset int, values ...T) (*Condition, error) {
	return nil, &UnsupportedLookupError{Field: f.name, Lookup: lookup}
}
