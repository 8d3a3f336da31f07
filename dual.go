package dualcol

// DualField declares one logical attribute backed by two storage cells: a
// hidden encrypted column <name>_encrypted holding the authoritative
// ciphertext, and a digest column <name> holding the unsalted SHA-256 of the
// plaintext's canonical bytes. The digest cell exists only so the attribute
// can be queried by exact match; it is derived from the encrypted half at
// save time and is never a value source.
type DualField[T any] struct {
	name       string
	enc        *EncryptedField[T]
	norm       Normalizer
	defaultVal *T
	null       bool
}

// NewDualField declares a dual column pair. Like an encrypted field, a dual
// field rejects the primary key, unique, and index options at declaration
// time.
func NewDualField[T any](name string, codec Codec[T], opts ...Option) (*DualField[T], error) {
	var cfg fieldConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if !isValidColumnName(name) {
		return nil, &ConfigurationError{Field: name, Reason: "invalid column name"}
	}
	if cfg.primaryKey {
		return nil, &ConfigurationError{Field: name, Reason: "dual field does not support the primary key option"}
	}
	if cfg.unique {
		return nil, &ConfigurationError{Field: name, Reason: "dual field does not support the unique option"}
	}
	if cfg.index {
		return nil, &ConfigurationError{Field: name, Reason: "dual field does not support the index option"}
	}

	// The hidden field carries no default of its own: a bound record's
	// encrypted half starts NULL, then the dual field's default is applied
	// through the write-through setter.
	enc, err := newEncryptedField(name+"_encrypted", codec, fieldConfig{
		null:     cfg.null,
		settings: cfg.settings,
	}, "encrypted field")
	if err != nil {
		return nil, err
	}

	f := &DualField[T]{
		name: name,
		enc:  enc,
		norm: cfg.normalizer,
		null: cfg.null,
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

// Name returns the logical attribute name, which is also the digest column.
func (f *DualField[T]) Name() string { return f.name }

// Columns returns the digest column and the ciphertext column names.
// Both cells must share nullability in the schema.
func (f *DualField[T]) Columns() (hash, encrypted string) {
	return f.name, f.enc.name
}

// Null reports whether the column pair is nullable.
func (f *DualField[T]) Null() bool { return f.null }

// DualValue is the per-record state of a dual field: the in-memory value of
// the hidden encrypted half. Reads and writes of the logical attribute go
// through here; the digest half has no in-memory representation at all.
type DualValue[T any] struct {
	field *DualField[T]
	value *T
}

// Bind creates a per-record instance. The encrypted half is populated with
// NULL before the field's own default runs, so an unset record always has a
// well-defined encrypted half ready to be hashed at save time.
func (f *DualField[T]) Bind() *DualValue[T] {
	v := &DualValue[T]{field: f}
	if f.defaultVal != nil {
		d := *f.defaultVal
		v.Set(&d)
	}
	return v
}

// Get reads through to the encrypted half's current value. After a load this
// is the decrypted value; the stored digest is never visible here.
func (v *DualValue[T]) Get() *T { return v.value }

// Set writes through to the encrypted half. nil assigns NULL.
func (v *DualValue[T]) Set(val *T) { v.value = val }

// loaded is the tagged outcome of reading one storage cell: a usable value,
// or the unusable marker. The digest cell always loads as unusable; nil is
// not reused for that purpose because nil is a legitimate NULL value.
type loaded[T any] struct {
	value    *T
	unusable bool
}

// apply installs a cell-load outcome, ignoring the unusable marker so a
// loaded digest never overwrites the value decrypted from the encrypted
// half.
func (v *DualValue[T]) apply(l loaded[T]) {
	if l.unusable {
		return
	}
	v.value = l.value
}

// PrepareForStorage produces both cells for a save. The digest is computed
// fresh from the encrypted half's current value, not from anything passed
// in, so after every successful save the invariant holds: the hash cell
// equals Digest of the plaintext behind the ciphertext cell, and both cells
// are NULL together. Reassignments before the save leave no trace; only the
// final value matters.
func (f *DualField[T]) PrepareForStorage(v *DualValue[T]) (hashCell, encCell []byte, err error) {
	current := v.Get()

	encCell, err = f.enc.PrepareForStorage(current)
	if err != nil {
		return nil, nil, err
	}

	hashCell, err = f.digestValue(current)
	if err != nil {
		return nil, nil, err
	}

	return hashCell, encCell, nil
}

// LoadFromStorage rebuilds the record's value from its two cells. The
// encrypted cell is authoritative and becomes the visible value; the digest
// cell carries no recoverable information and is discarded through the
// unusable marker.
func (f *DualField[T]) LoadFromStorage(v *DualValue[T], hashCell, encCell []byte) error {
	value, err := f.enc.LoadFromStorage(encCell)
	if err != nil {
		return err
	}
	v.value = value
	v.apply(f.loadHash(hashCell))
	return nil
}

// loadHash is the digest cell's load path: always the unusable marker,
// whatever the cell holds.
func (f *DualField[T]) loadHash([]byte) loaded[T] {
	return loaded[T]{unusable: true}
}

// DigestOf computes the digest a value would be stored under, applying the
// field's normalizer. Lookup conditions compare against exactly this.
func (f *DualField[T]) DigestOf(value T) ([]byte, error) {
	data, err := f.enc.codec.Encode(value)
	if err != nil {
		return nil, &SerializationError{Field: f.name, Err: err}
	}
	if f.norm != nil {
		data = []byte(f.norm(string(data)))
	}
	return Digest(data), nil
}

func (f *DualField[T]) digestValue(v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return f.DigestOf(*v)
}
