package dualcol

// fieldConfig collects declaration options for encrypted and dual fields.
type fieldConfig struct {
	null       bool
	primaryKey bool
	unique     bool
	index      bool
	settings   *Settings
	normalizer Normalizer
	defaultVal any
	hasDefault bool
}

// Option is a functional option for declaring a field.
type Option func(*fieldConfig)

// WithNull declares the column(s) nullable. For a dual field both cells are
// nullable together; the digest cell is NULL exactly when the ciphertext
// cell is.
func WithNull() Option {
	return func(c *fieldConfig) {
		c.null = true
	}
}

// WithDefault sets the value a freshly bound record starts with. The value
// must have the field's logical type; a mismatch is rejected at declaration
// time.
func WithDefault(v any) Option {
	return func(c *fieldConfig) {
		c.defaultVal = v
		c.hasDefault = true
	}
}

// WithSettings gives the field its own key material instead of the
// process-wide environment settings. All fields sharing the same settings
// value still derive their ciphers independently, once per field.
func WithSettings(s Settings) Option {
	return func(c *fieldConfig) {
		c.settings = &s
	}
}

// WithNormalizer canonicalizes values before digesting, for case- or
// format-insensitive lookups on a dual field. The ciphertext keeps the
// original value. Use the same normalizer on write and lookup.
func WithNormalizer(n Normalizer) Option {
	return func(c *fieldConfig) {
		c.normalizer = n
	}
}

// WithPrimaryKey marks the field as a primary key. Encrypted and dual fields
// reject it at declaration time; it exists so schema builders can pass user
// intent through and get a loud failure instead of a silent drop.
func WithPrimaryKey() Option {
	return func(c *fieldConfig) {
		c.primaryKey = true
	}
}

// WithUnique marks the field unique. Rejected at declaration time:
// ciphertext is randomized per write, so uniqueness over it is meaningless.
func WithUnique() Option {
	return func(c *fieldConfig) {
		c.unique = true
	}
}

// WithIndex marks the field indexed. Rejected at declaration time: an index
// over randomized ciphertext wastes space and can never be used.
func WithIndex() Option {
	return func(c *fieldConfig) {
		c.index = true
	}
}
