package dualcol

import (
	"fmt"
	"strings"
)

// Lookup names a query operator against a field.
type Lookup string

// Operators. Only exact, in, and isnull can be evaluated against a dual
// field's digest column; the rest exist to be rejected by name.
const (
	LookupExact    Lookup = "exact"
	LookupIn       Lookup = "in"
	LookupIsNull   Lookup = "isnull"
	LookupLt       Lookup = "lt"
	LookupLte      Lookup = "lte"
	LookupGt       Lookup = "gt"
	LookupGte      Lookup = "gte"
	LookupContains Lookup = "contains"
	LookupRange    Lookup = "range"
)

// maxParamNumber is the PostgreSQL maximum parameter number.
const maxParamNumber = 65535

// Condition holds a SQL WHERE clause fragment and its arguments.
type Condition struct {
	SQL  string // fragment like "email = $1"
	Args []any
}

// isValidColumnName checks if a column name is safe for SQL interpolation.
// Must start with letter or underscore, followed by alphanumeric/underscore.
func isValidColumnName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_') {
				return false
			}
		} else {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || r == '_') {
				return false
			}
		}
	}
	return true
}

func checkParamOffset(offset, params int) {
	if offset < 1 || offset+params-1 > maxParamNumber {
		panic(fmt.Sprintf("dualcol: invalid paramOffset (parameters must stay within 1-%d)", maxParamNumber))
	}
}

// Exact generates an equality condition against the digest column. The
// candidate plaintext is digested with the field's normalizer, exactly as on
// write, and compared against stored digests; the plaintext itself never
// reaches the database.
//
// paramOffset is the first positional parameter number ($1, $2, ...), for
// composing with other WHERE conditions.
func (f *DualField[T]) Exact(value T, paramOffset int) (*Condition, error) {
	checkParamOffset(paramOffset, 1)

	digest, err := f.DigestOf(value)
	if err != nil {
		return nil, err
	}

	return &Condition{
		SQL:  fmt.Sprintf("%s = $%d", f.name, paramOffset),
		Args: []any{digest},
	}, nil
}

// In generates a set-membership condition against the digest column.
// An empty candidate set matches nothing.
func (f *DualField[T]) In(values []T, paramOffset int) (*Condition, error) {
	if len(values) == 0 {
		return &Condition{SQL: "FALSE"}, nil
	}
	checkParamOffset(paramOffset, len(values))

	placeholders := make([]string, 0, len(values))
	args := make([]any, 0, len(values))
	for i, value := range values {
		digest, err := f.DigestOf(value)
		if err != nil {
			return nil, err
		}
		placeholders = append(placeholders, fmt.Sprintf("$%d", paramOffset+i))
		args = append(args, digest)
	}

	return &Condition{
		SQL:  fmt.Sprintf("%s IN (%s)", f.name, strings.Join(placeholders, ", ")),
		Args: args,
	}, nil
}

// IsNull generates a null check. Both cells are NULL together, so checking
// the digest column is equivalent to checking the ciphertext column.
func (f *DualField[T]) IsNull(null bool) *Condition {
	if null {
		return &Condition{SQL: f.name + " IS NULL"}
	}
	return &Condition{SQL: f.name + " IS NOT NULL"}
}

// Cond evaluates a lookup operator by name. Exact, in, and isnull are
// supported; every other operator fails with UnsupportedLookupError, since
// digests preserve nothing but equality.
func (f *DualField[T]) Cond(lookup Lookup, paramOffset int, values ...T) (*Condition, error) {
	switch lookup {
	case LookupExact:
		if len(values) != 1 {
			return nil, &ConfigurationError{Field: f.name, Reason: "exact lookup takes exactly one value"}
		}
		return f.Exact(values[0], paramOffset)
	case LookupIn:
		return f.In(values, paramOffset)
	case LookupIsNull:
		return f.IsNull(true), nil
	default:
		return nil, &UnsupportedLookupError{Field: f.name, Lookup: lookup}
	}
}
