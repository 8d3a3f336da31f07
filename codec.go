package dualcol

import (
	"fmt"
	"strconv"
	"time"
)

// Codec converts between a logical value and its canonical byte form. The
// same bytes feed both halves of a dual field: they are what gets encrypted
// and what gets digested, so two values are lookup-equal exactly when their
// canonical bytes are equal.
//
// Fields are parametrized by a Codec rather than subclassed per logical type;
// one encryption protocol serves every type through its strategy.
type Codec[T any] interface {
	Encode(v T) ([]byte, error)
	Decode(data []byte) (T, error)
}

// Built-in codecs for common column types.
var (
	// Text stores a string as its UTF-8 bytes.
	Text Codec[string] = textCodec{}

	// Bytes stores a byte slice as-is.
	Bytes Codec[[]byte] = bytesCodec{}

	// Int64 stores an integer as its decimal ASCII form.
	Int64 Codec[int64] = int64Codec{}

	// Date stores a calendar date as "2006-01-02". Time of day and location
	// are discarded on encode.
	Date Codec[time.Time] = dateCodec{}

	// DateTime stores an instant as RFC 3339 with nanoseconds, in UTC.
	DateTime Codec[time.Time] = dateTimeCodec{}
)

type textCodec struct{}

func (textCodec) Encode(v string) ([]byte, error) { return []byte(v), nil }
func (textCodec) Decode(data []byte) (string, error) {
	return string(data), nil
}

type bytesCodec struct{}

func (bytesCodec) Encode(v []byte) ([]byte, error) {
	if v == nil {
		return []byte{}, nil
	}
	return v, nil
}
func (bytesCodec) Decode(data []byte) ([]byte, error) {
	return data, nil
}

type int64Codec struct{}

func (int64Codec) Encode(v int64) ([]byte, error) {
	return strconv.AppendInt(nil, v, 10), nil
}
func (int64Codec) Decode(data []byte) (int64, error) {
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a decimal integer: %q", data)
	}
	return n, nil
}

type dateCodec struct{}

func (dateCodec) Encode(v time.Time) ([]byte, error) {
	return []byte(v.Format(time.DateOnly)), nil
}
func (dateCodec) Decode(data []byte) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, string(data))
	if err != nil {
		return time.Time{}, fmt.Errorf("not a date: %q", data)
	}
	return t, nil
}

type dateTimeCodec struct{}

func (dateTimeCodec) Encode(v time.Time) ([]byte, error) {
	return []byte(v.UTC().Format(time.RFC3339Nano)), nil
}
func (dateTimeCodec) Decode(data []byte) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, string(data))
	if err != nil {
		return time.Time{}, fmt.Errorf("not a datetime: %q", data)
	}
	return t, nil
}

// Ptr returns a pointer to v. Fields model NULL as a nil pointer; Ptr keeps
// call sites with literal values short.
func Ptr[T any](v T) *T { return &v }
