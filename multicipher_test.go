package dualcol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMultiCipher_NoKeys(t *testing.T) {
	_, err := NewMultiCipher(DefaultSettings())
	require.ErrorIs(t, err, ErrNoKeys)
}

func TestNewMultiCipher_RawKeyWrongSize(t *testing.T) {
	s := Settings{
		Keys:    [][]byte{[]byte("too short")},
		UseHKDF: false,
	}
	_, err := NewMultiCipher(s)
	require.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestNewMultiCipher_KeyCount(t *testing.T) {
	cipher := testMultiCipher(t, "secret-v2", "secret-v1")
	require.Equal(t, 2, cipher.Keys())
}

func TestMultiCipher_RotationTransparency(t *testing.T) {
	oldOnly := testMultiCipher(t, "secret-v1")
	token := oldOnly.Encrypt([]byte("written before rotation"))

	// A new primary was added; the old key stays as a fallback.
	rotated := testMultiCipher(t, "secret-v2", "secret-v1")

	plaintext, err := rotated.Decrypt(token)
	require.NoError(t, err)
	require.Equal(t, "written before rotation", string(plaintext))
}

func TestMultiCipher_OldKeyAnywhereInList(t *testing.T) {
	writer := testMultiCipher(t, "secret-v1")
	token := writer.Encrypt([]byte("hello"))

	readers := []*MultiCipher{
		testMultiCipher(t, "secret-v1", "secret-v2", "secret-v3"),
		testMultiCipher(t, "secret-v2", "secret-v1", "secret-v3"),
		testMultiCipher(t, "secret-v3", "secret-v2", "secret-v1"),
	}
	for _, reader := range readers {
		plaintext, err := reader.Decrypt(token)
		require.NoError(t, err)
		require.Equal(t, "hello", string(plaintext))
	}
}

func TestMultiCipher_EncryptingKeyAbsent(t *testing.T) {
	writer := testMultiCipher(t, "secret-v1")
	token := writer.Encrypt([]byte("hello"))

	reader := testMultiCipher(t, "secret-v2", "secret-v3")
	_, err := reader.Decrypt(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestMultiCipher_EncryptUsesPrimary(t *testing.T) {
	multi := testMultiCipher(t, "secret-v2", "secret-v1")
	token := multi.Encrypt([]byte("hello"))

	// The primary key alone must be able to open a fresh token.
	primaryOnly := testMultiCipher(t, "secret-v2")
	plaintext, err := primaryOnly.Decrypt(token)
	require.NoError(t, err)
	require.Equal(t, "hello", string(plaintext))

	// And the fallback key alone must not.
	fallbackOnly := testMultiCipher(t, "secret-v1")
	_, err = fallbackOnly.Decrypt(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestMultiCipher_RawKeys(t *testing.T) {
	s := Settings{
		Keys: [][]byte{
			[]byte("01234567890123456789012345678901"),
			[]byte("abcdefghijklmnopqrstuvwxyz012345"),
		},
		UseHKDF: false,
	}
	cipher, err := NewMultiCipher(s)
	require.NoError(t, err)

	token := cipher.Encrypt([]byte("raw key round trip"))
	plaintext, err := cipher.Decrypt(token)
	require.NoError(t, err)
	require.Equal(t, "raw key round trip", string(plaintext))
}
